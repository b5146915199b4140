package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/bnema/lesson-kiosk/internal/adapters/render/board"
	"github.com/bnema/lesson-kiosk/internal/application"
	"github.com/bnema/lesson-kiosk/internal/domain"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type boardOutput struct {
	View         domain.View `json:"view"`
	Classroom    string      `json:"classroom,omitempty"`
	Building     string      `json:"building,omitempty"`
	Floor        string      `json:"floor,omitempty"`
	Date         string      `json:"date,omitempty"`
	Notice       string      `json:"notice,omitempty"`
	Rows         []rowOutput `json:"rows"`
	Now          time.Time   `json:"now"`
	ClockFaulted bool        `json:"clock_faulted"`
}

type rowOutput struct {
	Classroom  string              `json:"classroom,omitempty"`
	TimeRange  string              `json:"time_range"`
	Lesson     string              `json:"lesson"`
	Instructor string              `json:"instructor"`
	Status     domain.LessonStatus `json:"status"`
	Start      time.Time           `json:"start"`
	End        time.Time           `json:"end"`
}

func toBoardOutput(b application.Board, now time.Time, faulted bool) boardOutput {
	out := boardOutput{
		View:         b.Heading.View,
		Classroom:    b.Heading.Classroom,
		Building:     b.Heading.Building,
		Floor:        b.Heading.Floor,
		Notice:       string(b.Notice),
		Now:          now,
		ClockFaulted: faulted,
		Rows: lo.Map(b.Rows, func(row application.Row, _ int) rowOutput {
			return rowOutput{
				Classroom:  lo.Ternary(b.Heading.View == domain.ViewFloor, row.Classroom, ""),
				TimeRange:  row.TimeRange,
				Lesson:     row.Lesson,
				Instructor: row.Instructor,
				Status:     row.Status,
				Start:      row.Start,
				End:        row.End,
			}
		}),
	}
	if !b.Heading.Date.IsZero() {
		out.Date = b.Heading.Date.Format(domain.DateLayout)
	}

	return out
}

func writeBoardOutput(cmd *cobra.Command, app *app, b application.Board, timeSync *application.TimeSync, opts viewOptions) error {
	now := timeSync.Now().In(app.location)

	if opts.asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(toBoardOutput(b, now, timeSync.Faulted()))
	}

	rendered := app.renderer.Static(b, board.RenderOptions{
		Language: domain.LanguagePrimary,
		Now:      now,
		Faulted:  timeSync.Faulted(),
		Width:    opts.width,
	})

	_, err := fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
