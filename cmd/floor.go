package cmd

import (
	"strings"

	"github.com/bnema/lesson-kiosk/internal/domain"
	"github.com/spf13/cobra"
)

func newFloorCmd(app *app) *cobra.Command {
	var (
		building string
		floor    string
		date     string
		opts     viewOptions
	)

	cmd := &cobra.Command{
		Use:   "floor",
		Short: "Show the lesson board of every classroom on a floor",
		Long:  "Show today's lessons across a floor, ordered by start time. --edificio and --piano are accepted as aliases of --building and --floor.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			parsedDate, err := domain.ParseDate(date)
			if err != nil {
				return err
			}

			q := domain.Query{
				View:     domain.ViewFloor,
				Building: strings.TrimSpace(building),
				Floor:    strings.TrimSpace(floor),
				Date:     parsedDate,
				Period:   domain.PeriodAll,
			}
			return runView(cmd, app, q, opts)
		},
	}

	cmd.Flags().SetNormalizeFunc(normalizeLocalizedFlags)
	cmd.Flags().StringVar(&building, "building", "", "Building identifier")
	cmd.Flags().StringVar(&floor, "floor", "", "Floor number")
	cmd.Flags().StringVar(&date, "date", "", "Date as YYYY-MM-DD (default: today in the display time zone)")
	addViewFlags(cmd, &opts)

	return cmd
}
