package board

import (
	"strings"
	"time"

	"github.com/bnema/lesson-kiosk/internal/application"
	"github.com/bnema/lesson-kiosk/internal/domain"
	"github.com/bnema/lesson-kiosk/internal/i18n"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	DefaultWidth = 100

	clockLayout = "15:04:05"
	statusDot   = "●"
	ellipsis    = "…"
	gap         = "  "
)

// Renderer applies a Board to text in a given language. Boards carry no
// localized strings, so switching language only re-runs this step.
type Renderer struct {
	catalog *i18n.Catalog
	loc     *time.Location
	styles  styles
}

func NewRenderer(catalog *i18n.Catalog, loc *time.Location) *Renderer {
	if loc == nil {
		loc = time.Local
	}

	return &Renderer{catalog: catalog, loc: loc, styles: newStyles()}
}

// Header renders the title and long date lines.
func (r *Renderer) Header(board application.Board, lang domain.Language) string {
	locale := r.catalog.Locale(lang)
	heading := board.Heading

	title := strings.TrimSpace(heading.Classroom)
	if heading.View == domain.ViewFloor {
		title = locale.FloorLabel(heading.Building, heading.Floor)
	} else if title == "" {
		title = locale.Classroom
	}

	lines := []string{r.styles.title.Render(title)}
	if !heading.Date.IsZero() {
		lines = append(lines, r.styles.date.Render(locale.LongDate(heading.Date)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Clock renders now as HH:MM:SS in the display zone, red while the time sync
// is faulted.
func (r *Renderer) Clock(now time.Time, faulted bool) string {
	text := now.In(r.loc).Format(clockLayout)
	if faulted {
		return r.styles.clockFault.Render(text)
	}

	return r.styles.clock.Render(text)
}

// Columns renders the localized column headers and the rule under them.
func (r *Renderer) Columns(view domain.View, lang domain.Language, width int) string {
	headers := r.catalog.Locale(lang).Headers[view]
	widths := columnWidths(view, width)

	cells := make([]string, 0, len(headers))
	for i, header := range headers {
		if i >= len(widths) {
			break
		}
		cells = append(cells, r.styles.header.Render(fit(header, widths[i])))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		strings.Join(cells, gap),
		r.styles.rule.Render(strings.Repeat("─", max(width, 1))))
}

// Body renders one line per row, or the single notice line.
func (r *Renderer) Body(board application.Board, lang domain.Language, width int) string {
	return strings.Join(r.BodyLines(board, lang, width), "\n")
}

func (r *Renderer) BodyLines(board application.Board, lang domain.Language, width int) []string {
	locale := r.catalog.Locale(lang)

	if notice := noticeText(board, locale); notice != "" {
		return []string{r.styles.notice.Render(fit(notice, width))}
	}

	widths := columnWidths(board.Heading.View, width)
	lines := make([]string, 0, len(board.Rows))
	for _, row := range board.Rows {
		lines = append(lines, r.rowLine(row, board.Heading.View, locale, widths))
	}

	return lines
}

func (r *Renderer) rowLine(row application.Row, view domain.View, locale i18n.Locale, widths []int) string {
	status := r.styles.dot(row.Status).Render(statusDot) + " " +
		r.styles.statusLabel.Render(fit(locale.StatusText(row.Status), widths[statusColumn(view)]-2))

	var cells []string
	if view == domain.ViewFloor {
		cells = append(cells, r.styles.cell.Render(fit(row.Classroom, widths[0])))
		widths = widths[1:]
	}
	cells = append(cells,
		r.styles.cell.Render(fit(row.TimeRange, widths[0])),
		r.styles.lesson.Render(fit(row.Lesson, widths[1])),
		status,
		r.styles.cell.Render(fit(row.Instructor, widths[3])),
	)

	return strings.Join(cells, gap)
}

func noticeText(board application.Board, locale i18n.Locale) string {
	view := board.Heading.View
	switch board.Notice {
	case application.NoticeLoading:
		return locale.Loading
	case application.NoticeMissingParams:
		return locale.MissingParams[view]
	case application.NoticeLoadError:
		return locale.LoadingError
	case application.NoticeNoLessons:
		return locale.NoLessons[view]
	}
	if len(board.Rows) == 0 {
		return locale.NoLessons[view]
	}

	return ""
}

const (
	timeWidth      = 13
	statusWidth    = 14
	classroomWidth = 12
	minFlexWidth   = 8
)

// columnWidths splits width across the view's columns. Lesson and instructor
// share what the fixed columns leave, 3:2.
func columnWidths(view domain.View, width int) []int {
	if width <= 0 {
		width = DefaultWidth
	}

	fixed := []int{timeWidth, 0, statusWidth, 0}
	if view == domain.ViewFloor {
		fixed = append([]int{classroomWidth}, fixed...)
	}

	used := len(gap) * (len(fixed) - 1)
	for _, w := range fixed {
		used += w
	}

	flex := max(width-used, 2*minFlexWidth)
	lesson := max(flex*3/5, minFlexWidth)
	instructor := max(flex-lesson, minFlexWidth)

	offset := len(fixed) - 4
	fixed[offset+1] = lesson
	fixed[offset+3] = instructor

	return fixed
}

func statusColumn(view domain.View) int {
	if view == domain.ViewFloor {
		return 3
	}

	return 2
}

// fit truncates s to width cells and pads it to exactly width.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}

	truncated := ansi.Truncate(s, width, ellipsis)
	if pad := width - ansi.StringWidth(truncated); pad > 0 {
		truncated += strings.Repeat(" ", pad)
	}

	return truncated
}
