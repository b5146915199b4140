package cmd

import (
	"strings"

	"github.com/bnema/lesson-kiosk/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// localizedFlags maps the Italian parameter names kiosk pages use onto the
// flag names.
var localizedFlags = map[string]string{
	"aula":     "classroom",
	"edificio": "building",
	"piano":    "floor",
}

func normalizeLocalizedFlags(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	if canonical, ok := localizedFlags[strings.ToLower(name)]; ok {
		return pflag.NormalizedName(canonical)
	}

	return pflag.NormalizedName(name)
}

func newClassroomCmd(app *app) *cobra.Command {
	var (
		classroom string
		building  string
		date      string
		period    string
		opts      viewOptions
	)

	cmd := &cobra.Command{
		Use:   "classroom",
		Short: "Show the lesson board of one classroom",
		Long:  "Show today's lessons for one classroom. --aula and --edificio are accepted as aliases of --classroom and --building.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := classroomQuery(classroom, building, date, period)
			if err != nil {
				return err
			}
			return runView(cmd, app, q, opts)
		},
	}

	cmd.Flags().SetNormalizeFunc(normalizeLocalizedFlags)
	cmd.Flags().StringVar(&classroom, "classroom", "", "Classroom identifier")
	cmd.Flags().StringVar(&building, "building", "", "Building identifier")
	cmd.Flags().StringVar(&date, "date", "", "Date as YYYY-MM-DD (default: today in the display time zone)")
	cmd.Flags().StringVar(&period, "period", string(domain.PeriodAll), "Part of the day: all, morning or afternoon")
	addViewFlags(cmd, &opts)

	return cmd
}

func classroomQuery(classroom, building, date, period string) (domain.Query, error) {
	parsedDate, err := domain.ParseDate(date)
	if err != nil {
		return domain.Query{}, err
	}
	parsedPeriod, err := domain.ParsePeriod(period)
	if err != nil {
		return domain.Query{}, err
	}

	return domain.Query{
		View:      domain.ViewClassroom,
		Classroom: strings.TrimSpace(classroom),
		Building:  strings.TrimSpace(building),
		Date:      parsedDate,
		Period:    parsedPeriod,
	}, nil
}
