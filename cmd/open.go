package cmd

import (
	"fmt"
	"net/url"

	"github.com/bnema/lesson-kiosk/internal/domain"
	"github.com/spf13/cobra"
)

func newOpenCmd(app *app) *cobra.Command {
	var opts viewOptions

	cmd := &cobra.Command{
		Use:   "open <kiosk-url>",
		Short: "Show the board a kiosk page URL describes",
		Long:  "Read the view and its parameters from a kiosk page URL such as https://host/classroom?aula=A1&edificio=A or https://host/floor_view?building=B&floor=2.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := url.Parse(args[0])
			if err != nil {
				return fmt.Errorf("parse kiosk URL: %w", err)
			}

			q := domain.QueryFromValues(domain.ViewFromPath(u.Path), u.Query())
			return runView(cmd, app, q, opts)
		},
	}

	addViewFlags(cmd, &opts)
	return cmd
}
