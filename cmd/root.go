package cmd

import (
	"github.com/bnema/lesson-kiosk/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	app := &app{viper: viper.New()}

	rootCmd := &cobra.Command{
		Use:           "kiosk",
		Short:         "Lesson kiosk: live classroom and floor timetables for lobby displays",
		Long:          "kiosk polls the schedule backend and shows a live, bilingual lesson board for one classroom or a whole floor, with a server-synchronized clock and an auto-scrolling body for long days.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.load(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return app.close()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&app.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/lesson-kiosk/config.toml)")
	flags.String("base-url", "", "Schedule backend base URL")
	flags.String("log-file", "", "Also write logs to this file")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.String("log-format", "", "Log format: text or json")

	for key, flag := range map[string]string{
		config.KeyBaseURL:   "base-url",
		config.KeyLogFile:   "log-file",
		config.KeyLogLevel:  "log-level",
		config.KeyLogFormat: "log-format",
	} {
		_ = app.viper.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newClassroomCmd(app),
		newFloorCmd(app),
		newOpenCmd(app),
		newConfigCmd(app),
	)

	return rootCmd
}
