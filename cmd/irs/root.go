package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rpgo/irs-calculator/internal/config"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var logLevels = map[string]logrus.Level{
	"trace": logrus.TraceLevel,
	"debug": logrus.DebugLevel,
	"info":  logrus.InfoLevel,
	"warn":  logrus.WarnLevel,
	"error": logrus.ErrorLevel,
	"off":   logrus.PanicLevel,
}

// app carries the state shared by every subcommand.
type app struct {
	settings  config.Settings
	tablePath string
	logLevel  string
	log       *logrus.Entry
}

func newRootCmd(settings config.Settings) *cobra.Command {
	a := &app{settings: settings, log: logrus.WithField("module", "irs")}

	root := &cobra.Command{
		Use:          "irs",
		Short:        "Household income tax estimator",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, ok := logLevels[strings.ToLower(a.logLevel)]
			if !ok {
				return fmt.Errorf("log level must be one of %s", strings.Join(sortedKeys(logLevels), ", "))
			}
			logrus.SetOutput(cmd.ErrOrStderr())
			logrus.SetLevel(level)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.tablePath, "table", settings.TablePath,
		`bracket table (.csv, .yaml or .db with optional "#name")`)
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", settings.LogLevel, "log level ("+strings.Join(sortedKeys(logLevels), ", ")+")")

	root.AddCommand(newEstimateCmd(a), newTableCmd(a), newExampleCmd())
	return root
}

func sortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}
