// Command irs estimates the personal income tax still payable (or refundable)
// by a household for the current year.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/rpgo/irs-calculator/internal/config"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		logrus.WithField("module", "irs").Warnf("%v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := newRootCmd(config.LoadSettings())
	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
