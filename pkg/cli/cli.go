package cli

import (
	"context"
	"io"
	"os"

	"github.com/secmon-lab/casebook/pkg/cli/config"
	"github.com/secmon-lab/casebook/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func Run(ctx context.Context, args []string, version string) error {
	return run(ctx, args, version, os.Stdin, os.Stdout)
}

func run(ctx context.Context, args []string, version string, r io.Reader, w io.Writer) error {
	var loggerCfg config.Logger
	var closer func()

	app := &cli.Command{
		Name:    "casebook",
		Usage:   "Special education case study records",
		Version: version,
		Reader:  r,
		Writer:  w,
		Flags:   loggerCfg.Flags(),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			f, err := loggerCfg.Configure()
			if err != nil {
				return ctx, err
			}
			closer = f

			logging.Default().Debug("Starting casebook", "logger", loggerCfg)
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if closer != nil {
				closer()
			}
			return nil
		},
		Commands: []*cli.Command{
			cmdServe(),
			cmdList(),
			cmdNew(),
			cmdDashboard(),
			cmdReport(),
			cmdSummarize(),
			cmdDelete(),
			cmdBranding(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		logging.Default().Error("failed to run app", "error", err)
		return err
	}

	return nil
}
