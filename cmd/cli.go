package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/xetibo/resetd/internal/config"
	"github.com/xetibo/resetd/internal/daemon"
	"github.com/xetibo/resetd/internal/daemonlog"
)

// These values are set at compile-time.
var (
	Version  = ""
	Revision = ""
)

// Run runs the commandline application.
func Run() error {
	return newApp().Run(os.Args)
}

// newApp returns a new commandline application.
func newApp() *cli.App {
	cli.VersionPrinter = func(cCtx *cli.Context) {
		fmt.Fprintf(cCtx.App.Writer, "%s (%s)\n", Version, Revision)
	}

	return &cli.App{
		Name:                   "resetd",
		Usage:                  "Desktop settings daemon.",
		Version:                Version + " (" + Revision + ")",
		Description:            "Exposes wireless, Bluetooth, and audio management over session D-Bus.",
		Copyright:              "(c) xetibo.",
		Compiled:               time.Now(),
		EnableBashCompletion:   true,
		UseShortOptionHandling: true,
		Suggest:                true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "namespace",
				Aliases: []string{"n"},
				EnvVars: []string{"RESETD_NAMESPACE"},
				Usage:   "D-Bus namespace the daemon registers under (dots become path segments).",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				EnvVars: []string{"RESETD_LOG_LEVEL"},
				Usage:   "Log level (trace, debug, info, warn, error).",
			},
			&cli.BoolFlag{
				Name:    "embedded",
				Aliases: []string{"e"},
				EnvVars: []string{"RESETD_EMBEDDED"},
				Usage:   "Run without claiming the well-known bus name (another process already owns it).",
			},
			&cli.IntFlag{
				Name:    "call-timeout-ms",
				EnvVars: []string{"RESETD_CALL_TIMEOUT_MS"},
				Usage:   "Per-call timeout for provider system-bus calls, in milliseconds.",
			},
			&cli.IntFlag{
				Name:    "pair-timeout-ms",
				EnvVars: []string{"RESETD_PAIR_TIMEOUT_MS"},
				Usage:   "Timeout for Bluetooth pairing calls, in milliseconds.",
			},
			&cli.IntFlag{
				Name:    "rescan-interval-seconds",
				EnvVars: []string{"RESETD_RESCAN_INTERVAL_SECONDS"},
				Usage:   "Minimum interval between wireless rescans, in seconds.",
			},
			&cli.IntFlag{
				Name:    "bluetooth-scan-duration-ms",
				EnvVars: []string{"RESETD_BLUETOOTH_SCAN_DURATION_MS"},
				Usage:   "Default Bluetooth discovery duration, in milliseconds.",
			},
			&cli.IntFlag{
				Name:    "listener-poll-interval-ms",
				EnvVars: []string{"RESETD_LISTENER_POLL_INTERVAL_MS"},
				Usage:   "Wireless listener poll interval, in milliseconds.",
			},
		},
		Action: func(cliCtx *cli.Context) error {
			cliCtx.Command.Name = "global"

			cfg := config.New()
			if err := cfg.Load(cliCtx); err != nil {
				return err
			}

			logger := daemonlog.New(cfg.Values.LogLevel)
			log := daemonlog.Component(logger, "daemon")

			if cfg.Values.Embedded {
				color.New(color.FgYellow, color.Bold).Fprintf(os.Stderr,
					"resetd: embedded mode, not claiming %s.Daemon\n", cfg.Values.Namespace)
			}

			d, err := daemon.New(cfg, log)
			if err != nil {
				color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "resetd: %v\n", err)
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return d.Run(ctx)
		},
		ExitErrHandler: func(_ *cli.Context, err error) {
			if err == nil {
				return
			}

			color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "resetd: %v\n", err)
		},
	}
}
