package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/spf13/cobra"

	"github.com/smazurov/lighthal/cmd"
	"github.com/smazurov/lighthal/internal/api"
	"github.com/smazurov/lighthal/internal/config"
	"github.com/smazurov/lighthal/internal/events"
	"github.com/smazurov/lighthal/internal/hw"
	"github.com/smazurov/lighthal/internal/lights"
	"github.com/smazurov/lighthal/internal/logging"
	"github.com/smazurov/lighthal/internal/metrics"
	"github.com/smazurov/lighthal/internal/power"
	"github.com/smazurov/lighthal/internal/systemd"
	"github.com/smazurov/lighthal/internal/version"
)

// Options for the CLI - flat structure with toml mapping.
type Options struct {
	Config string `help:"Path to configuration file" short:"c" default:"lighthal.toml"`

	// Server settings
	Port       string `help:"Address to listen on" short:"p" default:":8090" toml:"server.port" env:"SERVER_PORT"`
	CORSOrigin string `help:"Allowed CORS origin" default:"*" toml:"server.cors_origin" env:"SERVER_CORS_ORIGIN"`

	// Auth settings
	AuthUsername string `help:"Basic auth username, empty disables auth" default:"" toml:"auth.username" env:"AUTH_USERNAME"`
	AuthPassword string `help:"Basic auth password" default:"" toml:"auth.password" env:"AUTH_PASSWORD"`

	// Hardware settings
	DryRun               bool   `help:"Log hardware writes instead of performing them" default:"false" toml:"hardware.dry_run" env:"HARDWARE_DRY_RUN"`
	SysfsBacklight       string `help:"Backlight brightness file" default:"/sys/class/leds/lcd-backlight/brightness" toml:"sysfs.backlight" env:"SYSFS_BACKLIGHT"`
	SysfsSelector        string `help:"LED channel selector file" default:"/sys/class/leds/nubia_led/outn" toml:"sysfs.selector" env:"SYSFS_SELECTOR"`
	SysfsBlinkMode       string `help:"LED blink mode file" default:"/sys/class/leds/nubia_led/blink_mode" toml:"sysfs.blink_mode" env:"SYSFS_BLINK_MODE"`
	SysfsGrade           string `help:"LED intensity grade file" default:"/sys/class/leds/nubia_led/grade_parameter" toml:"sysfs.grade" env:"SYSFS_GRADE"`
	SysfsBatteryCapacity string `help:"Battery capacity file" default:"/sys/class/power_supply/battery/capacity" toml:"sysfs.battery_capacity" env:"SYSFS_BATTERY_CAPACITY"`
	SysfsBatteryStatus   string `help:"Battery status file" default:"/sys/class/power_supply/battery/status" toml:"sysfs.battery_status" env:"SYSFS_BATTERY_STATUS"`

	// Features settings
	MetricsEnabled bool `help:"Serve Prometheus metrics on /metrics" default:"true" toml:"features.metrics" env:"FEATURES_METRICS"`
	WatchConfig    bool `help:"Reload logging levels when the config file changes" default:"true" toml:"features.watch_config" env:"FEATURES_WATCH_CONFIG"`

	// Logging settings
	LoggingLevel  string `help:"Global logging level (debug, info, warn, error)" default:"info" toml:"logging.level" env:"LOGGING_LEVEL"`
	LoggingFormat string `help:"Logging format (text, json)" default:"text" toml:"logging.format" env:"LOGGING_FORMAT"`
	LoggingLights string `help:"Arbitration logging level" default:"info" toml:"logging.lights" env:"LOGGING_LIGHTS"`
	LoggingHw     string `help:"Hardware adapter logging level" default:"info" toml:"logging.hw" env:"LOGGING_HW"`
	LoggingAPI    string `help:"API logging level" default:"info" toml:"logging.api" env:"LOGGING_API"`
	LoggingHTTP   string `help:"HTTP request logging level" default:"info" toml:"logging.http" env:"LOGGING_HTTP"`
}

func (o *Options) paths() hw.Paths {
	return hw.Paths{
		Backlight:       o.SysfsBacklight,
		Selector:        o.SysfsSelector,
		BlinkMode:       o.SysfsBlinkMode,
		Grade:           o.SysfsGrade,
		BatteryCapacity: o.SysfsBatteryCapacity,
		BatteryStatus:   o.SysfsBatteryStatus,
	}.WithDefaults()
}

func (o *Options) loggingConfig() logging.Config {
	return logging.Config{
		Level:  o.LoggingLevel,
		Format: o.LoggingFormat,
		Modules: map[string]string{
			"lights": o.LoggingLights,
			"hw":     o.LoggingHw,
			"api":    o.LoggingAPI,
			"http":   o.LoggingHTTP,
		},
	}
}

func main() {
	var (
		cli    humacli.CLI
		paths  hw.Paths
		device *lights.Device
	)

	cli = humacli.New(func(hooks humacli.Hooks, opts *Options) {
		if loadErr := config.Load(opts, cli.Root()); loadErr != nil {
			slog.Warn("Failed to load config", "error", loadErr)
		}

		logging.Initialize(opts.loggingConfig())
		logger := logging.GetLogger("main")

		paths = opts.paths()
		adapter := hw.New(paths, opts.DryRun, logging.GetLogger("hw"))

		eventBus := events.New()
		device = lights.NewDevice(adapter, paths, lights.WithBus(eventBus))

		apiOpts := &api.Options{
			AuthUsername: opts.AuthUsername,
			AuthPassword: opts.AuthPassword,
			CORSOrigin:   opts.CORSOrigin,
			Device:       device,
			Battery:      power.NewReader(adapter, paths),
			EventBus:     eventBus,
		}
		if opts.MetricsEnabled {
			apiOpts.PrometheusHandler = metrics.Handler()
		}
		server := api.NewServer(apiOpts)

		notifier := systemd.NewNotifier(logger)
		ctx, cancel := context.WithCancel(context.Background())

		hooks.OnStart(func() {
			logger.Info("Starting", "version", version.String(), "led_dir", paths.LEDDir())

			go notifier.RunWatchdog(ctx)

			if opts.WatchConfig && opts.Config != "" {
				watcher := config.NewWatcher(opts.Config, config.LoadLogging, func(cfg logging.Config) {
					logging.SetLevels(cfg)
					logger.Info("Logging levels updated", "level", cfg.Level)
				}, config.DefaultDebounce, logger)
				go func() {
					if err := watcher.Run(ctx); err != nil {
						logger.Warn("Config watching disabled", "error", err)
					}
				}()
			}

			unfollow := notifier.FollowWinner(eventBus)
			go func() {
				<-ctx.Done()
				unfollow()
			}()

			notifier.Ready()
			if startErr := server.Start(opts.Port); startErr != nil {
				logger.Error("Failed to start HTTP server", "error", startErr)
				os.Exit(1)
			}
		})

		hooks.OnStop(func() {
			logger.Info("Shutting down")
			notifier.Stopping()
			cancel()

			stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer stopCancel()
			if stopErr := server.Stop(stopCtx); stopErr != nil {
				logger.Error("Error stopping HTTP server", "error", stopErr)
			}
		})
	})

	cli.Root().Use = "lighthal"
	cli.Root().Short = "Indicator LED arbitration and backlight control"
	cli.Root().Version = version.String()

	cli.Root().AddCommand(cmd.CreateProbeCmd(func() hw.Paths { return paths }))
	cli.Root().AddCommand(cmd.CreateSetCmd(func() *lights.Device { return device }))
	cli.Root().AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(c *cobra.Command, _ []string) {
			info := version.Get()
			fmt.Fprintf(c.OutOrStdout(), "%s\ncommit: %s\nbuilt:  %s\ngo:     %s %s\n",
				version.String(), info.GitCommit, info.BuildDate, info.GoVersion, info.Platform)
		},
	})

	cli.Run()
}
