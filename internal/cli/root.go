// Package cli implements the jj command-line interface: it resolves the
// configuration directory, loads settings, registers the configured plugins
// and dispatches exactly one command.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/yeahyeah/yeahyeah/internal/buildinfo"
	"github.com/yeahyeah/yeahyeah/internal/config"
	"github.com/yeahyeah/yeahyeah/internal/launch"
	"github.com/yeahyeah/yeahyeah/internal/launcher"
	"github.com/yeahyeah/yeahyeah/internal/logging"
	"github.com/yeahyeah/yeahyeah/internal/plugin"
	"github.com/yeahyeah/yeahyeah/internal/plugins"
	"github.com/yeahyeah/yeahyeah/internal/ui"
)

const (
	flagConfigDir = "config-dir"
	flagLogLevel  = "log-level"
)

// options are the global settings that must be known before the command
// tree can be built.
type options struct {
	ConfigDir string
	LogLevel  string
}

func addGlobalFlags(fs *pflag.FlagSet) {
	fs.String(flagConfigDir, "", "Configuration directory (env "+config.EnvConfigDir+")")
	fs.String(flagLogLevel, "", "Log level: debug, info, warn or error (env "+logging.EnvLevel+")")
}

// resolveOptions reads the global flags out of args, ignoring everything
// else, with YEAHYEAH_* environment variables as fallback.
func resolveOptions(args []string) options {
	fs := pflag.NewFlagSet(launcher.RootName, pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	addGlobalFlags(fs)
	// Keep -h/--help from aborting the pre-parse.
	fs.BoolP("help", "h", false, "")
	_ = fs.Parse(args)

	v := viper.New()
	v.SetEnvPrefix("YEAHYEAH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindPFlag(flagConfigDir, fs.Lookup(flagConfigDir))
	_ = v.BindPFlag(flagLogLevel, fs.Lookup(flagLogLevel))

	return options{
		ConfigDir: config.ResolveDir(v.GetString(flagConfigDir)),
		LogLevel:  v.GetString(flagLogLevel),
	}
}

// Execute runs the CLI with the process arguments.
func Execute() error {
	return Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
}

// Run builds the registry for args and dispatches one command. Any error is
// printed once to stderr before it is returned.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	err := run(ctx, args, stdout, stderr)
	if err != nil {
		fmt.Fprintln(stderr, ui.Error(err.Error()))
	}
	return err
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts := resolveOptions(args)
	logger := logging.New(stderr, opts.LogLevel)

	settings, created, err := config.LoadOrCreate(opts.ConfigDir)
	if err != nil {
		return err
	}
	if settings.AccentColor != "" {
		ui.ConfigureTheme(settings.AccentColor)
	}

	pctx := &plugin.Context{
		ConfigDir: opts.ConfigDir,
		Out:       stdout,
		Logger:    logger,
		Launcher:  launch.System{Editor: settings.Editor, Terminal: settings.Terminal},
		Settings:  settings,
	}
	if created {
		pctx.Notice("settings", "Settings file not found. Wrote default settings to %s", config.SettingsPath(opts.ConfigDir))
	}

	reg := launcher.New(pctx, plugins.Catalog())
	root := reg.Root()
	addGlobalFlags(root.PersistentFlags())
	root.Version = buildinfo.String()
	root.SetOut(stdout)
	root.SetErr(stderr)

	// A plugin that fails to load only loses its own commands.
	for _, id := range settings.Plugins {
		if err := reg.AddPlugin(id); err != nil {
			logger.Debug("plugin not loaded", "plugin", id, "err", err)
			fmt.Fprintln(stderr, ui.Warningf("plugin %s not loaded: %v", id, err))
		}
	}
	logger.Debug("registry ready", "plugins", strings.Join(reg.Slugs(), ","), "commands", reg.Size())

	return reg.Execute(ctx, args)
}
