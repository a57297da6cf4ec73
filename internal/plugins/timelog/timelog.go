// Package timelog is the plugin that keeps a personal time log: running
// entries with an optional project, started and stopped from the command
// line.
package timelog

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yeahyeah/yeahyeah/internal/commands"
	"github.com/yeahyeah/yeahyeah/internal/config"
	"github.com/yeahyeah/yeahyeah/internal/plugin"
	"github.com/yeahyeah/yeahyeah/internal/ui"
)

const (
	ID           = "timelog"
	ShortSlug    = "log"
	GroupName    = "log"
	SettingsFile = "timelog.json"
)

// Settings is the content of timelog.json.
type Settings struct {
	// Database is the SQLite file, relative to the configuration directory
	// unless absolute.
	Database string `json:"database"`
}

// DefaultSettings is written on first use.
func DefaultSettings() Settings {
	return Settings{Database: "timelog.db"}
}

// Opener opens the session described by settings. dir is the
// configuration directory.
type Opener func(dir string, settings Settings) (Session, error)

// OpenDefault opens the SQLite session.
func OpenDefault(dir string, settings Settings) (Session, error) {
	path := settings.Database
	if path == "" {
		path = DefaultSettings().Database
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	return OpenSQLite(path)
}

// Plugin is the time log plugin.
type Plugin struct {
	ctx      *plugin.Context
	file     config.JSONFile
	settings Settings
	open     Opener
	now      func() time.Time
}

// Option configures a Plugin.
type Option func(*Plugin)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(p *Plugin) { p.now = now }
}

// WithOpener replaces the SQLite session.
func WithOpener(open Opener) Option {
	return func(p *Plugin) { p.open = open }
}

// New is the catalog factory.
func New(ctx *plugin.Context) (plugin.Plugin, error) {
	p, err := Open(ctx)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Open loads timelog.json, writing the defaults first when it is missing.
// The session itself is opened by each command that needs it.
func Open(ctx *plugin.Context, opts ...Option) (*Plugin, error) {
	p := &Plugin{
		ctx:  ctx,
		file: config.JSONFile{Path: ctx.Path(SettingsFile)},
		open: OpenDefault,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}

	created, err := p.file.Ensure(DefaultSettings())
	if err != nil {
		return nil, err
	}
	if created {
		ctx.Notice(ID, "Settings file not found. Wrote default settings to %s", p.file.Path)
	}
	if err := p.file.Load(&p.settings); err != nil {
		return nil, err
	}
	return p, nil
}

// Slug implements plugin.Plugin.
func (p *Plugin) Slug() string { return ID }

// ShortSlug implements plugin.Plugin.
func (p *Plugin) ShortSlug() string { return ShortSlug }

// SettingsPath is the plugin's settings file.
func (p *Plugin) SettingsPath() string { return p.file.Path }

// withSession opens the session for the duration of fn.
func (p *Plugin) withSession(fn func(Session) error) error {
	s, err := p.open(p.ctx.ConfigDir, p.settings)
	if err != nil {
		return commands.AsUsage("could not open time log", err)
	}
	defer s.Close()
	return fn(s)
}

// Commands implements plugin.Plugin: the "log" group.
func (p *Plugin) Commands() ([]*cobra.Command, error) {
	group := &cobra.Command{
		Use:   GroupName,
		Short: fmt.Sprintf("write to the time log (%s)", ShortSlug),
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return commands.Usagef("unknown action %q for %q", args[0], GroupName)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
	}
	group.AddCommand(p.statusCommand(), p.addCommand(), p.stopCommand(), p.projectsCommand())
	return []*cobra.Command{group}, nil
}

func (p *Plugin) statusCommand() *cobra.Command {
	return commands.Generate(commands.Meta{
		Name:        "status",
		Description: "Show the time log session and the running entry",
	}, func(cmd *cobra.Command, _ []string, _ map[string]interface{}) error {
		return p.withSession(func(s Session) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Using time log session %s\n", s)
			running, err := s.Running(cmd.Context())
			if err != nil {
				return err
			}
			if running == nil {
				fmt.Fprintln(out, "No timer is running")
			} else {
				fmt.Fprintf(out, "Running: %s\n", running)
			}
			return nil
		})
	})
}

func (p *Plugin) addCommand() *cobra.Command {
	at := NewTimeValue(p.now)
	cmd := commands.Generate(commands.Meta{
		Name:        "add",
		Description: "add log message",
		Args:        commands.Variadic("message"),
		Flags: []commands.FlagMeta{{
			Name:        "project",
			Short:       "p",
			Description: "Project name or the start of it",
			Type:        commands.FlagTypeString,
		}},
		Examples: []string{"jj log add -p infra -t -15 fixing the deploy"},
	}, func(cmd *cobra.Command, args []string, flags map[string]interface{}) error {
		message := strings.TrimSpace(strings.Join(args, " "))
		if message == "" {
			return commands.Usagef("log message may not be empty")
		}
		start := at.At()
		projectPart, _ := flags["project"].(string)

		return p.withSession(func(s Session) error {
			ctx := cmd.Context()
			var project *Project
			if projectPart != "" {
				projects, err := s.Projects(ctx)
				if err != nil {
					return err
				}
				found, err := FindProject(projects, projectPart)
				if err != nil {
					return err
				}
				project = &found
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Adding %s at %s to %s\n", message, start.Format("15:04"), describeProject(project))
			_, err := s.AddEntry(ctx, start, message, project)
			return err
		})
	})
	addTimeFlag(cmd, at)
	return cmd
}

func (p *Plugin) stopCommand() *cobra.Command {
	at := NewTimeValue(p.now)
	cmd := commands.Generate(commands.Meta{
		Name:        "stop",
		Description: "stop any active logging stopwatch",
	}, func(cmd *cobra.Command, _ []string, _ map[string]interface{}) error {
		return p.withSession(func(s Session) error {
			stopped, err := s.StopTimer(cmd.Context(), at.At())
			if err != nil {
				return err
			}
			if stopped == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No timer was running")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "stopped %s\n", stopped)
			return nil
		})
	})
	addTimeFlag(cmd, at)
	return cmd
}

func (p *Plugin) projectsCommand() *cobra.Command {
	return commands.Generate(commands.Meta{
		Name:        "projects",
		Description: "list available projects",
	}, func(cmd *cobra.Command, _ []string, _ map[string]interface{}) error {
		return p.withSession(func(s Session) error {
			projects, err := s.Projects(cmd.Context())
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects found")
				return nil
			}
			for _, project := range projects {
				fmt.Fprintln(cmd.OutOrStdout(), project)
			}
			return nil
		})
	})
}

func addTimeFlag(cmd *cobra.Command, at *TimeValue) {
	cmd.Flags().VarP(at, "time", "t", "Time (HH:MM) or time increment (+/-MM or +/-HH:MM)")
}

// AdminCommands implements plugin.Plugin: edit_settings and add_project.
func (p *Plugin) AdminCommands() ([]*cobra.Command, error) {
	addProject := commands.Generate(commands.Meta{
		Name:        "add_project",
		Description: "Add a project to log time on",
		Args:        commands.Fixed("name"),
	}, func(cmd *cobra.Command, args []string, _ map[string]interface{}) error {
		name := strings.TrimSpace(args[0])
		if name == "" {
			return commands.Usagef("project name may not be empty")
		}
		return p.withSession(func(s Session) error {
			project, err := s.AddProject(cmd.Context(), name)
			if errors.Is(err, ErrDuplicateProject) {
				return commands.AsUsage("", err)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Successf("Added project %s", project.Name))
			return nil
		})
	})

	return []*cobra.Command{plugin.EditSettingsCommand(p.ctx, p.file.Path), addProject}, nil
}
