package timelog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yeahyeah/yeahyeah/internal/commands"
)

// ErrDuplicateProject is returned when a project name is already taken.
var ErrDuplicateProject = errors.New("project already exists")

// Project groups time entries.
type Project struct {
	ID   string
	Name string
}

func (p Project) String() string { return p.Name }

// Entry is one logged activity. A nil End means the timer is running.
type Entry struct {
	ID          string
	Description string
	Project     *Project
	Start       time.Time
	End         *time.Time
}

func (e Entry) String() string {
	s := e.Description
	if e.Project != nil {
		s += " (" + e.Project.Name + ")"
	}
	s += " " + e.Start.Format("15:04") + "-"
	if e.End != nil {
		s += e.End.Format("15:04")
	}
	return s
}

// Session is the time log backend.
type Session interface {
	// Projects returns all projects ordered by name.
	Projects(ctx context.Context) ([]Project, error)
	AddProject(ctx context.Context, name string) (Project, error)
	// AddEntry starts a new running entry at start, stopping any running
	// entry at the same moment.
	AddEntry(ctx context.Context, start time.Time, description string, project *Project) (Entry, error)
	// StopTimer ends the running entry at end. It returns nil when no entry
	// was running.
	StopTimer(ctx context.Context, end time.Time) (*Entry, error)
	// Running returns the running entry, or nil.
	Running(ctx context.Context) (*Entry, error)
	Close() error
	String() string
}

// FindProject returns the first project whose name starts with part,
// ignoring case.
func FindProject(projects []Project, part string) (Project, error) {
	lower := strings.ToLower(part)
	for _, p := range projects {
		if strings.HasPrefix(strings.ToLower(p.Name), lower) {
			return p, nil
		}
	}
	names := make([]string, len(projects))
	for i, p := range projects {
		names[i] = p.Name
	}
	return Project{}, commands.Usagef("could not find project starting with %q. Options: %s", part, strings.Join(names, ", "))
}

func describeProject(p *Project) string {
	if p == nil {
		return "no project"
	}
	return fmt.Sprintf("project %s", p.Name)
}
