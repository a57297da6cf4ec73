package timelog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/yeahyeah/yeahyeah/internal/sqlutil"
)

const schema = `
CREATE TABLE IF NOT EXISTS projects (
	id   TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE COLLATE NOCASE
);
CREATE TABLE IF NOT EXISTS entries (
	id          TEXT PRIMARY KEY,
	description TEXT NOT NULL,
	project_id  TEXT REFERENCES projects(id),
	start_time  INTEGER NOT NULL,
	end_time    INTEGER
);
CREATE INDEX IF NOT EXISTS idx_entries_running ON entries(end_time) WHERE end_time IS NULL;
`

// SQLiteSession keeps the time log in a local SQLite database.
type SQLiteSession struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(path string) (*SQLiteSession, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create time log directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open time log database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize time log database %s: %w", path, err)
	}
	return &SQLiteSession{db: db, path: path}, nil
}

func (s *SQLiteSession) String() string { return "sqlite " + s.path }

// Close closes the database.
func (s *SQLiteSession) Close() error { return s.db.Close() }

// Projects implements Session.
func (s *SQLiteSession) Projects(ctx context.Context) ([]Project, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM projects ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return sqlutil.ScanRows(rows, func(rows *sql.Rows) (Project, error) {
		var p Project
		err := rows.Scan(&p.ID, &p.Name)
		return p, err
	})
}

// AddProject implements Session.
func (s *SQLiteSession) AddProject(ctx context.Context, name string) (Project, error) {
	name = strings.TrimSpace(name)
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects WHERE name = ?`, name).Scan(&exists)
	if err != nil {
		return Project{}, fmt.Errorf("failed to look up project: %w", err)
	}
	if exists > 0 {
		return Project{}, fmt.Errorf("%q: %w", name, ErrDuplicateProject)
	}

	p := Project{ID: uuid.NewString(), Name: name}
	if _, err := s.db.ExecContext(ctx, `INSERT INTO projects (id, name) VALUES (?, ?)`, p.ID, p.Name); err != nil {
		return Project{}, fmt.Errorf("failed to add project: %w", err)
	}
	return p, nil
}

// AddEntry implements Session.
func (s *SQLiteSession) AddEntry(ctx context.Context, start time.Time, description string, project *Project) (Entry, error) {
	entry := Entry{
		ID:          uuid.NewString(),
		Description: description,
		Project:     project,
		Start:       start.Truncate(time.Second),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `UPDATE entries SET end_time = ? WHERE end_time IS NULL`, entry.Start.Unix()); err != nil {
		return Entry{}, fmt.Errorf("failed to stop running entry: %w", err)
	}

	var projectID sql.NullString
	if project != nil {
		projectID = sql.NullString{String: project.ID, Valid: true}
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO entries (id, description, project_id, start_time, end_time) VALUES (?, ?, ?, ?, NULL)`,
		entry.ID, entry.Description, projectID, entry.Start.Unix())
	if err != nil {
		return Entry{}, fmt.Errorf("failed to add entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Entry{}, fmt.Errorf("failed to commit entry: %w", err)
	}
	return entry, nil
}

// Running implements Session.
func (s *SQLiteSession) Running(ctx context.Context) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT e.id, e.description, e.start_time, e.end_time, p.id, p.name
		FROM entries e LEFT JOIN projects p ON p.id = e.project_id
		WHERE e.end_time IS NULL
		ORDER BY e.start_time DESC
		LIMIT 1`)

	var (
		e                      Entry
		start                  int64
		end                    sql.NullInt64
		projectID, projectName sql.NullString
	)
	err := row.Scan(&e.ID, &e.Description, &start, &end, &projectID, &projectName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read running entry: %w", err)
	}

	e.Start = time.Unix(start, 0).In(time.Local)
	e.End = sqlutil.UnixTime(end)
	if projectID.Valid {
		e.Project = &Project{ID: projectID.String, Name: projectName.String}
	}
	return &e, nil
}

// StopTimer implements Session.
func (s *SQLiteSession) StopTimer(ctx context.Context, end time.Time) (*Entry, error) {
	running, err := s.Running(ctx)
	if err != nil || running == nil {
		return nil, err
	}

	end = end.Truncate(time.Second)
	stop := sqlutil.NullUnix(&end)
	if _, err := s.db.ExecContext(ctx, `UPDATE entries SET end_time = ? WHERE id = ?`, stop, running.ID); err != nil {
		return nil, fmt.Errorf("failed to stop timer: %w", err)
	}
	running.End = &end
	return running, nil
}
