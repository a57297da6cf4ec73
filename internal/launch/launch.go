// Package launch performs the desktop side effects of launchable items:
// opening URLs, terminals and editors, and raising windows.
package launch

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/yeahyeah/yeahyeah/internal/shellquote"
)

// Launcher is implemented by anything that can perform launch side effects.
type Launcher interface {
	OpenURL(ctx context.Context, url string) error
	OpenTerminal(ctx context.Context, path string) error
	RaiseWindow(ctx context.Context, pattern string) error
	Edit(ctx context.Context, path string) error
}

// System launches through the host's desktop tools.
type System struct {
	// Editor overrides $EDITOR for Edit.
	Editor string
	// Terminal is the terminal emulator used by OpenTerminal (default konsole).
	Terminal string
}

// UnsupportedError is returned when an action has no implementation for
// the current platform.
type UnsupportedError struct {
	Action   string
	Platform string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s is not supported on platform %q", e.Action, e.Platform)
}

// OpenURL opens url in the default browser.
func (s System) OpenURL(ctx context.Context, url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", url)
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", url)
	case "linux", "freebsd", "openbsd", "netbsd":
		cmd = exec.CommandContext(ctx, "xdg-open", url)
	default:
		return &UnsupportedError{Action: "opening a url", Platform: runtime.GOOS}
	}
	return start(cmd)
}

// OpenTerminal opens a new terminal window with path as working directory.
func (s System) OpenTerminal(ctx context.Context, path string) error {
	if runtime.GOOS != "linux" {
		return &UnsupportedError{Action: "opening a new terminal", Platform: runtime.GOOS}
	}
	term := s.Terminal
	if term == "" {
		term = "konsole"
	}
	script := "cd " + shellquote.Quote(path) + "; $SHELL"
	return start(exec.CommandContext(ctx, term, "-e", "bash", "-c", script))
}

// RaiseWindow activates the first window whose name matches pattern.
func (s System) RaiseWindow(ctx context.Context, pattern string) error {
	if runtime.GOOS != "linux" {
		return &UnsupportedError{Action: "raising a window", Platform: runtime.GOOS}
	}
	cmd := exec.CommandContext(ctx, "xdotool", "search", "--name", pattern, "windowactivate", "%@")
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("xdotool: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Edit opens path in the configured editor and waits for it to exit.
func (s System) Edit(ctx context.Context, path string) error {
	editor := s.Editor
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		return fmt.Errorf("no editor configured, set $EDITOR to edit %s", path)
	}

	var cmd *exec.Cmd
	// An editor with spaces may be a compound command like "code --wait".
	if strings.Contains(editor, " ") {
		cmd = exec.CommandContext(ctx, "sh", "-c", editor+" "+shellquote.Quote(path))
	} else {
		cmd = exec.CommandContext(ctx, editor, path)
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func start(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", cmd.Path, err)
	}
	return cmd.Process.Release()
}
