// Package preview opens generated images in the desktop viewer.
//
// Launching is best effort. Failures are logged and never reach the caller,
// so a missing viewer cannot turn a successful generation into an error.
// Only the launch is awaited: viewer processes outlive the call that
// started them and are reaped in the background.
package preview

import (
	"context"
	"os/exec"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// maxParallel bounds concurrent viewer processes.
const maxParallel = 4

// startFunc launches a process without waiting for it to exit.
type startFunc func(name string, args ...string) error

// Launcher opens files with a viewer command.
type Launcher struct {
	command []string
	log     zerolog.Logger
	start   startFunc
}

// New returns a launcher using command, or the platform opener when command
// is empty. command is split on whitespace; the file path is appended as the
// last argument.
func New(command string, log zerolog.Logger) *Launcher {
	argv := strings.Fields(command)
	if len(argv) == 0 {
		argv = DefaultCommand(runtime.GOOS)
	}
	l := &Launcher{
		command: argv,
		log:     log.With().Str("component", "preview").Logger(),
	}
	l.start = l.startDetached
	return l
}

// DefaultCommand returns the file opener for goos.
func DefaultCommand(goos string) []string {
	switch goos {
	case "darwin":
		return []string{"open"}
	case "windows":
		return []string{"cmd", "/c", "start", ""}
	default:
		return []string{"xdg-open"}
	}
}

// Command returns the viewer command line without the file argument.
func (l *Launcher) Command() []string {
	return append([]string(nil), l.command...)
}

// Open launches the viewer for every path in parallel and waits until every
// launch has been attempted. It does not wait for the viewers to exit, and
// cancelling the caller's context leaves them running.
func (l *Launcher) Open(_ context.Context, paths []string) {
	if len(paths) == 0 {
		return
	}

	var g errgroup.Group
	g.SetLimit(maxParallel)
	for _, p := range paths {
		p := p
		g.Go(func() error {
			args := append(l.command[1:len(l.command):len(l.command)], p)
			if err := l.start(l.command[0], args...); err != nil {
				l.log.Warn().Err(err).Str("path", p).Msg("failed to open preview")
				return nil
			}
			l.log.Debug().Str("path", p).Msg("preview launched")
			return nil
		})
	}
	_ = g.Wait()
}

// startDetached starts the viewer and reaps it in the background. A
// non-zero exit is logged once the viewer quits.
func (l *Launcher) startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			l.log.Warn().Err(err).Str("command", name).Msg("preview viewer exited with error")
		}
	}()
	return nil
}
