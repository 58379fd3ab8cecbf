package preview

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCommand(t *testing.T) {
	assert.Equal(t, []string{"open"}, DefaultCommand("darwin"))
	assert.Equal(t, []string{"cmd", "/c", "start", ""}, DefaultCommand("windows"))
	assert.Equal(t, []string{"xdg-open"}, DefaultCommand("linux"))
	assert.Equal(t, []string{"xdg-open"}, DefaultCommand("freebsd"))
}

func TestNew_CommandOverride(t *testing.T) {
	l := New("  eog --fullscreen ", zerolog.Nop())
	assert.Equal(t, []string{"eog", "--fullscreen"}, l.Command())
}

func TestOpen_LaunchesEveryPath(t *testing.T) {
	l := New("viewer --new-window", zerolog.Nop())

	var mu sync.Mutex
	var calls []string
	l.start = func(name string, args ...string) error {
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, name+" "+strings.Join(args, " "))
		return nil
	}

	l.Open(context.Background(), []string{"/tmp/a.png", "/tmp/b.png", "/tmp/c.png"})

	sort.Strings(calls)
	assert.Equal(t, []string{
		"viewer --new-window /tmp/a.png",
		"viewer --new-window /tmp/b.png",
		"viewer --new-window /tmp/c.png",
	}, calls)
}

func TestOpen_FailuresAreOnlyLogged(t *testing.T) {
	var buf bytes.Buffer
	var mu sync.Mutex
	log := zerolog.New(zerolog.SyncWriter(&buf))
	l := New("viewer", log)
	l.start = func(_ string, args ...string) error {
		mu.Lock()
		defer mu.Unlock()
		if strings.HasSuffix(args[0], "bad.png") {
			return errors.New("no display")
		}
		return nil
	}

	require.NotPanics(t, func() {
		l.Open(context.Background(), []string{"good.png", "bad.png"})
	})
	out := buf.String()
	assert.Contains(t, out, "failed to open preview")
	assert.Contains(t, out, "no display")
	assert.Contains(t, out, "bad.png")
	assert.Equal(t, 1, strings.Count(out, "failed to open preview"))
}

func TestOpen_MissingViewerIsLogged(t *testing.T) {
	var buf bytes.Buffer
	l := New("/nonexistent/viewer-binary", zerolog.New(zerolog.SyncWriter(&buf)))
	l.Open(context.Background(), []string{"x.png"})
	assert.Contains(t, buf.String(), "failed to open preview")
}

func TestOpen_NoPaths(t *testing.T) {
	l := New("viewer", zerolog.Nop())
	l.start = func(string, ...string) error {
		t.Fatal("start called without paths")
		return nil
	}
	l.Open(context.Background(), nil)
}

// slowViewer writes a viewer script that keeps running for the given time
// and records the file it was asked to open.
func slowViewer(t *testing.T, seconds int) (script, marker string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script viewer")
	}
	dir := t.TempDir()
	marker = filepath.Join(dir, "opened")
	script = filepath.Join(dir, "viewer.sh")
	body := "#!/bin/sh\necho \"$1\" > " + marker + "\nsleep " + strconv.Itoa(seconds) + "\n"
	require.NoError(t, os.WriteFile(script, []byte(body), 0o755))
	return script, marker
}

func TestOpen_DoesNotWaitForViewerExit(t *testing.T) {
	script, marker := slowViewer(t, 3)
	l := New(script, zerolog.Nop())

	start := time.Now()
	l.Open(context.Background(), []string{"/tmp/a.png"})
	assert.Less(t, time.Since(start), time.Second)

	assert.Eventually(t, func() bool {
		data, err := os.ReadFile(marker)
		return err == nil && strings.TrimSpace(string(data)) == "/tmp/a.png"
	}, 2*time.Second, 20*time.Millisecond)
}

func TestOpen_ViewerOutlivesCancelledContext(t *testing.T) {
	script, marker := slowViewer(t, 1)
	l := New(script, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	l.Open(ctx, []string{"/tmp/b.png"})
	cancel()

	assert.Eventually(t, func() bool {
		data, err := os.ReadFile(marker)
		return err == nil && strings.TrimSpace(string(data)) == "/tmp/b.png"
	}, 2*time.Second, 20*time.Millisecond)
}
