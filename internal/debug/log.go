// Package debug is an opt-in file log for diagnosing the synth while it
// plays. Logging is off until Enable is called and costs one atomic load
// per call while off.
package debug

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"
)

var (
	file     *os.File
	mu       sync.Mutex
	enabled  atomic.Bool
	counters = make(map[string]int)
)

// Dir is the directory holding the log and saved patches.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "sprockit"), nil
}

// Enable starts logging to debug.log in Dir, truncating any previous log.
func Enable() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	return EnableAt(filepath.Join(dir, "debug.log"))
}

// EnableAt starts logging to path.
func EnableAt(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if enabled.Load() {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	file = f
	enabled.Store(true)

	write("debug", "=== Debug logging started ===")
	return nil
}

// Disable stops logging and closes the file.
func Disable() {
	mu.Lock()
	defer mu.Unlock()

	if file != nil {
		file.Close()
		file = nil
	}
	enabled.Store(false)
	clear(counters)
}

func Enabled() bool { return enabled.Load() }

// Log writes a message to the debug log.
func Log(category, format string, args ...any) {
	if !enabled.Load() {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	if file == nil {
		return
	}
	write(category, fmt.Sprintf(format, args...))
}

// LogEvery logs only every n-th call with the same category and format.
func LogEvery(n int, category, format string, args ...any) {
	if !enabled.Load() || n <= 0 {
		return
	}
	mu.Lock()
	key := category + format
	counters[key]++
	count := counters[key]
	mu.Unlock()

	if count%n == 0 {
		Log(category, format+" (every %d, count=%d)", append(args, n, count)...)
	}
}

// write must be called with mu held.
func write(category, msg string) {
	ts := time.Now().Format("15:04:05.000")
	fmt.Fprintf(file, "[%s] %-10s %s\n", ts, category, msg)
	file.Sync()
}
