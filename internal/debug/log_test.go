package debug

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogIsSilentUntilEnabled(t *testing.T) {
	Disable()
	Log("test", "dropped %d", 1)
	if Enabled() {
		t.Fatalf("logging enabled by default")
	}
}

func TestEnableAtWritesAndSamples(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "debug.log")
	if err := EnableAt(path); err != nil {
		t.Fatalf("EnableAt: %v", err)
	}
	defer Disable()

	Log("midi", "note %d", 60)
	for i := 0; i < 10; i++ {
		LogEvery(5, "tick", "poll")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "note 60") {
		t.Fatalf("log missing message:\n%s", text)
	}
	if n := strings.Count(text, "poll (every 5"); n != 2 {
		t.Fatalf("sampled lines = %d, want 2:\n%s", n, text)
	}
}

func TestDirUsesConfigHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("HOME", home)
	dir, err := Dir()
	if err != nil {
		t.Fatalf("Dir: %v", err)
	}
	if filepath.Base(dir) != "sprockit" {
		t.Fatalf("dir = %s", dir)
	}
}
