package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log %s failed: %v", path, err)
	}
	return string(content)
}

func TestResolveLogFilePathDefaultsToWorkdir(t *testing.T) {
	t.Chdir(t.TempDir())
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("get wd failed: %v", err)
	}

	got, err := resolveLogFilePath(Options{})
	if err != nil {
		t.Fatalf("resolve log path failed: %v", err)
	}
	want := filepath.Join(wd, defaultLogDirName, defaultLogFilename)
	if got != want {
		t.Fatalf("log path want %s got %s", want, got)
	}
	if _, err := os.Stat(got); err != nil {
		t.Fatalf("log file should be created: %v", err)
	}
}

func TestResolveLogFilePathRejectsUnwritableDir(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker failed: %v", err)
	}
	if _, err := resolveLogFilePath(Options{Dir: blocker}); err == nil {
		t.Fatalf("file used as log dir should fail")
	}
}

func TestNewReleaseWritesJSONAndRespectsLevel(t *testing.T) {
	dir := t.TempDir()
	log := New("release", Options{Dir: dir, Filename: "shop.log", Level: "warn"})
	log.Info("cart_loaded")
	log.Warn("cart_merge_deferred")
	_ = log.Sync()

	content := readLog(t, filepath.Join(dir, "shop.log"))
	if strings.Contains(content, "cart_loaded") {
		t.Fatalf("info entry should be filtered at warn level")
	}
	if !strings.Contains(content, `"message":"cart_merge_deferred"`) {
		t.Fatalf("warn entry missing or not json: %s", content)
	}
}

func TestNewDebugSkipsFile(t *testing.T) {
	dir := t.TempDir()
	log := New("debug", Options{Dir: dir, Filename: "debug.log"})
	log.Info("debug-entry")
	_ = log.Sync()

	if _, err := os.Stat(filepath.Join(dir, "debug.log")); !os.IsNotExist(err) {
		t.Fatalf("debug mode should not create a log file")
	}
}

func TestResolveLevel(t *testing.T) {
	cases := []struct {
		raw   string
		debug bool
		want  zapcore.Level
	}{
		{"", true, zapcore.DebugLevel},
		{"", false, zapcore.InfoLevel},
		{" WARN ", true, zapcore.WarnLevel},
		{"error", false, zapcore.ErrorLevel},
		{"verbose", false, zapcore.InfoLevel},
	}
	for _, tc := range cases {
		if got := resolveLevel(tc.raw, tc.debug); got != tc.want {
			t.Fatalf("resolveLevel(%q, %v) want %s got %s", tc.raw, tc.debug, tc.want, got)
		}
	}
}

func TestSugarFallbackBeforeInit(t *testing.T) {
	prev := L
	L = nil
	t.Cleanup(func() { L = prev })

	if S() == nil {
		t.Fatalf("fallback sugar should not be nil")
	}
	first := fallback.Load()
	S().Infow("fallback_reused")
	if first == nil || fallback.Load() != first {
		t.Fatalf("fallback logger should be created once and reused")
	}
}
