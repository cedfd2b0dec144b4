package debug

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit_None(t *testing.T) {
	resetForTest()

	if err := Init(LevelNone); err != nil {
		t.Fatalf("Init(none) failed: %v", err)
	}
	if Enabled() {
		t.Error("Enabled() should return false for level none")
	}

	// Logging should be no-ops
	Log("test message")
	Logf("test %s", "formatted")
	Trace("dispatch", "action", "Tick")
	Logger().Info("still safe")
}

func TestInit_WritesAtLevel(t *testing.T) {
	resetForTest()
	logPath := useTempLogPath(t)

	if err := Init(LevelDebug); err != nil {
		t.Fatalf("Init(debug) failed: %v", err)
	}
	if !Enabled() {
		t.Error("Enabled() should return true after Init(debug)")
	}

	Log("test message")
	Logf("test %s %d", "formatted", 42)
	Trace("hidden trace line")
	Logger().Warn("remote failure", "issue", 42)

	content := readLog(t, logPath)
	if !strings.Contains(content, "tissue log started") {
		t.Error("Log file should contain startup message")
	}
	if !strings.Contains(content, "test message") {
		t.Error("Log file should contain 'test message'")
	}
	if !strings.Contains(content, "test formatted 42") {
		t.Error("Log file should contain 'test formatted 42'")
	}
	if !strings.Contains(content, "issue=42") {
		t.Error("Log file should contain structured attributes")
	}
	if strings.Contains(content, "hidden trace line") {
		t.Error("trace records should be filtered at debug level")
	}
}

func TestInit_TraceLevelLabel(t *testing.T) {
	resetForTest()
	logPath := useTempLogPath(t)

	if err := Init(LevelTrace); err != nil {
		t.Fatalf("Init(trace) failed: %v", err)
	}
	Trace("dispatch", "action", "Tick")

	content := readLog(t, logPath)
	if !strings.Contains(content, "level=TRACE") {
		t.Errorf("expected TRACE level label, got:\n%s", content)
	}
}

func TestInit_WarnFiltersDebug(t *testing.T) {
	resetForTest()
	logPath := useTempLogPath(t)

	if err := Init(LevelWarn); err != nil {
		t.Fatalf("Init(warn) failed: %v", err)
	}
	Logf("debug noise")
	Logger().Error("kept")

	content := readLog(t, logPath)
	if strings.Contains(content, "debug noise") {
		t.Error("debug records should be filtered at warn level")
	}
	if !strings.Contains(content, "kept") {
		t.Error("error records should pass at warn level")
	}
}

func TestInit_TruncatesExistingLog(t *testing.T) {
	resetForTest()
	logPath := useTempLogPath(t)

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		t.Fatalf("Failed to create log directory: %v", err)
	}
	if err := os.WriteFile(logPath, []byte("old log content that should be truncated\n"), 0600); err != nil {
		t.Fatalf("Failed to write pre-existing log: %v", err)
	}

	if err := Init(LevelInfo); err != nil {
		t.Fatalf("Init(info) failed: %v", err)
	}

	content := readLog(t, logPath)
	if strings.Contains(content, "old log content") {
		t.Error("Log file should have been truncated, but old content still present")
	}
}

func TestClose(t *testing.T) {
	resetForTest()
	useTempLogPath(t)

	if err := Init(LevelInfo); err != nil {
		t.Fatalf("Init(info) failed: %v", err)
	}

	// Multiple closes should be safe
	Close()
	Close()
}

func TestParseLevel(t *testing.T) {
	for _, in := range []string{"trace", "DEBUG", " info ", "warn", "error", "none"} {
		if _, err := ParseLevel(in); err != nil {
			t.Errorf("ParseLevel(%q) returned error: %v", in, err)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestGetLogPath(t *testing.T) {
	path, err := GetLogPath()
	if err != nil {
		t.Fatalf("GetLogPath() failed: %v", err)
	}
	if !strings.HasSuffix(path, filepath.Join(LogDirName, LogFileName)) {
		t.Errorf("GetLogPath() = %q, want suffix %q", path, filepath.Join(LogDirName, LogFileName))
	}
	dir, err := LogDir()
	if err != nil {
		t.Fatalf("LogDir() failed: %v", err)
	}
	if filepath.Base(dir) != LogDirName {
		t.Errorf("LogDir() = %q, want base %q", dir, LogDirName)
	}
}

func useTempLogPath(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, LogDirName, LogFileName)
	orig := getLogPath
	getLogPath = func() (string, error) { return path, nil }
	t.Cleanup(func() {
		getLogPath = orig
		Close()
		resetForTest()
	})
	return path
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	return string(content)
}

// resetForTest resets the package state for testing.
func resetForTest() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
	enabled = false
	logger = discardLogger()
}
