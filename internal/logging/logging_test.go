package logging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func fixedLogger(buf *bytes.Buffer, level Level) Logger {
	return newWithClock(buf, level, func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) })
}

func TestLogfmtLine(t *testing.T) {
	var buf bytes.Buffer
	logger := fixedLogger(&buf, Info).With(F("session", "abc"))
	logger.Info("step advanced", F("from", "setup"), F("label", "Personal growth"), F("count", 8))

	want := `ts=2026-01-02T03:04:05Z level=info msg="step advanced" session=abc from=setup label="Personal growth" count=8` + "\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected line:\nwant %q\ngot  %q", want, got)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := fixedLogger(&buf, Warn)
	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")
	if strings.Count(buf.String(), "\n") != 1 || !strings.Contains(buf.String(), "msg=shown") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
	if logger.Enabled(Info) || !logger.Enabled(Error) {
		t.Fatalf("unexpected enabled levels")
	}
}

func TestFieldValues(t *testing.T) {
	var buf bytes.Buffer
	fixedLogger(&buf, Debug).Debug("values",
		F("nil", nil),
		F("empty", ""),
		F("err", errors.New("boom now")),
		F("ok", true),
		F("ratio", 2.5),
		F("list", []string{"a", "b"}),
		F("level", Warn),
	)
	want := `ts=2026-01-02T03:04:05Z level=debug msg=values nil=null empty="" err="boom now" ok=true ratio=2.5 list=a,b level=warn` + "\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected line:\nwant %q\ngot  %q", want, got)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   Debug,
		" WARN ":  Warn,
		"warning": Warn,
		"error":   Error,
		"":        Info,
		"bogus":   Info,
	}
	for raw, want := range cases {
		if got := ParseLevel(raw); got != want {
			t.Fatalf("ParseLevel(%q): expected %v, got %v", raw, want, got)
		}
	}
}

func TestNopDiscardsEverything(t *testing.T) {
	logger := Nop()
	if logger.Enabled(Error) {
		t.Fatalf("expected nop logger to be disabled")
	}
	logger.With(F("k", "v")).Error("ignored")
}

func TestOpenAppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ui.log")
	logger, closer, err := Open(path, Debug)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	logger.Debug("first")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	logger, closer, err = Open(path, Debug)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	logger.Info("second")
	_ = closer.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "msg=first") || !strings.Contains(string(data), "msg=second") {
		t.Fatalf("expected both lines, got %q", string(data))
	}
	if _, _, err := Open("  ", Info); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestOpenRotatesLargeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ui.log")
	if err := os.WriteFile(path, bytes.Repeat([]byte("x"), maxLogSize), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	logger, closer, err := Open(path, Info)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	logger.Info("fresh")
	_ = closer.Close()

	backup, err := os.Stat(path + ".1")
	if err != nil || backup.Size() != maxLogSize {
		t.Fatalf("expected full backup, got %v %v", backup, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.HasPrefix(string(data), "ts=") || !strings.Contains(string(data), "msg=fresh") {
		t.Fatalf("expected a fresh log, got %q", data)
	}
}

func TestNewSessionIDUnique(t *testing.T) {
	if NewSessionID() == NewSessionID() {
		t.Fatalf("expected distinct session ids")
	}
}
