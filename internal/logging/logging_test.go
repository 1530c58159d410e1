package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func newTestLogger(verbose, debug bool) (Logger, *bytes.Buffer, *bytes.Buffer) {
	color.NoColor = true
	var out, errOut bytes.Buffer
	return Logger{Verbose: verbose, Debug: debug, Out: &out, Err: &errOut}, &out, &errOut
}

func TestQuietLoggerOnlyShowsCriticalWarnings(t *testing.T) {
	l, out, errOut := newTestLogger(false, false)

	l.Infof("info %d", 1)
	l.Debugf("debug %d", 2)
	l.Warnf("warn %d", 3)
	l.Errorf("error %d", 4)
	l.WarnfAlways("private key written without a passphrase")

	if out.Len() != 0 {
		t.Errorf("expected no stdout output, got %q", out.String())
	}
	if got := errOut.String(); got != "[warn] private key written without a passphrase\n" {
		t.Errorf("unexpected stderr output: %q", got)
	}
}

func TestVerboseLogger(t *testing.T) {
	l, out, errOut := newTestLogger(true, false)

	l.Infof("hashing %s", "a.txt")
	l.Debugf("hidden")
	l.Warnf("key truncated")

	if !strings.Contains(out.String(), "[info] hashing a.txt") {
		t.Errorf("expected info line, got %q", out.String())
	}
	if strings.Contains(out.String(), "hidden") {
		t.Errorf("debug output leaked in verbose mode: %q", out.String())
	}
	if !strings.Contains(errOut.String(), "[warn] key truncated") {
		t.Errorf("expected warning, got %q", errOut.String())
	}
}

func TestDebugLoggerAndErrorfAndReturn(t *testing.T) {
	l, out, errOut := newTestLogger(false, true)

	l.Debugf("state %q", "active")
	err := l.ErrorfAndReturn("failed to read %s", "key.pem")

	if !strings.Contains(out.String(), `[debug] state "active"`) {
		t.Errorf("expected debug line, got %q", out.String())
	}
	if err == nil || err.Error() != "failed to read key.pem" {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(errOut.String(), "[error] failed to read key.pem") {
		t.Errorf("expected error line, got %q", errOut.String())
	}
}
