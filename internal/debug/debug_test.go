package debug

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrintf_DisabledByDefault(t *testing.T) {
	t.Setenv("DEBUG", "")
	var buf bytes.Buffer
	SetDebugOutput(&buf)
	defer SetDebugOutput(nil)

	Printf("should not appear\n")
	if buf.Len() != 0 {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestPrintf_EnabledViaEnv(t *testing.T) {
	t.Setenv("DEBUG", "1")
	var buf bytes.Buffer
	SetDebugOutput(&buf)
	defer SetDebugOutput(nil)

	Printf("hello %s\n", "world")
	if got := buf.String(); got != "[DEBUG] hello world\n" {
		t.Errorf("got %q", got)
	}
}

func TestLog_ComponentPrefix(t *testing.T) {
	t.Setenv("DEBUG", "true")
	var buf bytes.Buffer
	SetDebugOutput(&buf)
	defer SetDebugOutput(nil)

	LogSearch("dispatching %d workers\n", 16)
	if got := buf.String(); !strings.HasPrefix(got, "[DEBUG:SEARCH] ") {
		t.Errorf("got %q", got)
	}
}

func TestLog_NoWriterNoOutput(t *testing.T) {
	t.Setenv("DEBUG", "1")
	SetDebugOutput(nil)

	// Must not panic with a nil writer.
	LogSource("mapped %s\n", "file.txt")
}
