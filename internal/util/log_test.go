package util

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetColors(false)
	defer func() {
		SetOutput(nil)
		SetColors(true)
		SetLogLevel(LevelInfo)
	}()

	SetLogLevel(LevelInfo)
	DebugLog("hidden %d", 1)
	InfoLog("loaded %d rows", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line printed at info level: %q", out)
	}
	if !strings.Contains(out, "[INFO]  loaded 3 rows") {
		t.Errorf("info line missing: %q", out)
	}

	buf.Reset()
	SetQuiet(true)
	if !IsQuiet() {
		t.Error("expected IsQuiet after SetQuiet(true)")
	}
	WarnLog("warned")
	ErrorLog("failed")

	out = buf.String()
	if strings.Contains(out, "warned") {
		t.Errorf("warning printed in quiet mode: %q", out)
	}
	if !strings.Contains(out, "[ERROR] failed") {
		t.Errorf("error line missing in quiet mode: %q", out)
	}
}
