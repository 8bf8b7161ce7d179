package actionlog

import (
	"bytes"
	"strings"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"timerdash/internal/clock"
	"timerdash/internal/model"
)

func TestRecordLineFormat(t *testing.T) {
	var buf bytes.Buffer
	c := clock.NewFake(time.Date(2026, 2, 3, 17, 34, 22, 0, time.Local))
	logger := New(&buf, c)

	logger.Record(model.CategoryTimer, "Started", "ID: abcd1234, Name: Tea, Duration: 60s")
	c.Advance(5 * time.Second)
	logger.Record(model.CategorySystem, "Control", "Paused All")

	want := "2026-02-03 17:34:22 [INFO] [Timer] Started - ID: abcd1234, Name: Tea, Duration: 60s\n" +
		"2026-02-03 17:34:27 [INFO] [System] Control - Paused All\n"
	if buf.String() != want {
		t.Fatalf("unexpected log output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestFormatterFlattensNewlines(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogrus(&buf, log.DebugLevel)
	logger.Warn("first\nsecond")
	if strings.Count(buf.String(), "\n") != 1 {
		t.Fatalf("expected a single line, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "[WARNING] first second") {
		t.Fatalf("unexpected line %q", buf.String())
	}
}

func TestOpenAppends(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/home/user/.timer_cli/timer_cli.log"

	for i := 0; i < 2; i++ {
		file, err := Open(fs, path)
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		New(file, clock.Real{}).Record(model.CategoryStopwatch, "Lap", "ID: feedbeef")
		if err := file.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if got := strings.Count(string(data), "[Stopwatch] Lap - ID: feedbeef"); got != 2 {
		t.Fatalf("expected 2 appended records, got %d:\n%s", got, data)
	}
}
