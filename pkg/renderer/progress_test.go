package renderer

import (
	"bytes"
	"strings"
	"testing"
)

func TestTerminalProgressInteractive(t *testing.T) {
	var buf bytes.Buffer
	p := newTerminalProgress(&buf, true, nil)

	p.Update(2, 3)
	p.Update(1, 3)
	p.Update(2, 3) // late update from a slower worker
	p.Update(0, 3)
	p.Done()

	want := "\rScanlines remaining: 2 \rScanlines remaining: 1 \rScanlines remaining: 0 \rDone.                       \n"
	if buf.String() != want {
		t.Errorf("Unexpected progress output %q", buf.String())
	}
}

func TestTerminalProgressLogsDeciles(t *testing.T) {
	var buf bytes.Buffer
	logger := &recordingLogger{}
	p := newTerminalProgress(&buf, false, logger)

	for remaining := 99; remaining >= 0; remaining-- {
		p.Update(remaining, 100)
	}
	p.Done()

	if buf.Len() != 0 {
		t.Errorf("Non-interactive progress should not write to the terminal, got %q", buf.String())
	}
	// 10 decile lines plus Done
	if len(logger.infos) != 11 {
		t.Fatalf("Expected 11 log lines, got %d: %v", len(logger.infos), logger.infos)
	}
	if !strings.HasPrefix(logger.infos[0], "10% ") {
		t.Errorf("Expected first line at 10%%, got %q", logger.infos[0])
	}
	if logger.infos[10] != "Done." {
		t.Errorf("Expected final Done line, got %q", logger.infos[10])
	}
}
