package progress

import (
	"bytes"
	"strings"
	"testing"
)

func newTestReporter(verbose, silent bool, width int) (*Reporter, *bytes.Buffer) {
	var buf bytes.Buffer
	return &Reporter{
		writer:  &buf,
		errs:    &buf,
		verbose: verbose,
		silent:  silent,
		width:   func() int { return width },
	}, &buf
}

func TestNotify_Silent(t *testing.T) {
	r, buf := newTestReporter(false, true, 80)
	r.Notify(0.5, "/some/path")
	r.Printf("done")

	if buf.Len() != 0 {
		t.Errorf("Silent reporter should produce no output, got %q", buf.String())
	}
}

func TestNotify_Verbose(t *testing.T) {
	r, buf := newTestReporter(true, false, 80)
	r.Notify(0.25, "/some/path")
	r.Notify(0.5, "/other/path")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Verbose mode should print one line per notification, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "25.00%") || !strings.Contains(lines[0], "/some/path") {
		t.Errorf("Unexpected first line: %q", lines[0])
	}
}

func TestNotify_TruncatesToWidth(t *testing.T) {
	r, buf := newTestReporter(false, false, 20)
	r.Notify(0.5, "/a/very/long/path/that/exceeds/the/terminal/width")

	line := strings.TrimPrefix(buf.String(), "\r\x1b[2K")
	if len([]rune(line)) > 20 {
		t.Errorf("Status line wider than terminal: %d runes in %q", len([]rune(line)), line)
	}
	if !strings.HasSuffix(line, "…") {
		t.Errorf("Truncated line should end with ellipsis: %q", line)
	}
}

func TestPrintf_ClearsStatusLine(t *testing.T) {
	r, buf := newTestReporter(false, false, 80)
	r.Notify(0.5, "/some/path")
	r.Printf("Found %d folders", 3)

	out := buf.String()
	if !strings.HasSuffix(out, "Found 3 folders\n") {
		t.Errorf("Expected persistent line at the end, got %q", out)
	}
	if strings.Count(out, "\r\x1b[2K") != 2 {
		t.Errorf("Expected the status line to be erased before printing, got %q", out)
	}
}
