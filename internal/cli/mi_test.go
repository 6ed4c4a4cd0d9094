package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestRunMIJSON(t *testing.T) {
	in := strings.Join([]string{
		`7^done,value="{1, 2, 3}"`,
		`~"Reading symbols...\n"`,
		`(gdb) `,
	}, "\n")

	c := New(io.Discard, LogInfo)
	var out bytes.Buffer
	if err := c.runMIJSON(strings.NewReader(in), &out); err != nil {
		t.Fatalf("runMIJSON error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d output lines, want 3:\n%s", len(lines), out.String())
	}
	for i, want := range []string{`"type":"result"`, `"type":"console"`, `"type":"done"`} {
		if !strings.Contains(lines[i], want) {
			t.Errorf("line %d = %s, missing %q", i, lines[i], want)
		}
	}
}

func TestRunMIJSONSkipsMalformed(t *testing.T) {
	in := "^\n(gdb) \n"

	c := New(io.Discard, LogInfo)
	var out bytes.Buffer
	if err := c.runMIJSON(strings.NewReader(in), &out); err != nil {
		t.Fatalf("runMIJSON error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 1 || !strings.Contains(lines[0], `"type":"done"`) {
		t.Errorf("output = %q, want the malformed line skipped", out.String())
	}
}
