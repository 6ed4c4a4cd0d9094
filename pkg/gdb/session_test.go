package gdb

import (
	"fmt"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/Maan2003/gdb-utils/pkg/mi"
)

func TestLaunchArgs(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{
			"attach to pid",
			Options{PID: 1234},
			[]string{"--interpreter=mi3", "--nx", "--quiet", "-p", "1234"},
		},
		{
			"executable only",
			Options{Executable: "./app"},
			[]string{"--interpreter=mi3", "--nx", "--quiet", "./app"},
		},
		{
			"executable with core",
			Options{Executable: "./app", Core: "core.1234"},
			[]string{"--interpreter=mi3", "--nx", "--quiet", "./app", "core.1234"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := launchArgs(tt.opts); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("launchArgs(%+v) = %v, want %v", tt.opts, got, tt.want)
			}
		})
	}
}

func TestMIQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`xs`, `"xs"`},
		{`sizeof((buf)[0])`, `"sizeof((buf)[0])"`},
		{`s == "hi"`, `"s == \"hi\""`},
		{`a\b`, `"a\\b"`},
	}
	for _, tt := range tests {
		if got := miQuote(tt.in); got != tt.want {
			t.Errorf("miQuote(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestCloseDrainsPendingRecords(t *testing.T) {
	// More records than the channel buffers, with nobody waiting on a
	// result. The reader must still reach EOF and close the channel.
	var input strings.Builder
	for i := 0; i < 500; i++ {
		fmt.Fprintf(&input, "%d^done,value=\"1\"\n", i)
	}

	s := &Session{
		recs:   make(chan mi.Record, 64),
		logger: log.New(io.Discard),
	}
	go s.readLoop(strings.NewReader(input.String()))

	// Returns only once readLoop closed the channel; a reader stuck on a
	// full channel would hang the test here.
	s.drainRecords()
}

func TestShortID(t *testing.T) {
	if got := shortID("0123456789abcdef"); got != "01234567" {
		t.Errorf("shortID = %q, want first 8 chars", got)
	}
	if got := shortID("abc"); got != "abc" {
		t.Errorf("shortID of short input = %q, want unchanged", got)
	}
}
