package log

import (
	"slices"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"trace", LevelTrace},
		{"TRACE", LevelTrace},
		{" debug ", LevelDebug},
		{"Info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"warn+1", LevelWarn + 1},
		{"bogus", DefaultLevel},
		{"", DefaultLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevel_String(t *testing.T) {
	for name := range Levels() {
		if got := ParseLevel(name).String(); got != name {
			t.Errorf("ParseLevel(%q).String() = %q", name, got)
		}
	}

	if got := (LevelInfo + 2).String(); got != "INFO+2" {
		t.Errorf("String() = %q, want INFO+2", got)
	}
}

func TestParseFormat(t *testing.T) {
	if got := slices.Collect(Formats()); !slices.Equal(got, []string{"text", "json"}) {
		t.Errorf("Formats() = %v", got)
	}

	tests := map[string]Format{
		"json": FormatJSON,
		"JSON": FormatJSON,
		"text": FormatText,
		"yaml": DefaultFormat,
	}

	for in, want := range tests {
		if got := ParseFormat(in); got != want {
			t.Errorf("ParseFormat(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestTimeLayout(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"RFC3339", time.RFC3339},
		{"rfc3339nano", time.RFC3339Nano},
		{"Kitchen", time.Kitchen},
		{"date-time", time.DateTime},
		{"none", ""},
		{"  ", ""},
		{"15:04", "15:04"},
	}

	for _, tt := range tests {
		if got := timeLayout(tt.in); got != tt.want {
			t.Errorf("timeLayout(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOptions_NilOutput(t *testing.T) {
	c := makeConfig(nil, WithOutput(nil), nil)

	if c.output == nil {
		t.Fatal("nil output not replaced")
	}
}
