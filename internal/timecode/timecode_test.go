package timecode_test

import (
	"errors"
	"testing"

	"audioheal/internal/services"
	"audioheal/internal/timecode"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"[00:00.00]", 0},
		{"[01:02.03]", 62030},
		{"01:02.03", 62030},
		{"[12:34.56]", 754560},
		{"[0:05.50]", 5500},
		{"[100:00.00]", 6000000},
	}
	for _, tc := range cases {
		got, err := timecode.Parse(tc.in)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("Parse(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseRejectsMalformedInput(t *testing.T) {
	for _, in := range []string{"", "abc", "12.34:56", "[01:02]", "1:2", "[01:02.03] extra"} {
		if _, err := timecode.Parse(in); !errors.Is(err, services.ErrFormat) {
			t.Fatalf("Parse(%q) expected ErrFormat, got %v", in, err)
		}
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, "[00:00.00]"},
		{62030, "[01:02.03]"},
		{754560, "[12:34.56]"},
		{5500, "[00:05.50]"},
		{999, "[00:00.99]"},
		// Truncation, not rounding.
		{62039, "[01:02.03]"},
	}
	for _, tc := range cases {
		if got := timecode.Format(tc.in); got != tc.want {
			t.Fatalf("Format(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// Round-tripping is exact at the codec's native 10ms resolution and lossy
// below it. That asymmetry is accepted behavior.
func TestRoundTrip(t *testing.T) {
	for ms := 0; ms < 240000; ms += 10 {
		parsed, err := timecode.Parse(timecode.Format(ms))
		if err != nil {
			t.Fatalf("round trip of %d failed: %v", ms, err)
		}
		if parsed != ms {
			t.Fatalf("round trip of %d produced %d", ms, parsed)
		}
	}

	parsed, err := timecode.Parse(timecode.Format(1234))
	if err != nil {
		t.Fatal(err)
	}
	if parsed != 1230 {
		t.Fatalf("expected sub-hundredth precision to truncate to 1230, got %d", parsed)
	}
}

func TestValidTarget(t *testing.T) {
	valid := []string{"[01:02.03]", "01:02.03", "1:02.03"}
	invalid := []string{"[001:02.03]", "[01:2.03]", "[01:02.3]", "word", ""}
	for _, in := range valid {
		if !timecode.ValidTarget(in) {
			t.Fatalf("expected %q to be a valid target", in)
		}
	}
	for _, in := range invalid {
		if timecode.ValidTarget(in) {
			t.Fatalf("expected %q to be rejected", in)
		}
	}
}
