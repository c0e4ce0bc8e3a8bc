// Package timecode converts between LRC-style [mm:ss.xx] timestamps and
// integer millisecond offsets. The textual form carries hundredths of a
// second, so round-tripping is lossy below 10ms resolution.
package timecode

import (
	"fmt"
	"regexp"

	"audioheal/internal/services"
)

var (
	timestampPattern = regexp.MustCompile(`^\[?(\d+):(\d+)\.(\d+)\]?$`)
	// targetPattern is the stricter grammar required of user-supplied
	// timestamp targets: one or two minute digits, exactly two second and
	// hundredth digits.
	targetPattern = regexp.MustCompile(`^\[?\d{1,2}:\d{2}\.\d{2}\]?$`)
)

// Parse converts a timestamp of the form mm:ss.xx, optionally bracketed,
// into a millisecond offset.
func Parse(text string) (int, error) {
	match := timestampPattern.FindStringSubmatch(text)
	if match == nil {
		return 0, services.Wrap(services.ErrFormat, "timecode", "", fmt.Sprintf("%q does not match [mm:ss.xx]", text), nil)
	}
	minutes := atoi(match[1])
	seconds := atoi(match[2])
	hundredths := atoi(match[3])
	return (minutes*60+seconds)*1000 + hundredths*10, nil
}

// Format renders a millisecond offset as [mm:ss.xx]. Minutes, seconds, and
// hundredths are always zero-padded to two digits; sub-hundredth precision
// is truncated, not rounded.
func Format(ms int) string {
	if ms < 0 {
		ms = 0
	}
	minutes := ms / 60000
	seconds := (ms % 60000) / 1000
	hundredths := (ms % 1000) / 10
	return fmt.Sprintf("[%02d:%02d.%02d]", minutes, seconds, hundredths)
}

// ValidTarget reports whether text satisfies the timestamp grammar accepted
// for command-line targets.
func ValidTarget(text string) bool {
	return targetPattern.MatchString(text)
}

func atoi(digits string) int {
	n := 0
	for _, r := range digits {
		n = n*10 + int(r-'0')
	}
	return n
}
