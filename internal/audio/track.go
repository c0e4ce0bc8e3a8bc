package audio

import (
	"fmt"
	"math"

	"audioheal/internal/services"
)

const (
	bitDepth  = 16
	fullScale = 32768.0
)

// Track is an immutable sequence of 16-bit mono PCM samples addressable by
// millisecond offset.
type Track struct {
	samples []int
	rate    int
}

// NewTrack wraps raw samples at the given sample rate. The rate must be a
// whole number of samples per millisecond so millisecond offsets map
// exactly onto sample indices.
func NewTrack(samples []int, rate int) (*Track, error) {
	if rate <= 0 || rate%1000 != 0 {
		return nil, services.Wrap(services.ErrValidation, "audio", "", fmt.Sprintf("sample rate %d is not a whole number of samples per millisecond", rate), nil)
	}
	return &Track{samples: samples, rate: rate}, nil
}

// Silence produces a track of silent samples with the given duration.
func Silence(rate, durationMS int) *Track {
	if durationMS < 0 {
		durationMS = 0
	}
	return &Track{samples: make([]int, durationMS*(rate/1000)), rate: rate}
}

// SampleRate returns the track's sample rate in Hz.
func (t *Track) SampleRate() int { return t.rate }

// DurationMS returns the track length in milliseconds. Sample counts that
// do not fill a whole millisecond are truncated.
func (t *Track) DurationMS() int { return len(t.samples) / (t.rate / 1000) }

// Samples returns the underlying sample slice. Callers must not modify it.
func (t *Track) Samples() []int { return t.samples }

// Slice returns the span [fromMS, toMS) as a new track. Bounds are clamped
// to the track.
func (t *Track) Slice(fromMS, toMS int) *Track {
	perMS := t.rate / 1000
	from := clamp(fromMS*perMS, 0, len(t.samples))
	to := clamp(toMS*perMS, from, len(t.samples))
	out := make([]int, to-from)
	copy(out, t.samples[from:to])
	return &Track{samples: out, rate: t.rate}
}

// Head returns everything before toMS.
func (t *Track) Head(toMS int) *Track { return t.Slice(0, toMS) }

// Tail returns everything at and after fromMS.
func (t *Track) Tail(fromMS int) *Track { return t.Slice(fromMS, t.DurationMS()) }

// Concat appends the given tracks after this one, producing a new track.
// All tracks must share a sample rate.
func (t *Track) Concat(parts ...*Track) *Track {
	total := len(t.samples)
	for _, p := range parts {
		total += len(p.samples)
	}
	out := make([]int, 0, total)
	out = append(out, t.samples...)
	for _, p := range parts {
		out = append(out, p.samples...)
	}
	return &Track{samples: out, rate: t.rate}
}

// LoudnessAt reports the loudness in dBFS of the one millisecond window
// starting at the given offset. Pure silence (or an empty window outside
// the track) reports negative infinity, matching the convention that 0
// dBFS is maximum representable amplitude.
func (t *Track) LoudnessAt(ms int) float64 {
	perMS := t.rate / 1000
	from := ms * perMS
	to := from + perMS
	if from < 0 || from >= len(t.samples) {
		return math.Inf(-1)
	}
	if to > len(t.samples) {
		to = len(t.samples)
	}
	var sum float64
	for _, s := range t.samples[from:to] {
		v := float64(s)
		sum += v * v
	}
	rms := math.Sqrt(sum / float64(to-from))
	if rms == 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(rms/fullScale)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
