// Package testsupport builds synthetic PCM tracks for tests: alternating
// speech and silence spans with known millisecond boundaries, so silence
// scans and splice arithmetic can be checked exactly.
package testsupport

import (
	"testing"

	"audioheal/internal/audio"
)

// SampleRate is the fixed rate synthetic tracks are built at.
const SampleRate = 16000

// SpeechAmplitude sits around -12 dBFS, comfortably above the -60 dBFS
// silence threshold.
const SpeechAmplitude = 8000

// Span describes a run of milliseconds that is either speech or silence.
type Span struct {
	MS   int
	Loud bool
}

// Speech returns a loud span of the given length.
func Speech(ms int) Span { return Span{MS: ms, Loud: true} }

// Silence returns a silent span of the given length.
func Silence(ms int) Span { return Span{MS: ms, Loud: false} }

// BuildTrack assembles a track from the given spans.
func BuildTrack(t *testing.T, spans ...Span) *audio.Track {
	t.Helper()
	perMS := SampleRate / 1000
	var samples []int
	for _, span := range spans {
		value := 0
		if span.Loud {
			value = SpeechAmplitude
		}
		for i := 0; i < span.MS*perMS; i++ {
			samples = append(samples, value)
		}
	}
	track, err := audio.NewTrack(samples, SampleRate)
	if err != nil {
		t.Fatalf("build track: %v", err)
	}
	return track
}
