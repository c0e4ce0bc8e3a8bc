package splice

import (
	"audioheal/internal/audio"
)

// Align trims or pads a synthesized clip so its leading and trailing
// silence widths equal the half-lengths measured at the original track's
// boundaries, guaranteeing a seamless join. A nil endHalfLength marks a
// track-final target: the trailing edge is left untouched and the clip
// runs to its full synthesized length. The result never aliases the input
// clip's buffer.
func (l Locator) Align(clip *audio.Track, startHalfLength int, endHalfLength *int) *audio.Track {
	rate := clip.SampleRate()

	// Leading edge: the clip should open with exactly startHalfLength of
	// silence before its first loud millisecond.
	firstLoud := l.LeadingSilenceEnd(clip)
	lead := firstLoud - startHalfLength
	if lead < 0 {
		clip = audio.Silence(rate, -lead).Concat(clip)
	} else {
		clip = clip.Tail(lead)
	}

	if endHalfLength == nil {
		// Track-final target: force a copy so the caller still owns a
		// buffer independent of the raw synthesized clip.
		return clip.Slice(0, clip.DurationMS())
	}

	// Trailing edge, symmetric: exactly endHalfLength of silence after the
	// last loud millisecond.
	speechEnd := l.TrailingSilenceStart(clip)
	tail := speechEnd + *endHalfLength
	if tail > clip.DurationMS() {
		clip = clip.Concat(audio.Silence(rate, tail-clip.DurationMS()))
	} else {
		clip = clip.Head(tail)
	}
	return clip
}
