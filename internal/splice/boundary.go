package splice

import (
	"fmt"

	"audioheal/internal/audio"
	"audioheal/internal/services"
	"audioheal/internal/timecode"
)

// SilenceThresholdDBFS is the loudness below which a millisecond counts as
// silent.
const SilenceThresholdDBFS = -60.0

// Point is a located cut point. Position is the midpoint between the last
// silent and first loud millisecond bounding the silent region;
// HalfLength is half the region's width, reserved on the replacement side
// so the seam stays inaudible.
type Point struct {
	Position   int
	HalfLength int
}

// Locator finds silence-bounded cut points in a track.
type Locator struct {
	Threshold float64
	// MinMarginMS, when positive, is the smallest acceptable half-length.
	// Zero tolerates degenerate boundaries at track edges.
	MinMarginMS int
}

// NewLocator returns a locator at the default threshold with no minimum
// margin.
func NewLocator() Locator {
	return Locator{Threshold: SilenceThresholdDBFS}
}

// LocateStart finds the cut point for a speech span nominally beginning at
// startMS: scan forward through silence to the first loud millisecond, then
// back through speech to the last silent one before it.
func (l Locator) LocateStart(track *audio.Track, startMS int) (Point, error) {
	after := l.advance(track, startMS, 1, true)
	before := l.advance(track, after, -1, false)
	point := Point{
		Position:   (before + after) / 2,
		HalfLength: (after - before) / 2,
	}
	return point, l.checkMargin(point, "start boundary", startMS)
}

// LocateEnd finds the cut point for a speech span nominally ending at
// endMS: scan backward through silence to the end of speech, then forward
// through speech to the next silent millisecond (or track end). A nil
// endMS marks a track-final target; both outputs are nil and no end
// trim or pad applies downstream.
func (l Locator) LocateEnd(track *audio.Track, endMS *int) (*Point, error) {
	if endMS == nil {
		return nil, nil
	}
	after := l.advance(track, *endMS, -1, true)
	before := l.advance(track, after, 1, false)
	point := Point{
		Position:   (before + after) / 2,
		HalfLength: (before - after) / 2,
	}
	if err := l.checkMargin(point, "end boundary", *endMS); err != nil {
		return nil, err
	}
	return &point, nil
}

// LeadingSilenceEnd returns the index of the first loud millisecond,
// scanning the clip forward from its own edge.
func (l Locator) LeadingSilenceEnd(clip *audio.Track) int {
	return l.advance(clip, 0, 1, true)
}

// TrailingSilenceStart returns the index just past the last loud
// millisecond, scanning the clip backward from its own edge.
func (l Locator) TrailingSilenceStart(clip *audio.Track) int {
	return l.advance(clip, clip.DurationMS(), -1, true)
}

// advance walks idx one millisecond at a time in direction dir while the
// probed window stays silent (wantSilent) or loud (!wantSilent). Forward
// scans probe the window at idx, backward scans the window at idx-1, so a
// returned index always sits on the transition. Scans stop at track edges;
// that is expected, not an error.
func (l Locator) advance(track *audio.Track, idx, dir int, wantSilent bool) int {
	threshold := l.Threshold
	if threshold == 0 {
		threshold = SilenceThresholdDBFS
	}
	length := track.DurationMS()
	for {
		if dir > 0 && idx >= length {
			return length
		}
		if dir < 0 && idx <= 0 {
			return 0
		}
		probe := idx
		if dir < 0 {
			probe = idx - 1
		}
		silent := track.LoudnessAt(probe) < threshold
		if silent != wantSilent {
			return idx
		}
		idx += dir
	}
}

func (l Locator) checkMargin(point Point, boundary string, nominal int) error {
	if l.MinMarginMS <= 0 || point.HalfLength >= l.MinMarginMS {
		return nil
	}
	detail := fmt.Sprintf("%s near %s has %dms margin, need %dms", boundary, timecode.Format(nominal), point.HalfLength, l.MinMarginMS)
	return services.Wrap(services.ErrUnsplicable, "splice", "locate", detail, nil)
}
