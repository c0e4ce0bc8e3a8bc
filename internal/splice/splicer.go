package splice

import (
	"sort"

	"audioheal/internal/audio"
)

// Target is one replacement ready to be stitched into the timeline.
type Target struct {
	// TimeKey is the lyric line's original start offset, used only for
	// ordering.
	TimeKey int
	// Start and End are the cut points located in the original track. A
	// nil End marks a track-final target whose replacement runs to the end
	// of the new track.
	Start Point
	End   *Point
	// NominalEnd is the target line's effective end time in the original
	// track, which is the next line's start. Nil for a track-final target.
	NominalEnd *int
	// Clip is the aligned replacement audio.
	Clip *audio.Track
}

// Result records where a target landed in the rebuilt track.
type Result struct {
	TimeKey int
	// NewStart is the corrected line's start offset in the new track.
	NewStart int
	// EndTime is where the replacement audio ends in the new track,
	// including the reserved end silence margin.
	EndTime int
}

// Apply performs a single splice step: given the live track and the
// cumulative delta from earlier steps, it replaces the target's span and
// returns the new track, the updated delta, and the target's landing
// position. It is a pure fold step; callers must apply steps in ascending
// TimeKey order.
func Apply(track *audio.Track, delta int, target Target) (*audio.Track, int, Result) {
	start := target.Start.Position + delta

	if target.End == nil {
		out := track.Head(start).Concat(target.Clip)
		return out, delta, Result{
			TimeKey:  target.TimeKey,
			NewStart: start,
			EndTime:  out.DurationMS(),
		}
	}

	end := target.End.Position + delta
	out := track.Head(start).Concat(target.Clip, track.Tail(end))
	newDelta := delta + target.Clip.DurationMS() - (end - start)

	// The replacement's end time is the next line's start carried into the
	// rebuilt track. Defining it this way makes the lyric rewriter's shift
	// equal the cumulative delta, which keeps untouched lines aligned with
	// the audio that actually moved.
	endTime := newDelta
	if target.NominalEnd != nil {
		endTime += *target.NominalEnd
	} else {
		endTime = out.DurationMS()
	}
	return out, newDelta, Result{
		TimeKey:  target.TimeKey,
		NewStart: start,
		EndTime:  endTime,
	}
}

// Run folds Apply over every target in ascending TimeKey order and returns
// the rebuilt track plus the landing position of each target.
func Run(track *audio.Track, targets []Target) (*audio.Track, []Result) {
	ordered := make([]Target, len(targets))
	copy(ordered, targets)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].TimeKey < ordered[j].TimeKey })

	results := make([]Result, 0, len(ordered))
	delta := 0
	current := track
	for _, target := range ordered {
		var result Result
		current, delta, result = Apply(current, delta, target)
		results = append(results, result)
	}
	return current, results
}
