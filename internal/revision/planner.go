package revision

import (
	"fmt"
	"regexp"
	"sort"

	"audioheal/internal/audio"
	"audioheal/internal/lyrics"
	"audioheal/internal/splice"
)

// Request is one planned correction: a lyric line annotated with its
// corrected text, synthesis markup, and, as the pipeline advances, the cut
// points located in the original track and the aligned replacement clip.
type Request struct {
	Line    lyrics.Line
	NewText string
	Markup  string
	// EndTime is the target's effective end: the next line's start in the
	// full lyric ordering, nil when the target is the last line.
	EndTime *int

	// Filled in by boundary location.
	Start splice.Point
	End   *splice.Point

	// Filled in by alignment. Never aliases the raw synthesized buffer.
	ReadyToSplice *audio.Track
}

// Plan builds a correction request for every selected line. In word mode
// every case-insensitive occurrence of target within the line is replaced;
// otherwise the whole line text is replaced. End times come from the full
// store's ordering, independent of which subset was selected, so a single
// corrected line still gets its natural end.
func Plan(store *lyrics.Store, selected map[int]*lyrics.Line, target, replacement string, wordMode bool) ([]*Request, error) {
	var pattern *regexp.Regexp
	if wordMode {
		var err error
		pattern, err = regexp.Compile("(?i)" + regexp.QuoteMeta(target))
		if err != nil {
			return nil, fmt.Errorf("compile target pattern: %w", err)
		}
	}

	keys := make([]int, 0, len(selected))
	for key := range selected {
		keys = append(keys, key)
	}
	sort.Ints(keys)

	requests := make([]*Request, 0, len(keys))
	for _, key := range keys {
		line := selected[key]
		newText := replacement
		if wordMode {
			newText = pattern.ReplaceAllString(line.Original, replacement)
		}
		requests = append(requests, &Request{
			Line:    *line,
			NewText: newText,
			Markup:  fmt.Sprintf("<speak>%s</speak>", newText),
			EndTime: store.EndTimeOf(key),
		})
	}
	return requests, nil
}

// CharacterCount totals the markup characters that will be submitted to
// the synthesis service.
func CharacterCount(requests []*Request) int {
	total := 0
	for _, req := range requests {
		total += len(req.Markup)
	}
	return total
}
