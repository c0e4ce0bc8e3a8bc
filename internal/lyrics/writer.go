package lyrics

import (
	"strings"

	"audioheal/internal/timecode"
)

// Correction captures what the splicer did to one target line: where the
// corrected line now starts in the new track, the corrected text, and where
// the replacement audio ends.
type Correction struct {
	NewStart int
	NewText  string
	EndTime  *int
}

// Render emits the updated LRC document. Corrected lines are written at
// their new start offsets; every untouched line after a correction is
// shifted by the difference between the replacement's end time and the
// original next line's start, until a later correction supersedes the
// shift. Unparseable input lines are re-emitted verbatim in their original
// positions.
func (s *Store) Render(corrections map[int]Correction) string {
	var out strings.Builder
	shift := 0

	for _, text := range s.verbatim[-1] {
		out.WriteString(text)
		out.WriteByte('\n')
	}

	for i, key := range s.keys {
		line := s.lines[key]
		if corr, ok := corrections[key]; ok {
			var originalEnd *int
			if i+1 < len(s.keys) {
				next := s.keys[i+1]
				originalEnd = &next
			}
			if corr.EndTime != nil && originalEnd != nil {
				shift = *corr.EndTime - *originalEnd
			}
			out.WriteString(timecode.Format(corr.NewStart))
			out.WriteString(corr.NewText)
			out.WriteByte('\n')
		} else {
			out.WriteString(timecode.Format(key + shift))
			out.WriteString(line.Original)
			out.WriteByte('\n')
		}
		for _, text := range s.verbatim[key] {
			out.WriteString(text)
			out.WriteByte('\n')
		}
	}

	return out.String()
}
