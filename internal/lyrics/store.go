package lyrics

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/search"

	"audioheal/internal/services"
	"audioheal/internal/timecode"
)

// Line is one timed lyric entry. TimeKey is the line's start offset in
// milliseconds and its identity within a store. EndTime is the TimeKey of
// the next line in sorted order, or nil for the last line.
type Line struct {
	TimeKey  int
	Original string
	EndTime  *int
}

// linePattern matches a bracketed LRC timestamp followed by the line text.
var linePattern = regexp.MustCompile(`^\[(\d+):(\d+)\.(\d+)\](.*)$`)

// Store is an ordered collection of timed lines. Unparseable input lines
// are kept verbatim, bucketed under the TimeKey of the timed line that
// precedes them (-1 for lines before the first timed line).
type Store struct {
	lines    map[int]*Line
	keys     []int
	verbatim map[int][]string
}

// Parse builds a store from LRC text. Lines that do not match the timestamp
// grammar are preserved for output but take no part in lookups.
func Parse(r io.Reader) (*Store, error) {
	store := &Store{lines: map[int]*Line{}, verbatim: map[int][]string{}}
	lastKey := -1

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		text := scanner.Text()
		match := linePattern.FindStringSubmatch(text)
		if match == nil {
			store.verbatim[lastKey] = append(store.verbatim[lastKey], text)
			continue
		}
		key, err := timecode.Parse(fmt.Sprintf("[%s:%s.%s]", match[1], match[2], match[3]))
		if err != nil {
			return nil, err
		}
		store.lines[key] = &Line{TimeKey: key, Original: strings.TrimSpace(match[4])}
		lastKey = key
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read lyrics: %w", err)
	}

	store.reindex()
	return store, nil
}

// LoadFile parses the LRC file at path.
func LoadFile(path string) (*Store, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "lyrics", "load", path, err)
	}
	defer file.Close()
	return Parse(file)
}

func (s *Store) reindex() {
	s.keys = s.keys[:0]
	for key := range s.lines {
		s.keys = append(s.keys, key)
	}
	sort.Ints(s.keys)
	for i, key := range s.keys {
		if i+1 < len(s.keys) {
			next := s.keys[i+1]
			s.lines[key].EndTime = &next
		} else {
			s.lines[key].EndTime = nil
		}
	}
}

// Len returns the number of timed lines.
func (s *Store) Len() int { return len(s.keys) }

// Keys returns the line keys in ascending order.
func (s *Store) Keys() []int {
	out := make([]int, len(s.keys))
	copy(out, s.keys)
	return out
}

// Line returns the line stored at key, or nil.
func (s *Store) Line(key int) *Line { return s.lines[key] }

// FindByTime returns the line starting exactly at the given offset.
func (s *Store) FindByTime(ms int) (*Line, error) {
	line, ok := s.lines[ms]
	if !ok {
		return nil, services.Wrap(services.ErrTargetNotFound, "lyrics", "lookup", fmt.Sprintf("no line starts at %s", timecode.Format(ms)), nil)
	}
	return line, nil
}

// FindByWord returns every line whose text contains the word, matched
// case-insensitively as a substring.
func (s *Store) FindByWord(word string) map[int]*Line {
	matcher := search.New(language.Und, search.IgnoreCase)
	result := map[int]*Line{}
	for key, line := range s.lines {
		if start, _ := matcher.IndexString(line.Original, word); start >= 0 {
			result[key] = line
		}
	}
	return result
}

// EndTimeOf returns the start of the line following key in the global
// ordering, or nil when key identifies the last line. The result is
// independent of any selection subset.
func (s *Store) EndTimeOf(key int) *int {
	line, ok := s.lines[key]
	if !ok {
		return nil
	}
	if line.EndTime == nil {
		return nil
	}
	end := *line.EndTime
	return &end
}
