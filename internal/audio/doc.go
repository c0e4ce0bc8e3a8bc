// Package audio provides the millisecond-addressable PCM track the splicing
// pipeline operates on.
//
// Tracks are 16-bit mono PCM. A track value is never mutated after
// construction: slicing, concatenation, and silence synthesis all produce
// new tracks, so each splice step builds a fresh timeline from pieces of
// the previous one. Loudness queries report dBFS over a one millisecond
// window, which is the granularity every silence scan works at.
package audio
