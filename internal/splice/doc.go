// Package splice is the seam engine: it locates silence-bounded cut points
// around a target span, conforms a synthesized replacement clip to the
// silence margins measured in the original track, and stitches replacements
// into the timeline while tracking the cumulative length delta.
//
// All scanning happens at millisecond granularity against per-window dBFS
// loudness. The splicer itself is an explicit fold over targets in
// ascending time order; processing out of order corrupts every subsequent
// splice and is disallowed.
package splice
