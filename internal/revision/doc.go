// Package revision decides what a heal run changes before any audio is
// touched: it builds the corrected text for each target line, wraps it in
// the SSML envelope the synthesis service expects, fixes each target's
// effective end time from the full lyric ordering, and prices the
// synthesis request.
package revision
