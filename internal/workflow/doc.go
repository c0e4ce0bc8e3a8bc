// Package workflow orchestrates a heal run end to end: load the track and
// lyrics, select the target lines, plan corrections, locate cut points and
// synthesize replacement clips concurrently, splice sequentially, and write
// the healed audio and lyric files.
//
// The run is all-or-nothing: any failure before or during splicing leaves
// the output directory untouched.
package workflow
