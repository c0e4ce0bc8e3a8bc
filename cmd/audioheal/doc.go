// Command audioheal repairs mispronounced words in narrated audio tracks.
// It splices synthesized replacement clips into a WAV file at silence
// boundaries and rewrites the matching LRC lyric timestamps.
package main
