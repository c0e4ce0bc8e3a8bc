// Package lyrics reads, indexes, and rewrites LRC timing files.
//
// A store holds every line matching the [mm:ss.xx] grammar, keyed by its
// start offset in milliseconds. The key is the line's identity; sorted key
// order is load-bearing everywhere downstream. Lines that do not match the
// grammar are skipped on read and re-emitted verbatim on write.
package lyrics
