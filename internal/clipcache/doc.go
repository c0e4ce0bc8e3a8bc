// Package clipcache persists synthesized replacement clips so repeated
// runs against the same line do not pay for synthesis twice. Metadata
// lives in a SQLite database; the raw PCM payloads live beside it as
// individual files named by UUID. A file lock guards the cache directory
// against concurrent processes.
package clipcache
