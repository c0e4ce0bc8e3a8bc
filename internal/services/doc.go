// Package services defines the error taxonomy shared by the healing
// pipeline and its external collaborators.
//
// Every failure in a run is terminal: there is no partial-success mode,
// since a half-spliced track and an inconsistent lyric file would be worse
// than no output. Errors are tagged with one of the exported sentinels so
// the CLI can report the failure class alongside the target context.
package services
