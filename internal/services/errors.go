package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFormat reports a timestamp that does not match the [mm:ss.xx] grammar.
	ErrFormat = errors.New("format error")
	// ErrTargetNotFound reports a requested word or timestamp absent from the lyric store.
	ErrTargetNotFound = errors.New("target not found")
	// ErrSynthesis reports a speech synthesis failure. It always aborts the
	// run before any splicing happens.
	ErrSynthesis = errors.New("synthesis error")
	// ErrUnsplicable reports a silence scan that found less margin than the
	// configured minimum. With no minimum configured, boundary degeneration
	// at track edges is tolerated and this error is never produced.
	ErrUnsplicable = errors.New("unsplicable boundary")
	// ErrValidation reports input that cannot be processed (wrong sample
	// format, unreadable file, malformed request).
	ErrValidation = errors.New("validation error")
	// ErrConfiguration reports settings that reference unknown voices,
	// engines, or other unusable values.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that carries stage and target context while
// tagging it with the provided marker for later classification. The marker
// should be one of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrValidation
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
