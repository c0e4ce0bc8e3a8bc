package services_test

import (
	"errors"
	"strings"
	"testing"

	"audioheal/internal/services"
)

func TestWrapTagsMarkerAndContext(t *testing.T) {
	cause := errors.New("polly: http 500")
	err := services.Wrap(services.ErrSynthesis, "synthesize", "[00:12.00]", "request failed", cause)
	if !errors.Is(err, services.ErrSynthesis) {
		t.Fatalf("expected ErrSynthesis classification, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause to survive, got %v", err)
	}
	for _, fragment := range []string{"synthesize", "[00:12.00]", "request failed", "http 500"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Fatalf("message %q missing %q", err.Error(), fragment)
		}
	}
}

func TestWrapWithoutCause(t *testing.T) {
	err := services.Wrap(services.ErrTargetNotFound, "lookup", "word \"kaleidoscope\"", "", nil)
	if !errors.Is(err, services.ErrTargetNotFound) {
		t.Fatalf("expected ErrTargetNotFound, got %v", err)
	}
	if strings.Contains(err.Error(), "%!") {
		t.Fatalf("badly formatted message: %q", err.Error())
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "", "", "", errors.New("boom"))
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("nil marker should classify as validation, got %v", err)
	}
}
