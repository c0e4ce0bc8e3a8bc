package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVoicesCommandListsCatalog(t *testing.T) {
	out, err := execute(t, "voices")
	if err != nil {
		t.Fatalf("voices: %v", err)
	}
	for _, want := range []string{"en-GB", "Amy", "$16.00", "per million characters"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestVoicesCommandLanguageFilter(t *testing.T) {
	out, err := execute(t, "voices", "--language", "en-NZ")
	if err != nil {
		t.Fatalf("voices: %v", err)
	}
	if !strings.Contains(out, "Aria") {
		t.Fatalf("expected Aria in output:\n%s", out)
	}
	if strings.Contains(out, "Joanna") {
		t.Fatalf("unexpected en-US voice in filtered output:\n%s", out)
	}
}

func TestVoicesCommandRejectsUnknownLanguage(t *testing.T) {
	_, err := execute(t, "voices", "--language", "xx-XX")
	if err == nil || !strings.Contains(err.Error(), "unknown language") {
		t.Fatalf("expected unknown language error, got %v", err)
	}
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := execute(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, target) {
		t.Fatalf("expected path in output:\n%s", out)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample config missing: %v", err)
	}

	// A second init without --overwrite refuses to clobber.
	if _, err := execute(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error when config already exists")
	}
}

func TestConfigValidateUsesExplicitPath(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	if _, err := execute(t, "config", "init", "--path", target); err != nil {
		t.Fatalf("config init: %v", err)
	}

	out, err := execute(t, "--config", target, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	if !strings.Contains(out, "Configuration valid") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestHealRequiresFourArguments(t *testing.T) {
	_, err := execute(t, "heal", "a.wav", "a.lrc")
	if err == nil {
		t.Fatal("expected argument count error")
	}
}
