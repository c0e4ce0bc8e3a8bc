package polly_test

import (
	"errors"
	"math"
	"testing"

	"audioheal/internal/services"
	"audioheal/internal/services/polly"
)

func TestRateFor(t *testing.T) {
	cases := []struct {
		language, name, engine string
		want                   float64
	}{
		{"en-GB", "Amy", "neural", 16.00},
		{"en-GB", "Amy", "standard", 4.00},
		{"en-US", "Stephen", "long-form", 100.00},
		{"en-US", "Ruth", "generative", 30.00},
	}
	for _, tc := range cases {
		got, err := polly.RateFor(tc.language, tc.name, tc.engine)
		if err != nil {
			t.Fatalf("RateFor(%s/%s/%s): %v", tc.language, tc.name, tc.engine, err)
		}
		if got != tc.want {
			t.Fatalf("RateFor(%s/%s/%s) = %v, want %v", tc.language, tc.name, tc.engine, got, tc.want)
		}
	}
}

func TestRateForUnknownSelections(t *testing.T) {
	// Geraint has no neural engine; Zelda does not exist.
	for _, tc := range []struct{ language, name, engine string }{
		{"en-GB", "Geraint", "neural"},
		{"en-GB", "Zelda", "standard"},
		{"xx-XX", "Amy", "standard"},
	} {
		if _, err := polly.RateFor(tc.language, tc.name, tc.engine); !errors.Is(err, services.ErrConfiguration) {
			t.Fatalf("RateFor(%s/%s/%s) expected ErrConfiguration, got %v", tc.language, tc.name, tc.engine, err)
		}
	}
}

func TestEstimateCost(t *testing.T) {
	// 2,000,000 characters at $16/million.
	cost, err := polly.EstimateCost(2_000_000, "en-GB", "Amy", "neural")
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(cost-32.0) > 1e-9 {
		t.Fatalf("cost = %v, want 32.0", cost)
	}
}

func TestLanguagesAreSorted(t *testing.T) {
	langs := polly.Languages()
	if len(langs) == 0 {
		t.Fatal("catalog is empty")
	}
	for i := 1; i < len(langs); i++ {
		if langs[i-1] >= langs[i] {
			t.Fatalf("languages not sorted: %v", langs)
		}
	}
}
