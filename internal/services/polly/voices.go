package polly

import (
	"fmt"
	"sort"

	"audioheal/internal/services"
)

// Voice describes one catalog entry: the voice name, a gender label, and
// the engines it supports with their price per million characters in USD.
type Voice struct {
	Name   string
	Gender string
	Rates  map[string]float64
}

// Engines recognized by the catalog.
var Engines = []string{"standard", "neural", "long-form", "generative"}

// Catalog maps a language code to its available voices and per-engine
// pricing.
var Catalog = map[string][]Voice{
	"en-US": {
		{Name: "Danielle", Gender: "Female", Rates: map[string]float64{"standard": 4.00}},
		{Name: "Gregory", Gender: "Male", Rates: map[string]float64{"standard": 4.00}},
		{Name: "Ivy", Gender: "Female (child)", Rates: map[string]float64{"neural": 16.00}},
		{Name: "Joanna", Gender: "Female", Rates: map[string]float64{"standard": 4.00, "neural": 16.00}},
		{Name: "Kendra", Gender: "Female", Rates: map[string]float64{"standard": 4.00, "neural": 16.00}},
		{Name: "Kimberly", Gender: "Female", Rates: map[string]float64{"standard": 4.00, "neural": 16.00}},
		{Name: "Salli", Gender: "Female", Rates: map[string]float64{"standard": 4.00, "neural": 16.00}},
		{Name: "Joey", Gender: "Male", Rates: map[string]float64{"standard": 4.00, "neural": 16.00}},
		{Name: "Justin", Gender: "Male (child)", Rates: map[string]float64{"standard": 4.00, "neural": 16.00}},
		{Name: "Kevin", Gender: "Male (child)", Rates: map[string]float64{"standard": 4.00, "neural": 16.00}},
		{Name: "Matthew", Gender: "Male", Rates: map[string]float64{"standard": 4.00, "long-form": 100.00}},
		{Name: "Ruth", Gender: "Female", Rates: map[string]float64{"generative": 30.00, "long-form": 100.00, "neural": 16.00}},
		{Name: "Stephen", Gender: "Male", Rates: map[string]float64{"long-form": 100.00}},
	},
	"en-GB": {
		{Name: "Amy", Gender: "Female", Rates: map[string]float64{"standard": 4.00, "neural": 16.00, "generative": 30.00}},
		{Name: "Emma", Gender: "Female", Rates: map[string]float64{"standard": 4.00, "neural": 16.00}},
		{Name: "Brian", Gender: "Male", Rates: map[string]float64{"standard": 4.00, "neural": 16.00}},
		{Name: "Arthur", Gender: "Male", Rates: map[string]float64{"standard": 4.00, "neural": 16.00}},
		{Name: "Geraint", Gender: "Male", Rates: map[string]float64{"standard": 4.00}},
	},
	"en-AU": {
		{Name: "Nicole", Gender: "Female", Rates: map[string]float64{"standard": 4.00}},
		{Name: "Olivia", Gender: "Female", Rates: map[string]float64{"neural": 16.00}},
		{Name: "Russell", Gender: "Male", Rates: map[string]float64{"standard": 4.00}},
	},
	"en-IN": {
		{Name: "Aditi", Gender: "Female", Rates: map[string]float64{"standard": 4.00}},
		{Name: "Raveena", Gender: "Female", Rates: map[string]float64{"standard": 4.00}},
		{Name: "Kajal", Gender: "Female", Rates: map[string]float64{"neural": 16.00}},
	},
	"en-IE": {
		{Name: "Niamh", Gender: "Female", Rates: map[string]float64{"neural": 16.00, "standard": 4.00}},
	},
	"en-NZ": {
		{Name: "Aria", Gender: "Female", Rates: map[string]float64{"neural": 16.00}},
	},
	"en-ZA": {
		{Name: "Ayanda", Gender: "Female", Rates: map[string]float64{"neural": 16.00, "standard": 4.00}},
	},
	"en-GB-WLS": {
		{Name: "Geraint", Gender: "Male", Rates: map[string]float64{"standard": 4.00}},
	},
}

// Languages returns the catalog's language codes in sorted order.
func Languages() []string {
	out := make([]string, 0, len(Catalog))
	for code := range Catalog {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// RateFor returns the price per million characters for the given voice
// selection.
func RateFor(language, name, engine string) (float64, error) {
	for _, voice := range Catalog[language] {
		if voice.Name != name {
			continue
		}
		if rate, ok := voice.Rates[engine]; ok {
			return rate, nil
		}
	}
	detail := fmt.Sprintf("no rate for voice %s (%s) with engine %s", name, language, engine)
	return 0, services.Wrap(services.ErrConfiguration, "polly", "pricing", detail, nil)
}

// EstimateCost prices a synthesis request of the given character count.
func EstimateCost(characters int, language, name, engine string) (float64, error) {
	rate, err := RateFor(language, name, engine)
	if err != nil {
		return 0, err
	}
	return float64(characters) / 1_000_000 * rate, nil
}
