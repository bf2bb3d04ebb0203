package ingredient

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"  Extra-Virgin_Olive   Oil ", "extra virgin olive oil"},
		{"Salt", "salt"},
		{"BLACK PEPPER", "black pepper"},
		{"sun_dried__tomatoes", "sun dried tomatoes"},
		{"half-and-half", "half and half"},
		{"all - purpose flour", "all purpose flour"},
		{"green\tonions\n", "green onions"},
		{"crème fraîche", "crème fraîche"},
		{"-salt", " salt"},
		{"salt_", "salt "},
		{"---", " "},
		{"   ", ""},
		{"", ""},
	}

	for _, tt := range tests {
		result := Normalize(tt.input)
		if result != tt.expected {
			t.Errorf("Normalize(%q) = %q, expected %q", tt.input, result, tt.expected)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"  Extra-Virgin_Olive   Oil ",
		"Salt",
		"half-and-half",
		"sun_dried__tomatoes",
		"7-up soda",
		"green  onions",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestTokens(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want []string
	}{
		{"basic", "['Salt', 'black_pepper']", []string{"salt", "black pepper"}},
		{"duplicates kept", "['salt', 'SALT ']", []string{"salt", "salt"}},
		{"empty tokens dropped", "['  ', 'oil', '']", []string{"oil"}},
		{"malformed cell", "salt, pepper", []string{}},
		{"empty cell", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokens(tt.cell)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokens(%q) = %q, want %q", tt.cell, got, tt.want)
			}
		})
	}
}
