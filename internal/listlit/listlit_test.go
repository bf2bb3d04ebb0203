package listlit

import (
	"errors"
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"simple", "['a', 'b']", []string{"a", "b"}},
		{"not a list", "not a list", []string{}},
		{"empty list", "[]", []string{}},
		{"empty string", "", []string{}},
		{"surrounding space", "  ['salt']\n", []string{"salt"}},
		{"double quotes", `["baker's yeast", 'flour']`, []string{"baker's yeast", "flour"}},
		{"escaped quote", `['baker\'s yeast']`, []string{"baker's yeast"}},
		{"trailing comma", "['a', 'b',]", []string{"a", "b"}},
		{"adjacent literals", "['extra ' 'virgin']", []string{"extra virgin"}},
		{"unicode prefix", "[u'jalapeño']", []string{"jalapeño"}},
		{"raw prefix", `[r'a\nb']`, []string{`a\nb`}},
		{"newline escape", `['step one\nstep two']`, []string{"step one\nstep two"}},
		{"hex escape", `['caf\xe9']`, []string{"café"}},
		{"unknown escape kept", `['1\/2 cup']`, []string{`1\/2 cup`}},
		{"commas inside strings", "['salt, to taste', 'oil']", []string{"salt, to taste", "oil"}},
		{"brackets inside strings", "['[optional] nuts']", []string{"[optional] nuts"}},
		{"numbers rejected", "[1, 2]", []string{}},
		{"nested rejected", "[['a']]", []string{}},
		{"unterminated", "['a]", []string{}},
		{"missing comma", "['a' , , 'b']", []string{}},
		{"json object", `{"a": 1}`, []string{}},
		{"only open bracket", "[", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			if got == nil {
				t.Fatal("Parse returned nil, want non-nil slice")
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStrict_Errors(t *testing.T) {
	for _, input := range []string{"x", "['a'] junk]", "['''a''']", `['\N{DEGREE SIGN}']`} {
		if _, err := Strict(input); !errors.Is(err, ErrSyntax) {
			t.Errorf("Strict(%q) error = %v, want ErrSyntax", input, err)
		}
	}
}
