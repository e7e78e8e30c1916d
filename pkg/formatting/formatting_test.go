package formatting_test

import (
	"errors"
	"testing"

	"github.com/shivanished/boon-pipeline/pkg/formatting"
)

type revTuple struct {
	RevType1 string `json:"revType1"`
	RevType2 string `json:"revType2"`
	RevType3 string `json:"revType3"`
	RevType4 string `json:"revType4"`
}

func TestDecode(t *testing.T) {
	t.Run("direct JSON", func(t *testing.T) {
		got, err := formatting.Decode[revTuple](`{"revType1":"LOGCOM","revType2":"HOUSE","revType3":"IN","revType4":"OTR"}`)
		if err != nil {
			t.Fatalf("Decode error: %v", err)
		}
		if got.RevType1 != "LOGCOM" || got.RevType4 != "OTR" {
			t.Errorf("Decode = %+v", got)
		}
	})

	t.Run("direct JSON with whitespace", func(t *testing.T) {
		got, err := formatting.Decode[map[string]string](`  {"k":"v"}  `)
		if err != nil {
			t.Fatalf("Decode error: %v", err)
		}
		if got["k"] != "v" {
			t.Errorf("got = %v", got)
		}
	})

	t.Run("fenced JSON", func(t *testing.T) {
		input := "```json\n{\"revType1\":\"STAND\",\"revType2\":\"CZ\",\"revType3\":\"OUT\",\"revType4\":\"MILES\"}\n```"
		got, err := formatting.Decode[revTuple](input)
		if err != nil {
			t.Fatalf("Decode error: %v", err)
		}
		if got.RevType1 != "STAND" || got.RevType2 != "CZ" {
			t.Errorf("Decode = %+v", got)
		}
	})

	t.Run("fenced without language tag", func(t *testing.T) {
		input := "```\n{\"k\":\"v\"}\n```"
		got, err := formatting.Decode[map[string]string](input)
		if err != nil {
			t.Fatalf("Decode error: %v", err)
		}
		if got["k"] != "v" {
			t.Errorf("got = %v", got)
		}
	})

	t.Run("JSON buried in prose", func(t *testing.T) {
		input := `Based on the order details, my answer is {"revType1":"LOGOUT","revType2":"STD","revType3":"IN","revType4":"LOCAL"} as requested.`
		got, err := formatting.Decode[revTuple](input)
		if err != nil {
			t.Fatalf("Decode error: %v", err)
		}
		if got.RevType1 != "LOGOUT" || got.RevType4 != "LOCAL" {
			t.Errorf("Decode = %+v", got)
		}
	})

	t.Run("no JSON at all", func(t *testing.T) {
		_, err := formatting.Decode[revTuple]("I cannot determine the revenue types.")
		if !errors.Is(err, formatting.ErrDecodeFailed) {
			t.Errorf("error = %v, want ErrDecodeFailed", err)
		}
	})

	t.Run("empty string", func(t *testing.T) {
		_, err := formatting.Decode[revTuple]("")
		if !errors.Is(err, formatting.ErrDecodeFailed) {
			t.Errorf("error = %v, want ErrDecodeFailed", err)
		}
	})

	t.Run("broken JSON in fence", func(t *testing.T) {
		_, err := formatting.Decode[revTuple]("```json\n{broken\n```")
		if !errors.Is(err, formatting.ErrDecodeFailed) {
			t.Errorf("error = %v, want ErrDecodeFailed", err)
		}
	})
}

func TestParseRate(t *testing.T) {
	const fallback = 111.11

	tests := []struct {
		name       string
		candidates []string
		want       float64
	}{
		{"first candidate wins", []string{"1175.00", "2000"}, 1175.0},
		{"empty first falls through", []string{"", "950.50"}, 950.5},
		{"all empty yields zero", []string{"", ""}, 0},
		{"no candidates yields zero", nil, 0},
		{"unparseable yields fallback", []string{"", "not-a-number"}, fallback},
		{"unparseable first does not fall through", []string{"12x5", "950"}, fallback},
		{"integer rate", []string{"1500"}, 1500.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatting.ParseRate(fallback, tt.candidates...); got != tt.want {
				t.Errorf("ParseRate(%v) = %v, want %v", tt.candidates, got, tt.want)
			}
		})
	}
}
