package lexer

import (
	"testing"

	"github.com/sambacha/jgo/internal/token"
)

func TestScanNumericVector(t *testing.T) {
	words, err := Scan("1 2 _3", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(words) != 3 {
		t.Fatalf("got %d words, want 3", len(words))
	}
	for _, w := range words {
		if w.Kind != token.KNoun {
			t.Fatalf("word kind = %v, want KNoun", w.Kind)
		}
	}
	v, _ := words[2].Noun.Nums[0].AsInt64()
	if v != -3 {
		t.Fatalf("third atom = %d, want -3", v)
	}
}

func TestScanStringLiteralWithEscapedQuote(t *testing.T) {
	words, err := Scan("'it''s'", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(words) != 1 || words[0].Kind != token.KNoun {
		t.Fatalf("got %+v", words)
	}
	got := string(words[0].Noun.Chars)
	if got != "it's" {
		t.Fatalf("got %q, want %q", got, "it's")
	}
}

func TestScanPrimitiveGlyphsGreedyMatch(t *testing.T) {
	words, err := Scan("2 >: 1", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(words) != 3 || words[1].Kind != token.KVerb || words[1].Verb.Name != ">:" {
		t.Fatalf("got %+v", words)
	}
}

func TestScanNameAndControlKeyword(t *testing.T) {
	words, err := Scan("if. x", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(words) != 2 || words[0].Kind != token.KName || words[0].Name != "if." {
		t.Fatalf("got %+v", words)
	}
}

func TestScanUnterminatedStringFails(t *testing.T) {
	_, err := Scan("'abc", 1)
	if err == nil {
		t.Fatal("expected an OpenQuote error")
	}
}
