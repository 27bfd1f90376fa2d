package lexer

import (
	"testing"

	"lark/internal/diag"
	"lark/internal/source"
	"lark/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func tokenize(t *testing.T, text string) ([]token.Token, *diag.Bag) {
	t.Helper()
	m := source.NewMap()
	file := m.SetText("t.lark", text)
	bag := diag.NewBag(64)
	return Tokenize(file, text, bag), bag
}

func TestTokenizeAlwaysEndsInEOF(t *testing.T) {
	for _, text := range []string{"", "fn", "fn f() {}", "\n\n\n"} {
		toks, _ := tokenize(t, text)
		if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
			t.Fatalf("tokenize(%q): expected trailing EOF, got %v", text, kinds(toks))
		}
		for _, tok := range toks[:len(toks)-1] {
			if tok.Kind == token.EOF {
				t.Fatalf("tokenize(%q): EOF token before end of stream", text)
			}
		}
	}
}

func TestTokenizeStructFn(t *testing.T) {
	toks, bag := tokenize(t, "struct Point { x: i32, y: i32 }")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	var kindsOnly []token.Kind
	for _, tok := range toks {
		if tok.IsTrivia() {
			continue
		}
		kindsOnly = append(kindsOnly, tok.Kind)
	}
	want := []token.Kind{
		token.Identifier, token.Identifier, token.Sigil,
		token.Identifier, token.Sigil, token.Identifier, token.Sigil,
		token.Identifier, token.Sigil, token.Identifier, token.Sigil,
		token.EOF,
	}
	if len(kindsOnly) != len(want) {
		t.Fatalf("kind count mismatch: got %v want %v", kindsOnly, want)
	}
	for i := range want {
		if kindsOnly[i] != want[i] {
			t.Fatalf("kind[%d] = %v, want %v (%v)", i, kindsOnly[i], want[i], kindsOnly)
		}
	}
}

func TestTokenizeArrowAndEquals(t *testing.T) {
	toks, _ := tokenize(t, "fn f() -> i32 { x == y }")
	found := map[string]bool{}
	for _, tok := range toks {
		if tok.Kind == token.Sigil {
			found[tok.Text] = true
		}
	}
	if !found["->"] {
		t.Fatalf("expected '->' to be scanned as a single sigil: %v", toks)
	}
	if !found["=="] {
		t.Fatalf("expected '==' to be scanned as a single sigil, not two '=': %v", toks)
	}
}

func TestTokenizeUnrecognizedCharIsSkippedNotEmitted(t *testing.T) {
	toks, bag := tokenize(t, "a $ b")
	if !bag.HasErrors() {
		t.Fatalf("expected a diagnostic for '$'")
	}
	for _, tok := range toks {
		if tok.Text == "$" {
			t.Fatalf("unrecognized character must not produce a token: %v", toks)
		}
	}
}

func TestTokenizeUnterminatedString(t *testing.T) {
	toks, bag := tokenize(t, `"abc`)
	if !bag.HasErrors() {
		t.Fatalf("expected unterminated-string diagnostic")
	}
	if len(toks) < 2 || toks[0].Kind != token.String {
		t.Fatalf("expected a recovered String token, got %v", kinds(toks))
	}
}

func TestTokenizeNewlineIsNeverMergedWithWhitespace(t *testing.T) {
	toks, _ := tokenize(t, "a  \n  b")
	for i, tok := range toks {
		if tok.Kind == token.Whitespace && len(tok.Text) > 0 {
			for _, b := range []byte(tok.Text) {
				if b == '\n' {
					t.Fatalf("token %d: whitespace run must not contain newline: %q", i, tok.Text)
				}
			}
		}
	}
}

func TestTokenizeIsDeterministic(t *testing.T) {
	text := "struct P { x: i32 }\nfn f(p: P) -> i32 { p.x }"
	first, _ := tokenize(t, text)
	second, _ := tokenize(t, text)
	if len(first) != len(second) {
		t.Fatalf("non-deterministic token count: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Kind != second[i].Kind || first[i].Text != second[i].Text {
			t.Fatalf("token %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}
