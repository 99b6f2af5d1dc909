package token

import "testing"

func TestKindStringKnown(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{LeftParen, "LEFT_PAREN"},
		{BangEqual, "BANG_EQUAL"},
		{Number, "NUMBER"},
		{EOF, "EOF"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestKindStringUnknown(t *testing.T) {
	var k Kind = 9999
	if got := k.String(); got != "Kind(9999)" {
		t.Errorf("unknown kind String() = %q, want Kind(9999)", got)
	}
}

func TestKeywordsCoverReservedWords(t *testing.T) {
	want := []string{
		"and", "class", "else", "false", "for", "fun", "if", "nil",
		"or", "print", "return", "super", "this", "true", "var", "while",
	}
	if len(Keywords) != len(want) {
		t.Fatalf("Keywords has %d entries, want %d", len(Keywords), len(want))
	}
	for _, w := range want {
		if _, ok := Keywords[w]; !ok {
			t.Errorf("Keywords missing %q", w)
		}
	}
}

func TestTokenString(t *testing.T) {
	tok := Token{Kind: Number, Lexeme: "42", Line: 3}
	want := `Token{NUMBER "42" line=3}`
	if got := tok.String(); got != want {
		t.Errorf("Token.String() = %q, want %q", got, want)
	}
}
