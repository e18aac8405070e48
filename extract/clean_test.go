package extract

import "testing"

func TestClean(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"[ACL Headliner Suites]", "ACL Headliner Suites"},
		{"  [Ultra Crew Housing]  ", "Ultra Crew Housing"},
		{"No Brackets", "No Brackets"},
		{"[Unbalanced", "Unbalanced"},
		{"Unbalanced]", "Unbalanced"},
		{"[ padded inside ]", "padded inside"},
		{"[]", ""},
		{"   ", ""},
	}
	for _, c := range cases {
		if got := Clean(c.in); got != c.want {
			t.Errorf("Clean(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"[ACL Headliner Suites]",
		"Ultra VIP Experience",
		"  [x]  ",
		"",
		"plain text with [inner] brackets",
	}
	for _, in := range inputs {
		once := Clean(in)
		if twice := Clean(once); twice != once {
			t.Errorf("Clean not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestCleanNeverBracketWrapped(t *testing.T) {
	inputs := []string{"[a]", "[b", "c]", " [d] ", "[[e]]"}
	for _, in := range inputs {
		got := Clean(in)
		if got != "" && (got[0] == ' ' || got[len(got)-1] == ' ') {
			t.Errorf("Clean(%q) = %q: not trimmed", in, got)
		}
	}
}
