package quest

import "testing"

func TestIsCorrect(t *testing.T) {
	tests := []struct {
		name      string
		rule      string
		submitted string
		want      bool
	}{
		{name: "empty rule always accepts", rule: "", submitted: "anything", want: true},
		{name: "empty rule accepts empty", rule: "", submitted: "", want: true},
		{name: "literal exact", rule: "answer42", submitted: "answer42", want: true},
		{name: "literal case insensitive", rule: "Answer42", submitted: "ANSWER42", want: true},
		{name: "literal mismatch", rule: "answer42", submitted: "answer43", want: false},
		{name: "literal no substring match", rule: "answer", submitted: "answer42", want: false},
		{name: "regex match", rule: "/^ab+c$/", submitted: "ABBC", want: true},
		{name: "regex anchored mismatch", rule: "/^ab+c$/", submitted: "xab", want: false},
		{name: "regex matches anywhere", rule: "/ab+c/", submitted: "xxabbcyy", want: true},
		{name: "regex invalid fails closed", rule: "/[unclosed/", submitted: "u", want: false},
		{name: "bare slash is a literal", rule: "/", submitted: "/", want: true},
		{name: "alternatives match", rule: "red|blue|green", submitted: "BLUE", want: true},
		{name: "alternatives mismatch", rule: "red|blue", submitted: "purple", want: false},
		{name: "alternatives trimmed", rule: "red | blue", submitted: "blue", want: true},
		{name: "alternative no partial", rule: "red|blue", submitted: "blu", want: false},
		{name: "regex wins over pipe", rule: "/red|blue/", submitted: "dark red", want: true},
		{name: "equality wins over regex form", rule: "/^a$/", submitted: "/^A$/", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCorrect(tt.rule, tt.submitted); got != tt.want {
				t.Errorf("IsCorrect(%q, %q) = %v, want %v", tt.rule, tt.submitted, got, tt.want)
			}
		})
	}
}
