package provider

import "testing"

func TestNormalizePhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "bare local number gets country code", input: "11999999999", want: "+5511999999999"},
		{name: "full number without plus gets prefixed", input: "5511999887766", want: "+555511999887766"},
		{name: "already international is identity", input: "+5511999887766", want: "+5511999887766"},
		{name: "foreign number with plus is identity", input: "+14155552671", want: "+14155552671"},
		{name: "surrounding spaces are trimmed", input: " 11988776655 ", want: "+5511988776655"},
		{name: "empty stays empty", input: "", want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := NormalizePhone(tt.input); got != tt.want {
				t.Fatalf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
