package application

import "testing"

func TestTitleCase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "words", in: "north wing", want: "North Wing"},
		{name: "upper input", in: "  EAST WING ", want: "East Wing"},
		{name: "apostrophe", in: "o'neil hall", want: "O'Neil Hall"},
		{name: "curly apostrophe", in: "o’neil hall", want: "O’Neil Hall"},
		{name: "quoted word", in: "rock 'n' roll", want: "Rock 'N' Roll"},
		{name: "digits", in: "3rd block", want: "3Rd Block"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TitleCase(tt.in); got != tt.want {
				t.Fatalf("TitleCase(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
