package feed

import "testing"

func TestCleanSummary(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "Just a plain summary.", "Just a plain summary."},
		{"strips tags", "<p>Hello <b>world</b></p>", "Hello world"},
		{"decodes entities", "Ben &amp; Jerry&#39;s", "Ben & Jerry's"},
		{"collapses whitespace", "  too \n\n many    spaces ", "too many spaces"},
		{"empty", "", ""},
		{"link markup", `Read <a href="https://example.com">more</a> here`, "Read more here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanSummary(tt.in); got != tt.want {
				t.Errorf("CleanSummary(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
