package slugs

import "testing"

func TestValid(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"url_patterns", true},
		{"path_items", true},
		{"timelog", true},
		{"window-raiser", true},
		{"", false},
		{"Has Space", false},
		{"UPPER", false},
		{"trailing_", false},
	}

	for _, tt := range tests {
		if got := Valid(tt.in); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStoreFile(t *testing.T) {
	if got := StoreFile("url_patterns", ".yaml"); got != "url_patterns.yaml" {
		t.Errorf("StoreFile = %q", got)
	}
	if got := StoreFile("path_items", "yaml"); got != "path_items.yaml" {
		t.Errorf("StoreFile = %q", got)
	}
}

func TestSuggest(t *testing.T) {
	if got := Suggest("Window Raiser"); !Valid(got) {
		t.Errorf("Suggest returned invalid slug %q", got)
	}
}
