package utils

import "testing"

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"already e164", "+14155552671", "+14155552671", false},
		{"spaces and dashes", "+1 415-555-2671", "+14155552671", false},
		{"ghana mobile", "+233244123456", "+233244123456", false},
		{"uk with parens", "+44 (20) 7946 0958", "+442079460958", false},
		{"missing country code", "4155552671", "", true},
		{"letters", "not-a-number", "", true},
		{"too short", "+1415", "", true},
		{"empty", "", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizePhone(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("NormalizePhone(%q) = %q, want error", tc.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizePhone(%q): %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
