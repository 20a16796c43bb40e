package html

import "testing"

func TestCSSVarsStyle(t *testing.T) {
	cases := []struct {
		name string
		vars map[string]string
		want string
	}{
		{name: "empty", vars: nil, want: ""},
		{
			name: "sorted by normalised name",
			vars: map[string]string{"--brand": "#123456", "accent": "red"},
			want: "--accent: red; --brand: #123456",
		},
		{
			name: "prefixed spelling wins",
			vars: map[string]string{"--accent": "blue", "accent": "red"},
			want: "--accent: blue",
		},
		{
			name: "blank names and values skipped",
			vars: map[string]string{" ": "x", "gap": " ", " radius ": " 4px "},
			want: "--radius: 4px",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for i := 0; i < 20; i++ {
				if got := cssVarsStyle(tc.vars); got != tc.want {
					t.Fatalf("cssVarsStyle(%v) = %q, want %q", tc.vars, got, tc.want)
				}
			}
		})
	}
}
