package images

import "testing"

func TestBuildURL(t *testing.T) {
	cases := []struct {
		base, container, name string
		want                  string
	}{
		{"https://host/v1/AUTH_p", "u1", "a.png", "https://host/v1/AUTH_p/u1/a.png"},
		{"http://localhost:9000", "guest:g", "photo 1.png", "http://localhost:9000/guest:g/photo 1.png"},
		{"b", "c", "n", "b/c/n"},
	}
	for _, tc := range cases {
		if got := BuildURL(tc.base, tc.container, tc.name); got != tc.want {
			t.Fatalf("BuildURL(%q,%q,%q) = %q, want %q", tc.base, tc.container, tc.name, got, tc.want)
		}
	}
}
