package util

import (
	"path/filepath"
	"testing"
)

func TestBrowserCommand(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"windows": "rundll32",
		"darwin":  "open",
		"linux":   "xdg-open",
		"freebsd": "xdg-open",
	}
	for goos, want := range cases {
		cmd := browserCommand(goos, "http://localhost:1")
		if got := filepath.Base(cmd.Args[0]); got != want {
			t.Errorf("browserCommand(%s) = %s, want %s", goos, got, want)
		}
		if last := cmd.Args[len(cmd.Args)-1]; last != "http://localhost:1" {
			t.Errorf("browserCommand(%s) url arg = %s", goos, last)
		}
	}
}

func TestFallbackBrowsers(t *testing.T) {
	t.Parallel()

	if len(fallbackBrowsers("linux")) == 0 {
		t.Error("linux should have fallback browsers")
	}
	if fallbackBrowsers("darwin") != nil {
		t.Error("darwin has no fallback")
	}
}
