package tui

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIsNewerVersion(t *testing.T) {
	tests := []struct {
		latest  string
		current string
		want    bool
	}{
		{"1.0.1", "1.0.0", true},
		{"1.1.0", "1.0.9", true},
		{"2.0.0", "1.9.9", true},
		{"v1.0.1", "v1.0.0", true},
		{"v0.5.0", "0.4.2", true},
		{"1.0.0", "1.0.0", false},
		{"1.0.0", "1.0.1", false},
		{"1.2", "1.2.0", false},
		{"1.3.0-rc1", "1.2.9", true},
		{"1.3.0+build7", "1.3.0", false},
		{"dev", "dev", false},
	}

	for _, tc := range tests {
		t.Run(tc.latest+"_vs_"+tc.current, func(t *testing.T) {
			if got := IsNewerVersion(tc.latest, tc.current); got != tc.want {
				t.Errorf("IsNewerVersion(%q, %q) = %v, want %v", tc.latest, tc.current, got, tc.want)
			}
		})
	}
}

func TestCheckVersionSkipsDevBuilds(t *testing.T) {
	if cmd := checkVersion("dev"); cmd != nil {
		t.Error("expected nil cmd for dev build")
	}
	if cmd := checkVersion(""); cmd != nil {
		t.Error("expected nil cmd for empty version")
	}
}

func TestCheckVersion(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"newer release", http.StatusOK, `{"version":"1.5.0","minimum":"1.0.0"}`, "v1.5.0 available"},
		{"below minimum", http.StatusOK, `{"version":"v2.0.0","minimum":"1.5.0"}`, "v2.0.0 required"},
		{"current", http.StatusOK, `{"version":"1.4.0"}`, ""},
		{"bad body", http.StatusOK, `<html>`, ""},
		{"feed down", http.StatusServiceUnavailable, ``, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body)) //nolint:errcheck
			}))
			defer srv.Close()
			prev := releaseURL
			releaseURL = srv.URL
			defer func() { releaseURL = prev }()

			msg, ok := checkVersion("1.4.0")().(releaseMsg)
			if !ok {
				t.Fatal("checkVersion did not return a releaseMsg")
			}
			if got := msg.notice(); got != tc.want {
				t.Errorf("notice = %q, want %q", got, tc.want)
			}
		})
	}
}
