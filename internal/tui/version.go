package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// releaseURL serves the newest client release and the oldest one the API
// still accepts: {"version": "1.4.0", "minimum": "1.2.0"}.
var releaseURL = "https://campusnest.app/cli/latest.json"

const releaseCheckTimeout = 5 * time.Second

type release struct {
	Version string `json:"version"`
	Minimum string `json:"minimum"`
}

// releaseMsg reports a newer client. Zero when this build is current or the
// feed could not be read.
type releaseMsg struct {
	version  string
	required bool
}

func (m releaseMsg) notice() string {
	if m.version == "" {
		return ""
	}
	if m.required {
		return m.version + " required"
	}
	return m.version + " available"
}

// checkVersion looks up the release feed in the background. Dev builds skip
// the check.
func checkVersion(current string) tea.Cmd {
	if current == "" || current == "dev" {
		return nil
	}
	url := releaseURL
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), releaseCheckTimeout)
		defer cancel()
		r, err := fetchRelease(ctx, url)
		if err != nil || !IsNewerVersion(r.Version, current) {
			return releaseMsg{}
		}
		return releaseMsg{
			version:  "v" + strings.TrimPrefix(r.Version, "v"),
			required: r.Minimum != "" && IsNewerVersion(r.Minimum, current),
		}
	}
}

func fetchRelease(ctx context.Context, url string) (release, error) {
	var r release
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return r, fmt.Errorf("tui.fetchRelease: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return r, fmt.Errorf("tui.fetchRelease: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		return r, fmt.Errorf("tui.fetchRelease: status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return r, fmt.Errorf("tui.fetchRelease: %w", err)
	}
	return r, nil
}

// semver is major.minor.patch. Build and prerelease suffixes are ignored.
type semver [3]int

func parseSemver(v string) semver {
	v = strings.TrimPrefix(strings.TrimSpace(v), "v")
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		v = v[:i]
	}
	var s semver
	for i, part := range strings.SplitN(v, ".", 3) {
		s[i], _ = strconv.Atoi(part) //nolint:errcheck
	}
	return s
}

func (s semver) less(o semver) bool {
	for i := range s {
		if s[i] != o[i] {
			return s[i] < o[i]
		}
	}
	return false
}

// IsNewerVersion reports whether latest is a later release than current.
func IsNewerVersion(latest, current string) bool {
	return parseSemver(current).less(parseSemver(latest))
}
