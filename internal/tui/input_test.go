package tui

import (
	"strings"
	"testing"
)

func TestEditRuneAddCharacters(t *testing.T) {
	tests := []struct {
		name  string
		start string
		key   string
		want  string
	}{
		{"append to empty", "", "a", "a"},
		{"append letter", "hel", "l", "hell"},
		{"append digit", "abc", "1", "abc1"},
		{"append space", "hello", " ", "hello "},
		{"append at sign", "ana", "@", "ana@"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := editRune(tc.start, tc.key)
			if got != tc.want {
				t.Errorf("editRune(%q, %q) = %q, want %q", tc.start, tc.key, got, tc.want)
			}
		})
	}
}

func TestEditRuneBackspace(t *testing.T) {
	tests := []struct {
		name  string
		start string
		want  string
	}{
		{"single char", "a", ""},
		{"longer string", "hello", "hell"},
		{"empty does nothing", "", ""},
		{"multi-byte rune", "hellé", "hell"},
		{"emoji", "hello\U0001f600", "hello"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := editRune(tc.start, "backspace")
			if got != tc.want {
				t.Errorf("editRune(%q, backspace) = %q, want %q", tc.start, got, tc.want)
			}
		})
	}
}

func TestEditRuneIgnoresNonPrintableKeys(t *testing.T) {
	for _, key := range []string{"enter", "esc", "up", "down", "ctrl+c", "tab", "shift+tab", "pgup"} {
		t.Run(key, func(t *testing.T) {
			if got := editRune("hello", key); got != "hello" {
				t.Errorf("editRune(%q, %q) = %q, want unchanged", "hello", key, got)
			}
		})
	}
}

func TestEditRuneMaxInputLen(t *testing.T) {
	atLimit := strings.Repeat("a", maxInputLen)
	if got := editRune(atLimit, "b"); got != atLimit {
		t.Errorf("editRune at limit grew to %d runes", len([]rune(got)))
	}
	below := strings.Repeat("a", maxInputLen-1)
	if got := editRune(below, "b"); got != below+"b" {
		t.Errorf("editRune below limit did not append")
	}
}

func TestTruncStr(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		maxLen int
		want   string
	}{
		{"under limit", "hello", 10, "hello"},
		{"at limit", "hello", 5, "hello"},
		{"over limit", "hello world", 5, "hell…"},
		{"empty string", "", 5, ""},
		{"single char over", "ab", 1, "…"},
		{"zero width", "abc", 0, ""},
		{"CJK chars", "你好世界", 3, "你好…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncStr(tt.s, tt.maxLen); got != tt.want {
				t.Errorf("truncStr(%q, %d) = %q, want %q", tt.s, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestTruncateToHeight(t *testing.T) {
	input := "line1\nline2\nline3\nline4\nline5\n"

	got := truncateToHeight(input, 3)
	if strings.Count(got, "\n") > 3 {
		t.Errorf("truncateToHeight(5 lines, 3) = %q", got)
	}
	if strings.Contains(got, "line4") {
		t.Errorf("truncateToHeight kept line4: %q", got)
	}
	if got := truncateToHeight(input, 10); got != input {
		t.Errorf("truncateToHeight within limit = %q, want input", got)
	}
	if got := truncateToHeight(input, 0); got != input {
		t.Errorf("truncateToHeight(0) = %q, want input", got)
	}
}

func TestRenderFieldMasksSecrets(t *testing.T) {
	got := renderField("password", "hunter2", "", true, true)
	if strings.Contains(got, "hunter2") {
		t.Errorf("secret field leaked its value: %q", got)
	}
	if !strings.Contains(got, strings.Repeat("•", 7)) {
		t.Errorf("secret field = %q, want 7 mask runes", got)
	}
}

func TestRenderFieldPlaceholder(t *testing.T) {
	got := renderField("email", "", "you@uni.edu", false, false)
	if !strings.Contains(got, "you@uni.edu") {
		t.Errorf("empty unfocused field = %q, want placeholder", got)
	}
	got = renderField("email", "", "you@uni.edu", true, false)
	if strings.Contains(got, "you@uni.edu") {
		t.Errorf("focused field should hide placeholder: %q", got)
	}
}
