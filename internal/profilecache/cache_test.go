package profilecache

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/naveenspark/campusnest/pkg/domain"
)

func TestLoadMissing(t *testing.T) {
	c := New(t.TempDir())
	u, err := c.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if u != nil {
		t.Errorf("Load() = %+v, want nil", u)
	}
}

func TestSaveLoadClear(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	c := New(dir)

	want := domain.UserProfile{ID: "u1", Email: "sam@uni.ac.uk", FirstName: "Sam", Role: domain.RoleStudent}
	if err := c.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := c.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got == nil || got.ID != want.ID || got.Email != want.Email || got.Role != want.Role {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(c.Path())
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("profile mode = %o, want 600", perm)
		}
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if err := c.Clear(); err != nil {
		t.Errorf("second Clear: %v", err)
	}
	if got, _ := c.Load(); got != nil {
		t.Errorf("Load() after Clear = %+v, want nil", got)
	}
}

func TestLoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	c := New(dir)
	if err := os.WriteFile(c.Path(), []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	got, err := c.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != nil {
		t.Errorf("Load() = %+v, want nil for corrupt file", got)
	}
}

func TestProfileHoldsNoCredentials(t *testing.T) {
	c := New(t.TempDir())
	if err := c.Save(domain.UserProfile{ID: "u1"}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(c.Path())
	if err != nil {
		t.Fatal(err)
	}
	for _, bad := range []string{"token", "password", "cookie"} {
		if strings.Contains(string(data), bad) {
			t.Errorf("profile file contains %q: %s", bad, data)
		}
	}
}
