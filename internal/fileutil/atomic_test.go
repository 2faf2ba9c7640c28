package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func TestWriteFileAtomicReplacesContent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "strategy.hcl")
	if err := WriteFileAtomic(path, []byte("old"), 0o600); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	if err := WriteFileAtomic(path, []byte("new"), 0o644); err != nil {
		t.Fatalf("second write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(data) != "new" {
		t.Errorf("content = %q, want %q", data, "new")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Mode().Perm() != 0o644 {
		t.Errorf("perm = %o, want 644", info.Mode().Perm())
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("expected only the target file, found %d entries", len(entries))
	}
}

func TestWriteFileAtomicMissingDir(t *testing.T) {
	t.Parallel()

	if err := WriteFileAtomic(filepath.Join(t.TempDir(), "missing", "x.hcl"), []byte("x"), 0o644); err == nil {
		t.Error("expected an error for a missing directory")
	}
}

func TestCopyFS(t *testing.T) {
	t.Parallel()

	src := fstest.MapFS{
		"cards.hcl":    {Data: []byte("cards")},
		"counting.hcl": {Data: []byte("counting")},
		"sub/skip.hcl": {Data: []byte("nested")},
	}
	dir := filepath.Join(t.TempDir(), "tables")

	written, err := CopyFS(dir, src, false)
	if err != nil {
		t.Fatalf("CopyFS failed: %v", err)
	}
	want := []string{filepath.Join(dir, "cards.hcl"), filepath.Join(dir, "counting.hcl")}
	if len(written) != len(want) || written[0] != want[0] || written[1] != want[1] {
		t.Errorf("written = %v, want %v", written, want)
	}
	if _, err := os.Stat(filepath.Join(dir, "sub")); !os.IsNotExist(err) {
		t.Error("nested directories should not be copied")
	}

	if _, err := CopyFS(dir, src, false); !errors.Is(err, ErrExists) {
		t.Errorf("second copy error = %v, want ErrExists", err)
	}

	src["cards.hcl"] = &fstest.MapFile{Data: []byte("changed")}
	if _, err := CopyFS(dir, src, true); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	data, _ := os.ReadFile(filepath.Join(dir, "cards.hcl"))
	if string(data) != "changed" {
		t.Errorf("cards.hcl = %q, want %q", data, "changed")
	}
}
