/*
 * cfvm - a class-file inspector and bytecode interpreter
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package loader

import (
	"os"
	"path/filepath"
	"testing"

	"cfvm/internal/testclass"
)

func TestLoadReadsFileContents(t *testing.T) {
	want := testclass.MethodClass(testclass.ArithmeticProgram(), 2, 2)
	path := filepath.Join(t.TempDir(), "Test.class")
	if err := os.WriteFile(path, want, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("Load returned %d bytes, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("byte %d differs: got %#x, want %#x", i, got[i], want[i])
		}
	}
}

func TestLoadEmptyFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Empty.class")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Load of empty file = %d bytes, want 0", len(got))
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.class"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
