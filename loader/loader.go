/*
 * cfvm - a class-file inspector and bytecode interpreter
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package loader gets a class file's bytes into memory. It memory-maps
// its input and copies the mapped bytes into a fresh slice, so the
// mapping is released before Load returns and the caller owns an
// ordinary byte slice.
package loader

import (
	"fmt"
	"os"

	mmap "github.com/edsrzf/mmap-go"

	"cfvm/trace"
)

// Load returns the full contents of the file at path. It memory-maps
// the file when possible and falls back to os.ReadFile for inputs mmap
// can't handle (zero-length files, pipes, some test fixtures), logging
// the fallback via trace.Warning the way a silent behavior change never
// should be.
func Load(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stating %s: %w", path, err)
	}
	if info.Size() == 0 {
		trace.Warning(fmt.Sprintf("%s is empty, falling back to ReadFile", path))
		return os.ReadFile(path)
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		trace.Warning(fmt.Sprintf("mmap failed for %s (%v), falling back to ReadFile", path, err))
		return os.ReadFile(path)
	}
	defer data.Unmap()

	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}
