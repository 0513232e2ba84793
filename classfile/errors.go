/*
 * cfvm - a class-file inspector and bytecode interpreter
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

import (
	"errors"
	"fmt"
)

// Sentinel errors naming the error kinds of the class-file format. Call
// sites wrap one of these with fmt.Errorf("%w: ...") so a caller can
// errors.Is() to recover the kind without parsing message text.
var (
	ErrEndOfInput         = errors.New("END_OF_INPUT")
	ErrOutOfBounds        = errors.New("OUT_OF_BOUNDS")
	ErrBadMagic           = errors.New("BAD_MAGIC")
	ErrCPTag              = errors.New("CP_TAG")
	ErrCPRef              = errors.New("CP_REF")
	ErrUnsupportedVersion = errors.New("UNSUPPORTED_VERSION")
)

// cfe wraps one of the sentinels above with a human-readable message,
// naming the byte offset at which the problem was detected.
func cfe(kind error, offset int, msg string) error {
	return fmt.Errorf("class format error at offset %d: %s: %w", offset, msg, kind)
}
