package affs

import (
	"golang.org/x/text/encoding/charmap"
)

// maxNameLen is the maximum usable length of a BCPL name stored in an AFFS
// header block (one length byte followed by up to 30 bytes).
const maxNameLen = 30

// Name is an inline, non-allocating view of a BCPL-style length-prefixed
// AFFS name: a length byte followed by up to maxNameLen raw bytes. The zero
// value is the empty name.
type Name struct {
	len int
	buf [maxNameLen]byte
}

// newName copies length bytes from b into a Name. It returns ResultNameTooLong
// if length exceeds maxNameLen.
func newName(b []byte, length int) (Name, error) {
	if length > maxNameLen {
		return Name{}, ResultNameTooLong
	}
	var n Name
	n.len = length
	copy(n.buf[:length], b[:length])
	return n, nil
}

// Len returns the number of bytes in the name.
func (n Name) Len() int { return n.len }

// Bytes returns the raw, unfolded bytes of the name. The returned slice
// aliases the Name's internal array and must not be retained past the
// Name's lifetime if the Name is later reused (Names returned by this
// package are always fresh values, so this is safe for callers).
func (n *Name) Bytes() []byte { return n.buf[:n.len] }

// String returns the name decoded as ISO-8859-1 (Latin-1), the byte range
// AFFS names are drawn from, converted to UTF-8. It never fails: every byte
// value 0-255 has a valid Latin-1 mapping.
func (n *Name) String() string {
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(n.Bytes())
	if err != nil {
		// charmap.ISO8859_1 covers all 256 byte values; this path is
		// unreachable in practice, but fall back to a raw cast rather
		// than panicking.
		return string(n.Bytes())
	}
	return string(out)
}

// Equal reports whether n and other compare equal under the volume's name
// folding rules (see namesEqual).
func (n *Name) Equal(other *Name, intl bool) bool {
	return namesEqual(n.Bytes(), other.Bytes(), intl)
}

// Hash returns the directory hash-table slot for n under the volume's name
// folding rules (see hashName).
func (n *Name) Hash(intl bool) uint32 {
	return hashName(n.Bytes(), intl)
}

const (
	asciiLower    = 'a'
	asciiUpper    = 'z'
	asciiFoldBit  = 0x20
	intlFoldLow   = 0xE0
	intlFoldHigh  = 0xFE
	intlExcluded  = 0xF7 // division sign, never folded even in INTL mode
)

// fold applies the AFFS name-comparison case fold to a single byte. When
// intl is false only plain ASCII a-z is upper-cased. When intl is true the
// Latin-1 accented range 0xE0-0xFE (excluding 0xF7, the division sign) is
// additionally upper-cased by clearing bit 0x20.
func fold(b byte, intl bool) byte {
	if b >= asciiLower && b <= asciiUpper {
		return b &^ asciiFoldBit
	}
	if intl && b >= intlFoldLow && b <= intlFoldHigh && b != intlExcluded {
		return b - asciiFoldBit
	}
	return b
}

// hashName computes the AFFS directory hash-table slot (in [0, 72)) for a
// name under the given case-folding mode. The multiplication and mask are
// bit-exact reproductions of the original Amiga algorithm; the 0x7FF mask
// is a load-bearing quirk, not an incidental optimization, and must not be
// "simplified" away.
func hashName(name []byte, intl bool) uint32 {
	h := uint32(len(name))
	for _, b := range name {
		h = (h*13 + uint32(fold(b, intl))) & 0x7FF
	}
	return h % hashTableSize
}

// namesEqual reports whether a and b are the same AFFS name under the given
// case-folding mode. Lengths are compared first as a fast path; bytes are
// then compared left to right under fold, stopping at the first mismatch.
func namesEqual(a, b []byte, intl bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if fold(a[i], intl) != fold(b[i], intl) {
			return false
		}
	}
	return true
}
