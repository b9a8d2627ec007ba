package affs

import "encoding/binary"

// BlockDevice is the narrow read interface the decoder is built on. A block
// device delivers fixed 512-byte blocks by number; it is never written to
// by this package.
type BlockDevice interface {
	// ReadBlock reads exactly one 512-byte block numbered block into dst.
	// dst must be at least 512 bytes long. Implementations should return an
	// error rather than a short read.
	ReadBlock(block uint32, dst []byte) error
}

// FsType discriminates the six AFFS dialects, derived from byte 3 of the
// boot block's "DOS\x" signature.
type FsType uint8

const (
	FsOFS     FsType = 0
	FsFFS     FsType = 1
	FsOFSIntl FsType = 2
	FsFFSIntl FsType = 3
	FsOFSDC   FsType = 4
	FsFFSDC   FsType = 5
)

// Fast reports whether the dialect is Fast File System (as opposed to
// Original File System).
func (f FsType) Fast() bool { return f&1 != 0 }

// Intl reports whether the dialect uses international name folding. The
// Directory Cache variants (OFSDC, FFSDC) share INTL's name rules.
func (f FsType) Intl() bool { return f >= FsOFSIntl }

// DirCache reports whether the dialect carries a Directory Cache.
func (f FsType) DirCache() bool { return f >= FsOFSDC }

func (f FsType) String() string {
	switch f {
	case FsOFS:
		return "OFS"
	case FsFFS:
		return "FFS"
	case FsOFSIntl:
		return "OFS+INTL"
	case FsFFSIntl:
		return "FFS+INTL"
	case FsOFSDC:
		return "OFS+DC"
	case FsFFSDC:
		return "FFS+DC"
	default:
		return "unknown"
	}
}

// EntryType identifies the kind of a directory entry, derived from a
// header block's secondary_type field.
type EntryType int32

const (
	EntryRoot     EntryType = 1
	EntryUserDir  EntryType = 2
	EntrySoftLink EntryType = 3
	EntryLinkDir  EntryType = 4
	EntryFile     EntryType = -3
	EntryLinkFile EntryType = -4
)

func (e EntryType) String() string {
	switch e {
	case EntryRoot:
		return "Root"
	case EntryUserDir:
		return "UserDir"
	case EntrySoftLink:
		return "SoftLink"
	case EntryLinkDir:
		return "LinkDir"
	case EntryFile:
		return "File"
	case EntryLinkFile:
		return "LinkFile"
	default:
		return "Unknown"
	}
}

// IsDir reports whether the entry type is a traversable directory
// (Root or UserDir). Link variants are not traversed by this package.
func (e EntryType) IsDir() bool {
	return e == EntryRoot || e == EntryUserDir
}

// be32 reads a big-endian uint32 field at byte offset off in buf.
func be32(buf []byte, off int) uint32 {
	return binary.BigEndian.Uint32(buf[off:])
}

// beI32 reads a big-endian field at byte offset off in buf as a signed
// 32-bit value, used for secondary_type (File is stored as 0xFFFFFFFD).
func beI32(buf []byte, off int) int32 {
	return int32(be32(buf, off))
}
