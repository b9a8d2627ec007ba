// Package affs decodes Amiga Fast File System (AFFS) disk images: Original
// File System and Fast File System, with or without international name
// folding or a Directory Cache. It is read-only — there is no write or
// repair support. Checksums, name hashing and comparison, and block parsing
// allocate no memory; the File reader copies each data block's payload into
// a newly allocated slice.
//
// A Reader is opened over a BlockDevice and a block count with Open. From
// there, ReadDir, FindEntry, and FindPath walk the directory hash-chain
// structure, and OpenFile returns a streaming File cursor over a file's
// data blocks.
package affs
