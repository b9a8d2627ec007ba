package affs

// header is the decoded form shared by Root, UserDir, and FileHeader
// blocks: they all carry the same T_HEADER layout (§4.3), differing only in
// secondary_type and in how the hash_table/data_blocks array is used.
//
// header does not retain the buffer it was parsed from; it owns its own
// small scalars plus an inline name, matching the read-through, no-retained-
// buffer lifecycle in §3.
type header struct {
	block         uint32
	secondaryType EntryType
	ownKey        uint32
	hashTableSize uint32
	firstData     uint32 // FileHeader only; 0 for directories
	size          int64  // FileHeader only
	parent        uint32
	hashChain     uint32
	extension     uint32
	name          Name

	// table holds either the directory hash_table or the file's
	// data_blocks array, depending on secondaryType. Both occupy the same
	// 72-entry slice at offHashTable.
	table [hashTableSize]uint32
}

// parseHeader validates and decodes a header-style block (Root, UserDir, or
// FileHeader). It does not itself restrict which secondary_type values are
// acceptable; callers that need a specific kind (parseRootBlock, for
// instance) check secondaryType after the call.
func parseHeader(buf []byte, block uint32) (header, error) {
	if len(buf) < blockSize {
		return header{}, ResultIoError
	}
	if got := normalSum(buf, offChecksum); got != be32(buf, offChecksum) {
		return header{}, blockErr(ResultChecksumMismatch, block)
	}
	if pt := be32(buf, offPrimaryType); pt != primaryTypeHeader {
		return header{}, blockErr(ResultInvalidBlockType, block)
	}
	var h header
	h.block = block
	h.ownKey = be32(buf, offOwnKey)
	if h.ownKey != block {
		return header{}, blockErr(ResultInvalidBlockType, block)
	}
	h.hashTableSize = be32(buf, offHighSeq)
	if h.hashTableSize != hashTableSize {
		return header{}, blockErr(ResultInvalidBlockType, block)
	}
	h.firstData = be32(buf, offFirstData)
	h.parent = be32(buf, offParent)
	h.hashChain = be32(buf, offHashChain)
	h.extension = be32(buf, offExtension)
	h.secondaryType = EntryType(beI32(buf, offSecondaryType))

	for i := 0; i < hashTableSize; i++ {
		h.table[i] = be32(buf, offHashTable+4*i)
	}

	nameLen := int(buf[offNameLen])
	if nameLen > maxNameLen {
		return header{}, blockErr(ResultNameTooLong, block)
	}
	name, err := newName(buf[offNameBytes:], nameLen)
	if err != nil {
		return header{}, err
	}
	h.name = name

	if h.secondaryType == EntryFile {
		h.size = int64(be32(buf, offByteSize))
	}

	return h, nil
}

// isDir reports whether the parsed header describes a directory
// (Root or UserDir) as opposed to a file or link.
func (h *header) isDir() bool { return h.secondaryType.IsDir() }
