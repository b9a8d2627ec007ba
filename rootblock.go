package affs

// rootBlock is the decoded Root block: the volume's single entry point,
// carrying the top-level directory hash table plus volume-wide metadata
// (name, bitmap flag and pointers). The creation/modification timestamps
// stored in the root block are not decoded.
type rootBlock struct {
	header
	diskName    Name
	bitmapFlag  int32
	bitmapExt   uint32
	bitmapPages [bitmapPagesCount]uint32
}

// parseRootBlock validates and decodes the root block. Unlike a plain
// header parse, it also requires secondary_type == ST_ROOT and decodes the
// root-only trailing fields (bitmap pointers, volume name).
func parseRootBlock(buf []byte, block uint32) (rootBlock, error) {
	h, err := parseHeader(buf, block)
	if err != nil {
		return rootBlock{}, err
	}
	if h.secondaryType != EntryRoot {
		return rootBlock{}, blockErr(ResultInvalidBlockType, block)
	}
	var rb rootBlock
	rb.header = h
	rb.bitmapFlag = beI32(buf, offBitmapFlag)
	rb.bitmapExt = be32(buf, offBitmapExt)
	for i := 0; i < bitmapPagesCount; i++ {
		rb.bitmapPages[i] = be32(buf, offBitmapPages+4*i)
	}
	// The root block's own "name" field (shared offNameLen/offNameBytes
	// with every header block) holds the volume label rather than an
	// entry name; expose it under its own accessor for clarity at call
	// sites.
	rb.diskName = h.name
	return rb, nil
}

// HashTable returns the root directory's 72-slot hash table of block
// numbers, one per slot, 0 meaning empty.
func (rb *rootBlock) HashTable() [hashTableSize]uint32 { return rb.table }
