package affs

// ofsDataBlock is a decoded OFS data block: a small checksummed header
// followed by up to maxOFSPayload bytes of file content. Unlike the
// T_HEADER family, this layout is structurally distinct (§4.6) and has its
// own offset table.
type ofsDataBlock struct {
	block   uint32
	seqNum  uint32
	size    int
	next    uint32
	payload []byte // aliases the caller's buffer; valid only until reused
}

// parseOFSDataBlock validates and decodes an OFS data block read into buf
// for block number block, expected to be the wantSeq'th block of a file
// (1-based).
func parseOFSDataBlock(buf []byte, block uint32, wantSeq uint32) (ofsDataBlock, error) {
	if len(buf) < blockSize {
		return ofsDataBlock{}, ResultIoError
	}
	if got := normalSum(buf, offDataChecksum); got != be32(buf, offDataChecksum) {
		return ofsDataBlock{}, blockErr(ResultChecksumMismatch, block)
	}
	if pt := be32(buf, offDataPrimaryType); pt != dataBlockPrimaryType {
		return ofsDataBlock{}, blockErr(ResultInvalidBlockType, block)
	}
	if ownKey := be32(buf, offDataOwnKey); ownKey != block {
		return ofsDataBlock{}, blockErr(ResultInvalidBlockType, block)
	}
	seq := be32(buf, offDataSeqNum)
	if seq != wantSeq {
		return ofsDataBlock{}, blockErr(ResultCorruptFile, block)
	}
	size := int(be32(buf, offDataSize))
	if size < 0 || size > maxOFSPayload {
		return ofsDataBlock{}, blockErr(ResultCorruptFile, block)
	}
	return ofsDataBlock{
		block:   block,
		seqNum:  seq,
		size:    size,
		next:    be32(buf, offDataNext),
		payload: buf[offDataPayload : offDataPayload+size],
	}, nil
}
