package affs

import (
	"encoding/binary"
	"errors"
)

// blockMap is a map-backed fake BlockDevice, adapted from the teacher
// lineage's BlockMap fake (vfs_test.go): sparse storage keyed by block
// number, useful for building images that only populate the blocks a test
// actually cares about.
type blockMap struct {
	data map[uint32][blockSize]byte
}

func newBlockMap() *blockMap {
	return &blockMap{data: make(map[uint32][blockSize]byte)}
}

func (b *blockMap) ReadBlock(block uint32, dst []byte) error {
	if len(dst) < blockSize {
		return errors.New("dst too short")
	}
	blk := b.data[block]
	copy(dst, blk[:])
	return nil
}

func (b *blockMap) writeBlock(block uint32, src []byte) {
	var blk [blockSize]byte
	copy(blk[:], src)
	b.data[block] = blk
}

// blockSlice is a flat-byte-slice-backed fake BlockDevice, adapted from the
// teacher lineage's BlockByteSlice fake: a contiguous backing array
// addressed by block*blockSize, closer to what a real disk image file
// looks like.
type blockSlice struct {
	buf []byte
}

func newBlockSlice(totalBlocks uint32) *blockSlice {
	return &blockSlice{buf: make([]byte, int(totalBlocks)*blockSize)}
}

func (b *blockSlice) ReadBlock(block uint32, dst []byte) error {
	off := int(block) * blockSize
	if off+blockSize > len(b.buf) {
		return errors.New("read past end of image")
	}
	copy(dst, b.buf[off:off+blockSize])
	return nil
}

func (b *blockSlice) writeBlock(block uint32, src []byte) {
	off := int(block) * blockSize
	copy(b.buf[off:off+blockSize], src)
}

// --- image builder helpers -------------------------------------------------
//
// Rather than hand-computing checksum fixtures byte by byte, every builder
// below computes real checksums using the package's own normalSum/bootSum
// functions, so the checksum implementation under test is also the oracle
// that produced the fixture. This mirrors the teacher's "build a believable
// disk image" intent (fat_test.go's fatInit) adapted to a format with no
// canonical reference image on hand to take a literal byte fixture from.

// putName writes a BCPL length-prefixed name into buf at the standard
// name-field offsets.
func putName(buf []byte, name string) {
	if len(name) > maxNameLen {
		panic("test name too long")
	}
	buf[offNameLen] = byte(len(name))
	copy(buf[offNameBytes:], name)
}

// buildBootBlock writes a valid boot block (spanning blocks 0 and 1) for
// the given dialect into dev.
func buildBootBlock(dev interface {
	writeBlock(block uint32, src []byte)
}, fsType FsType) {
	var region [2 * blockSize]byte
	region[0], region[1], region[2] = dosSigByte0, dosSigByte1, dosSigByte2
	region[3] = byte(fsType)
	sum := bootSum(region[:])
	binary.BigEndian.PutUint32(region[offBootChecksum:], sum)
	dev.writeBlock(0, region[:blockSize])
	dev.writeBlock(1, region[blockSize:])
}

// headerBlockBuilder assembles one T_HEADER-layout block (Root, UserDir, or
// FileHeader) and finalizes its checksum on build.
type headerBlockBuilder struct {
	buf [blockSize]byte
}

func newHeaderBlockBuilder(block uint32, secondaryType EntryType) *headerBlockBuilder {
	var hb headerBlockBuilder
	binary.BigEndian.PutUint32(hb.buf[offPrimaryType:], primaryTypeHeader)
	binary.BigEndian.PutUint32(hb.buf[offOwnKey:], block)
	binary.BigEndian.PutUint32(hb.buf[offHighSeq:], hashTableSize)
	binary.BigEndian.PutUint32(hb.buf[offSecondaryType:], uint32(int32(secondaryType)))
	return &hb
}

func (hb *headerBlockBuilder) setName(name string) *headerBlockBuilder {
	putName(hb.buf[:], name)
	return hb
}

func (hb *headerBlockBuilder) setParent(block uint32) *headerBlockBuilder {
	binary.BigEndian.PutUint32(hb.buf[offParent:], block)
	return hb
}

func (hb *headerBlockBuilder) setHashChain(block uint32) *headerBlockBuilder {
	binary.BigEndian.PutUint32(hb.buf[offHashChain:], block)
	return hb
}

func (hb *headerBlockBuilder) setExtension(block uint32) *headerBlockBuilder {
	binary.BigEndian.PutUint32(hb.buf[offExtension:], block)
	return hb
}

func (hb *headerBlockBuilder) setFirstData(block uint32) *headerBlockBuilder {
	binary.BigEndian.PutUint32(hb.buf[offFirstData:], block)
	return hb
}

func (hb *headerBlockBuilder) setByteSize(size int64) *headerBlockBuilder {
	binary.BigEndian.PutUint32(hb.buf[offByteSize:], uint32(size))
	return hb
}

func (hb *headerBlockBuilder) setHashTableSlot(slot int, block uint32) *headerBlockBuilder {
	binary.BigEndian.PutUint32(hb.buf[offHashTable+4*slot:], block)
	return hb
}

func (hb *headerBlockBuilder) setDataBlockSlot(slotFromEnd int, block uint32) *headerBlockBuilder {
	// FFS data_blocks convention: slot 71 is the first block (§9).
	return hb.setHashTableSlot(slotFromEnd, block)
}

func (hb *headerBlockBuilder) setBitmapPage(slot int, block uint32) *headerBlockBuilder {
	binary.BigEndian.PutUint32(hb.buf[offBitmapPages+4*slot:], block)
	return hb
}

// build finalizes the checksum and returns the raw block bytes.
func (hb *headerBlockBuilder) build() [blockSize]byte {
	sum := normalSum(hb.buf[:], offChecksum)
	binary.BigEndian.PutUint32(hb.buf[offChecksum:], sum)
	return hb.buf
}

// buildBitmapBlock assembles a checksummed bitmap block out of 127 raw
// allocation words (their bit meaning is irrelevant to this package).
func buildBitmapBlock(words [127]uint32) [blockSize]byte {
	var buf [blockSize]byte
	for i, w := range words {
		binary.BigEndian.PutUint32(buf[4+4*i:], w)
	}
	sum := bitmapSum(buf[:])
	binary.BigEndian.PutUint32(buf[0:], sum)
	return buf
}

// buildOFSDataBlock assembles a checksummed OFS data block.
func buildOFSDataBlock(block, seq, next uint32, payload []byte) [blockSize]byte {
	var buf [blockSize]byte
	binary.BigEndian.PutUint32(buf[offDataPrimaryType:], dataBlockPrimaryType)
	binary.BigEndian.PutUint32(buf[offDataOwnKey:], block)
	binary.BigEndian.PutUint32(buf[offDataSeqNum:], seq)
	binary.BigEndian.PutUint32(buf[offDataSize:], uint32(len(payload)))
	binary.BigEndian.PutUint32(buf[offDataNext:], next)
	copy(buf[offDataPayload:], payload)
	sum := normalSum(buf[:], offDataChecksum)
	binary.BigEndian.PutUint32(buf[offDataChecksum:], sum)
	return buf
}
