package affs

// Field offsets for AFFS header-style blocks (Root, UserDir, FileHeader,
// FileExt all share this layout). Offsets are byte positions from the start
// of the 512-byte block unless noted "end-N", which means blockSize-N as
// given directly by the canonical AFFS layout (§4.3): these are not
// recomputed from a from-scratch structure definition, they are used as
// published.
const (
	offPrimaryType    = 0   // primary_type: block type tag, word 0
	offOwnKey         = 4   // own_key: self block number (header blocks)
	offHighSeq        = 12  // high_seq / hash_table_size
	offFirstData      = 16  // first_data: first OFS data block (file header)
	offChecksum       = 20  // checksum: normal_sum skips this word
	offHashTable      = 24  // hash_table[0..72) / data_blocks[0..72): 24..312
	hashTableSize     = 72  // number of slots in a directory hash table
	offByteSize       = offHashTable + 4*hashTableSize // byte_size: file size in bytes (FileHeader only); not in the spec's canonical table, placed immediately after the hash_table/data_blocks array per the conventional AFFS layout
	offBitmapFlag     = blockSize - 196 // bitmap_flag (root)
	offBitmapPages    = blockSize - 192 // bitmap_pages[0..25): blockSize-192..blockSize-96
	bitmapPagesCount  = 25
	offBitmapExt      = blockSize - 96 // bitmap_ext (root, hard-disk volumes)
	offNameLen        = blockSize - 80 // name length byte
	offNameBytes      = blockSize - 79 // name bytes, up to maxNameLen long
	offHashChain      = blockSize - 16 // hash_chain: next sibling in the same slot
	offParent         = blockSize - 12 // parent block pointer
	offExtension      = blockSize - 8  // extension: continuation FileExt block
	offSecondaryType  = blockSize - 4  // secondary_type: entry kind tag
)

// OFS data block layout (§4.6): structurally distinct from the header
// layout above.
const (
	offDataPrimaryType = 0  // primary_type: must equal dataBlockPrimaryType (8)
	offDataOwnKey      = 4  // own_key: self block number
	offDataSeqNum      = 8  // seq_num: 1-based sequence number within the file
	offDataSize        = 12 // data_size: payload length in bytes, <= maxOFSPayload
	offDataNext        = 16 // next: following OFS data block, 0 if last
	offDataChecksum    = 20 // checksum: normal_sum over the whole block
	offDataPayload     = 24 // payload start; runs to offDataPayload+data_size

	maxOFSPayload = blockSize - offDataPayload // 488 bytes

	dataBlockPrimaryType = 8 // T_DATA
)

// primary_type tag shared by every header-style block.
const primaryTypeHeader = 2 // T_HEADER, shared by root, dir, file header, file ext

// boot-block layout.
const (
	offBootChecksum = 4 // boot_sum over the 1024-byte boot region

	dosSigByte0 = 'D'
	dosSigByte1 = 'O'
	dosSigByte2 = 'S'
)
