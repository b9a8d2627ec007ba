package affs

import (
	"fmt"
	"log/slog"
)

// defaultMaxChainHopsFloor is the lower bound of the default hash_chain hop
// cap (§9, cyclic references). When ReaderConfig.MaxChainHops is 0, Open
// sets the cap to the volume's total block count, or to this floor if the
// volume has fewer blocks, so the cap is set per-Reader at construction.
const defaultMaxChainHopsFloor = 1024

// ReaderConfig carries optional construction-time settings for Open. The
// zero value is valid and selects defaults, matching the teacher's plain
// mount-time configuration style (no functional options).
type ReaderConfig struct {
	// Logger receives structured trace/debug/info/warn events. Nil
	// disables logging entirely.
	Logger *slog.Logger
	// MaxChainHops overrides the hash-chain hop cap used to detect cyclic
	// or malformed hash chains. 0 selects a default derived from the
	// volume's total block count.
	MaxChainHops int
}

// Reader is a read-only AFFS volume reader: boot block + root block plus
// the device and dialect needed to decode directories and files. A Reader
// is constructed once per device and is not safe for concurrent use (§5).
type Reader struct {
	dev          BlockDevice
	log          *slog.Logger
	fsType       FsType
	totalBlocks  uint32
	rootBlockNum uint32
	root         rootBlock
	maxChainHops int

	// blockBuf is a reusable 512-byte scratch buffer for block reads that
	// do not need to retain their contents past a single parse call,
	// mirroring the teacher's single-window-buffer approach (fat.go's
	// move_window) scaled down to this package's much smaller working set.
	blockBuf [blockSize]byte
}

// Open constructs a Reader over dev for a volume of totalBlocks blocks.
// totalBlocks must be even and at least 4 (§6); the root block is located
// at totalBlocks/2. Open reads the boot block to derive the dialect and
// then reads and validates the root block.
func Open(dev BlockDevice, totalBlocks uint32, cfg ReaderConfig) (*Reader, error) {
	if totalBlocks == 0 || totalBlocks%2 != 0 || totalBlocks < 4 {
		return nil, ResultInvalidSize
	}
	hops := cfg.MaxChainHops
	if hops <= 0 {
		hops = int(totalBlocks)
		if hops < defaultMaxChainHopsFloor {
			hops = defaultMaxChainHopsFloor
		}
	}
	r := &Reader{
		dev:          dev,
		log:          cfg.Logger,
		totalBlocks:  totalBlocks,
		rootBlockNum: totalBlocks / 2,
		maxChainHops: hops,
	}
	r.debug("opening volume", slog.Uint64("total_blocks", uint64(totalBlocks)))

	fsType, err := r.readBootBlock()
	if err != nil {
		r.logerror("boot block invalid", slog.Any("err", err))
		return nil, err
	}
	r.fsType = fsType

	root, err := r.readRootBlock(r.rootBlockNum)
	if err != nil {
		r.logerror("root block invalid", slog.Any("err", err))
		return nil, err
	}
	r.root = root
	r.info("volume opened",
		slog.String("fs_type", fsType.String()),
		slog.Uint64("root_block", uint64(r.rootBlockNum)),
		slog.String("name", root.diskName.String()),
	)
	return r, nil
}

// readBootBlock reads the 1024-byte boot region (blocks 0 and 1),
// validates the "DOS\x" signature and the boot checksum, and derives the
// dialect from the signature's fourth byte.
func (r *Reader) readBootBlock() (FsType, error) {
	var boot [2 * blockSize]byte
	if err := r.dev.ReadBlock(0, boot[:blockSize]); err != nil {
		return 0, fmt.Errorf("%w: %v", ResultIoError, err)
	}
	if err := r.dev.ReadBlock(1, boot[blockSize:]); err != nil {
		return 0, fmt.Errorf("%w: %v", ResultIoError, err)
	}
	r.trace("read boot region", slog.Uint64("block0", 0), slog.Uint64("block1", 1))
	if boot[0] != dosSigByte0 || boot[1] != dosSigByte1 || boot[2] != dosSigByte2 {
		return 0, ResultInvalidBootBlock
	}
	dialect := boot[3]
	if dialect > byte(FsFFSDC) {
		return 0, ResultInvalidBootBlock
	}
	if got, want := bootSum(boot[:]), be32(boot[:], offBootChecksum); got != want {
		return 0, blockErr(ResultChecksumMismatch, 0)
	}
	return FsType(dialect), nil
}

// readRootBlock reads and parses the root block at the given block number.
func (r *Reader) readRootBlock(block uint32) (rootBlock, error) {
	buf := r.blockBuf[:]
	if err := r.readBlock(block, buf); err != nil {
		return rootBlock{}, err
	}
	return parseRootBlock(buf, block)
}

// readBlock reads one block into dst, bounds-checking against the volume's
// total block count and logging at trace level.
func (r *Reader) readBlock(block uint32, dst []byte) error {
	if block == 0 || block >= r.totalBlocks {
		return blockErr(ResultBlockOutOfRange, block)
	}
	if err := r.dev.ReadBlock(block, dst); err != nil {
		return fmt.Errorf("%w: %v", ResultIoError, err)
	}
	r.trace("read block", slog.Uint64("block", uint64(block)))
	return nil
}

// FsType returns the volume's dialect.
func (r *Reader) FsType() FsType { return r.fsType }

// RootBlock returns the block number of the volume's root block.
func (r *Reader) RootBlock() uint32 { return r.rootBlockNum }

// TotalBlocks returns the volume's total block count.
func (r *Reader) TotalBlocks() uint32 { return r.totalBlocks }

// DiskName returns the volume label.
func (r *Reader) DiskName() string { return r.root.diskName.String() }

// Intl reports whether the volume uses international name folding.
func (r *Reader) Intl() bool { return r.fsType.Intl() }

// Fast reports whether the volume is Fast File System (as opposed to OFS).
func (r *Reader) Fast() bool { return r.fsType.Fast() }
