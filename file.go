package affs

import (
	"log/slog"
)

// fileState is the file reader's state machine (§4.6): Initial -> Streaming
// -> Eof, with Error terminal from any state.
type fileState int

const (
	fileStateInitial fileState = iota
	fileStateStreaming
	fileStateEof
	fileStateError
)

// File is a streaming, read-only cursor over one file's block chain. It is
// not safe for concurrent use and is not reentrant (§5).
type File struct {
	r     *Reader
	state fileState
	err   error

	size      int64
	remaining int64

	// OFS cursor.
	ofsNext     uint32 // next data block to read, 0 if none
	ofsSeq      uint32 // 1-based sequence number of ofsNext
	ofsCur      []byte // unread bytes of the current OFS data block payload
	ofsCurBlock uint32

	// FFS cursor.
	ffsTable   [hashTableSize]uint32 // current data_blocks array (header's or an extension's)
	ffsIdx     int                   // next index to consult, counting down from 71
	ffsExt     uint32                // next extension block to load when ffsTable is exhausted, 0 if none
	ffsCur     []byte                // unread bytes of the current FFS data block
	ffsCurBlk  uint32
	ffsHops    int
}

// OpenFile constructs a File reader for the given directory entry, which
// must describe a file (EntryFile). No blocks are read until the first
// call to Read.
func (r *Reader) OpenFile(e *Entry) (*File, error) {
	if e.Type != EntryFile {
		return nil, blockErr(ResultNotAFile, e.Block)
	}
	f := &File{r: r, size: e.Size, remaining: e.Size}
	if r.Fast() {
		f.ffsTable = e.table
		f.ffsIdx = hashTableSize - 1
		f.ffsExt = e.extension
	} else {
		f.ofsNext = e.firstData
		f.ofsSeq = 1
	}
	if e.Size == 0 {
		f.state = fileStateEof
	}
	return f, nil
}

// Size returns the file's declared size in bytes.
func (f *File) Size() int64 { return f.size }

// Err returns the error that put the reader into its Error state, if any.
func (f *File) Err() error { return f.err }

// Read fills as much of buf as possible from the current block, advancing
// the cursor as needed, and returns the number of bytes read. It returns 0
// only at EOF; once EOF or Error is reached, further calls are idempotent.
func (f *File) Read(buf []byte) (int, error) {
	if f.state == fileStateEof {
		return 0, nil
	}
	if f.state == fileStateError {
		return 0, f.err
	}
	if f.state == fileStateInitial {
		f.state = fileStateStreaming
	}
	if f.remaining == 0 {
		f.state = fileStateEof
		return 0, nil
	}

	var n int
	var err error
	if f.r.Fast() {
		n, err = f.readFFS(buf)
	} else {
		n, err = f.readOFS(buf)
	}
	if err != nil {
		f.state = fileStateError
		f.err = err
		return n, err
	}
	f.remaining -= int64(n)
	if f.remaining == 0 {
		f.state = fileStateEof
	}
	return n, nil
}

// ReadAll repeatedly calls Read until buf is full or EOF, returning
// ResultCorruptFile if EOF is reached before buf is filled.
func (f *File) ReadAll(buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := f.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
		if n == 0 {
			if total < len(buf) {
				block := f.ofsCurBlock
				if f.r.Fast() {
					block = f.ffsCurBlk
				}
				return total, blockErr(ResultCorruptFile, block)
			}
			break
		}
	}
	return total, nil
}

// readOFS fills buf from the OFS data-block chain rooted at the file
// header's first_data pointer.
func (f *File) readOFS(buf []byte) (int, error) {
	if len(f.ofsCur) == 0 {
		if f.ofsNext == 0 {
			return 0, blockErr(ResultCorruptFile, f.ofsCurBlock)
		}
		var raw [blockSize]byte
		if err := f.r.readBlock(f.ofsNext, raw[:]); err != nil {
			return 0, err
		}
		db, err := parseOFSDataBlock(raw[:], f.ofsNext, f.ofsSeq)
		if err != nil {
			return 0, err
		}
		if int64(len(db.payload)) > f.remaining {
			// The block's own data_size claims more bytes than the file's
			// declared size has left: the accumulated-bytes-equal-size
			// invariant is broken (§4.6, §8).
			return 0, blockErr(ResultCorruptFile, f.ofsNext)
		}
		// Copy the payload out: raw is stack-local and would otherwise be
		// reused/invalidated on the next block read.
		payload := make([]byte, len(db.payload))
		copy(payload, db.payload)
		f.ofsCur = payload
		f.ofsCurBlock = f.ofsNext
		f.r.trace("ofs data block", slog.Uint64("block", uint64(f.ofsNext)), slog.Int("size", db.size))
		f.ofsNext = db.next
		f.ofsSeq++
	}
	n := copy(buf, f.ofsCur)
	f.ofsCur = f.ofsCur[n:]
	return n, nil
}

// readFFS fills buf from the FFS data_blocks array, consulting the
// header's table in reverse order (slot 71 first) and chaining through
// FileExt blocks as the table is exhausted (§4.6, §9).
func (f *File) readFFS(buf []byte) (int, error) {
	if len(f.ffsCur) == 0 {
		block, err := f.nextFFSBlock()
		if err != nil {
			return 0, err
		}
		if block == 0 {
			return 0, blockErr(ResultCorruptFile, f.ffsCurBlk)
		}
		var raw [blockSize]byte
		if err := f.r.readBlock(block, raw[:]); err != nil {
			return 0, err
		}
		n := int(f.remaining)
		if n > blockSize {
			n = blockSize
		}
		payload := make([]byte, n)
		copy(payload, raw[:n])
		f.ffsCur = payload
		f.ffsCurBlk = block
		f.r.trace("ffs data block", slog.Uint64("block", uint64(block)))
	}
	n := copy(buf, f.ffsCur)
	f.ffsCur = f.ffsCur[n:]
	return n, nil
}

// nextFFSBlock returns the next data block number in FFS order, loading
// the next FileExt block when the current data_blocks table is exhausted.
// It returns 0 with no error only if the file is legitimately out of
// blocks (callers treat that as corruption given remaining > 0).
func (f *File) nextFFSBlock() (uint32, error) {
	for {
		if f.ffsIdx >= 0 {
			b := f.ffsTable[f.ffsIdx]
			f.ffsIdx--
			if b != 0 {
				return b, nil
			}
			continue
		}
		if f.ffsExt == 0 {
			return 0, nil
		}
		f.ffsHops++
		if f.ffsHops > f.r.maxChainHops {
			return 0, blockErr(ResultCorruptFile, f.ffsExt)
		}
		var raw [blockSize]byte
		if err := f.r.readBlock(f.ffsExt, raw[:]); err != nil {
			return 0, err
		}
		fe, err := parseFileExt(raw[:], f.ffsExt)
		if err != nil {
			return 0, err
		}
		f.r.trace("ffs extension block", slog.Uint64("block", uint64(f.ffsExt)))
		f.ffsTable = fe.table
		f.ffsIdx = hashTableSize - 1
		f.ffsExt = fe.extension
	}
}
