package affs

import (
	"log/slog"
	"strings"
)

// Entry describes one decoded directory entry, as yielded by the directory
// iterator and by FindEntry/FindPath.
type Entry struct {
	Name   Name
	Block  uint32
	Parent uint32
	Type   EntryType
	Size   int64 // meaningful only when Type == EntryFile

	firstData uint32
	extension uint32
	table     [hashTableSize]uint32 // hash_table (dir) or data_blocks (file)
}

// IsDir reports whether the entry is a traversable directory.
func (e *Entry) IsDir() bool { return e.Type.IsDir() }

// entryFromHeader converts a decoded header block into the public Entry
// view.
func entryFromHeader(h *header) Entry {
	return Entry{
		Name:      h.name,
		Block:     h.block,
		Parent:    h.parent,
		Type:      h.secondaryType,
		Size:      h.size,
		firstData: h.firstData,
		extension: h.extension,
		table:     h.table,
	}
}

// DirIterator walks one directory's 72-slot hash table, yielding every
// entry reachable via each slot's hash_chain. It is a finite,
// non-restartable lazy sequence (§4.5): each entry Next yields costs one
// block read. For a directory other than the root, Next also re-reads the
// directory's own header block each time it moves on to a later slot, and
// each skipped entry of unknown type costs one further block read.
type DirIterator struct {
	r      *Reader
	dirBlk uint32
	slot   int
	next   uint32 // next block to load within the current slot's chain, 0 if none
	hops   int
	err    error
	done   bool
	entry  Entry
}

// ReadDir begins iterating the directory at dirBlock (the root block or any
// UserDir entry's Block). The directory's own header is loaded and
// validated immediately so a bad directory block fails at ReadDir time
// rather than on the first Next call.
func (r *Reader) ReadDir(dirBlock uint32) (*DirIterator, error) {
	h, err := r.loadDirHeader(dirBlock)
	if err != nil {
		return nil, err
	}
	it := &DirIterator{r: r, dirBlk: dirBlock, slot: -1}
	it.advanceSlot(&h)
	return it, nil
}

// loadDirHeader reads and validates dirBlock as a directory header (Root or
// UserDir).
func (r *Reader) loadDirHeader(dirBlock uint32) (header, error) {
	if dirBlock == r.rootBlockNum {
		return r.root.header, nil
	}
	var buf [blockSize]byte
	if err := r.readBlock(dirBlock, buf[:]); err != nil {
		return header{}, err
	}
	h, err := parseHeader(buf[:], dirBlock)
	if err != nil {
		return header{}, err
	}
	if !h.isDir() {
		return header{}, blockErr(ResultNotADirectory, dirBlock)
	}
	return h, nil
}

// advanceSlot moves the iterator to the first non-empty hash_table slot at
// or after it.slot+1, setting it.next to that slot's first block (or
// finishing the iterator if none remain).
func (it *DirIterator) advanceSlot(h *header) {
	for it.slot++; it.slot < hashTableSize; it.slot++ {
		if b := h.table[it.slot]; b != 0 {
			it.next = b
			return
		}
	}
	it.done = true
}

// Next advances the iterator and reports whether an entry is available via
// Entry. It returns false at end of directory or on error (check Err).
func (it *DirIterator) Next() bool {
	if it.done || it.err != nil {
		return false
	}
	for it.next == 0 {
		if it.slot >= hashTableSize-1 {
			it.done = true
			return false
		}
		// Need the directory header again to read the next slot; cached
		// on the Reader only for the root, so re-derive for non-root dirs.
		h, err := it.r.loadDirHeader(it.dirBlk)
		if err != nil {
			it.err = err
			return false
		}
		it.advanceSlot(&h)
		if it.done {
			return false
		}
	}

	it.hops++
	if it.hops > it.r.maxChainHops {
		it.err = blockErr(ResultCorruptFile, it.next)
		return false
	}

	curBlock := it.next
	var buf [blockSize]byte
	if err := it.r.readBlock(curBlock, buf[:]); err != nil {
		it.err = err
		return false
	}
	h, err := parseHeader(buf[:], curBlock)
	if err != nil {
		it.err = err
		return false
	}
	it.entry = entryFromHeader(&h)
	it.r.trace("hash chain hop", slog.Int("slot", it.slot), slog.Uint64("block", uint64(curBlock)))
	it.next = h.hashChain

	switch h.secondaryType {
	case EntryRoot, EntryUserDir, EntryFile, EntrySoftLink, EntryLinkDir, EntryLinkFile:
		return true
	default:
		it.r.warn("skipping unknown secondary type entry", slog.Uint64("block", uint64(curBlock)))
		return it.Next()
	}
}

// Entry returns the entry most recently produced by Next.
func (it *DirIterator) Entry() Entry { return it.entry }

// Err returns the first error encountered during iteration, if any.
func (it *DirIterator) Err() error { return it.err }

// FindEntry looks up name directly in the directory at dirBlock by hashing
// to its slot and walking only that slot's hash_chain (§4.5: lookups must
// not scan other slots).
func (r *Reader) FindEntry(dirBlock uint32, name []byte) (Entry, error) {
	h, err := r.loadDirHeader(dirBlock)
	if err != nil {
		return Entry{}, err
	}
	intl := r.Intl()
	slot := hashName(name, intl)
	next := h.table[slot]
	hops := 0
	for next != 0 {
		hops++
		if hops > r.maxChainHops {
			return Entry{}, blockErr(ResultCorruptFile, next)
		}
		var buf [blockSize]byte
		if err := r.readBlock(next, buf[:]); err != nil {
			return Entry{}, err
		}
		ch, err := parseHeader(buf[:], next)
		if err != nil {
			return Entry{}, err
		}
		if namesEqual(ch.name.Bytes(), name, intl) {
			return entryFromHeader(&ch), nil
		}
		next = ch.hashChain
	}
	return Entry{}, ResultEntryNotFound
}

// FindPath resolves a '/'-separated path starting at the volume root.
// Empty components and a leading '/' are no-ops. All non-final components
// must resolve to directories, or ResultNotADirectory is returned.
// FindPath("") or FindPath("/") returns the root entry itself.
func (r *Reader) FindPath(path string) (Entry, error) {
	root := entryFromHeader(&r.root.header)
	components := strings.Split(path, "/")

	cur := root
	curBlock := r.rootBlockNum
	sawComponent := false
	for _, c := range components {
		if c == "" {
			continue
		}
		sawComponent = true
		if !cur.IsDir() {
			return Entry{}, blockErr(ResultNotADirectory, curBlock)
		}
		e, err := r.FindEntry(curBlock, []byte(c))
		if err != nil {
			return Entry{}, err
		}
		cur = e
		curBlock = e.Block
	}
	if !sawComponent {
		return root, nil
	}
	return cur, nil
}
