package fast

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// Pages are only used to serialize and hash memory; the backing buffer itself is contiguous.
const (
	PageAddrSize = 12
	PageSize     = 1 << PageAddrSize
	PageAddrMask = PageSize - 1
)

var zeroPage [PageSize]byte

// Memory is a fixed-capacity byte buffer backing the address window [base, base+size).
type Memory struct {
	base uint64
	data []byte

	// end offset of the highest byte ever written, bounds serialization and hashing
	touched uint64
}

func NewMemory(base uint64, size uint64) *Memory {
	return &Memory{
		base: base,
		data: make([]byte, size),
	}
}

func (m *Memory) Base() uint64 {
	return m.base
}

func (m *Memory) Size() uint64 {
	return uint64(len(m.data))
}

// offset validates an access of size bits at addr and returns the buffer offset.
func (m *Memory) offset(addr uint64, size uint64) (uint64, error) {
	switch size {
	case 8, 16, 32, 64:
	default:
		return 0, &InvalidSizeError{Size: size}
	}
	n := size / 8
	if addr < m.base || n > m.Size() || addr-m.base > m.Size()-n {
		return 0, &AddressError{Addr: addr, Size: size}
	}
	return addr - m.base, nil
}

// Load returns the little-endian value of size bits at addr, zero-extended to 64 bits.
func (m *Memory) Load(addr uint64, size uint64) (uint64, error) {
	offset, err := m.offset(addr, size)
	if err != nil {
		return 0, err
	}
	b := m.data[offset:]
	switch size {
	case 8:
		return uint64(b[0]), nil
	case 16:
		return uint64(binary.LittleEndian.Uint16(b)), nil
	case 32:
		return uint64(binary.LittleEndian.Uint32(b)), nil
	default:
		return binary.LittleEndian.Uint64(b), nil
	}
}

// Store writes the low size bits of value at addr, little-endian.
func (m *Memory) Store(addr uint64, size uint64, value uint64) error {
	offset, err := m.offset(addr, size)
	if err != nil {
		return err
	}
	b := m.data[offset:]
	switch size {
	case 8:
		b[0] = uint8(value)
	case 16:
		binary.LittleEndian.PutUint16(b, uint16(value))
	case 32:
		binary.LittleEndian.PutUint32(b, uint32(value))
	default:
		binary.LittleEndian.PutUint64(b, value)
	}
	m.touch(offset + size/8)
	return nil
}

func (m *Memory) touch(end uint64) {
	if end > m.touched {
		m.touched = end
	}
}

// SetMemoryRange copies everything r yields into memory, starting at addr.
// The program contents are not validated.
func (m *Memory) SetMemoryRange(addr uint64, r io.Reader) error {
	if addr < m.base || addr-m.base > m.Size() {
		return &AddressError{Addr: addr, Size: 8}
	}
	offset := addr - m.base
	n, err := io.ReadFull(r, m.data[offset:])
	m.touch(offset + uint64(n))
	switch {
	case err == nil:
		// buffer is full: anything left in r does not fit
		var probe [1]byte
		if k, _ := r.Read(probe[:]); k > 0 {
			return &AddressError{Addr: m.base + m.Size(), Size: 8}
		}
		return nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return nil
	default:
		return fmt.Errorf("failed to read memory range: %w", err)
	}
}

// ForEachPage calls fn for every page holding at least one non-zero byte, in address order.
func (m *Memory) ForEachPage(fn func(pageIndex uint64, page []byte) error) error {
	for start := uint64(0); start < m.touched; start += PageSize {
		end := start + PageSize
		if end > m.Size() {
			end = m.Size()
		}
		page := m.data[start:end]
		if bytes.Equal(page, zeroPage[:len(page)]) {
			continue
		}
		if err := fn(start>>PageAddrSize, page); err != nil {
			return err
		}
	}
	return nil
}

func (m *Memory) PageCount() int {
	count := 0
	_ = m.ForEachPage(func(uint64, []byte) error {
		count++
		return nil
	})
	return count
}

// Hash is the keccak256 digest of every non-zero page, prefixed by its big-endian page index.
// Memories with equal contents hash equally, regardless of how they were written.
func (m *Memory) Hash() common.Hash {
	var parts [][]byte
	_ = m.ForEachPage(func(pageIndex uint64, page []byte) error {
		parts = append(parts, binary.BigEndian.AppendUint64(nil, pageIndex), page)
		return nil
	})
	return crypto.Keccak256Hash(parts...)
}

type pageEntry struct {
	Index uint64        `json:"index"`
	Data  hexutil.Bytes `json:"data"`
}

type memoryJSON struct {
	Base  hexutil.Uint64 `json:"base"`
	Size  hexutil.Uint64 `json:"size"`
	Pages []pageEntry    `json:"pages"`
}

func (m *Memory) MarshalJSON() ([]byte, error) {
	out := memoryJSON{
		Base:  hexutil.Uint64(m.base),
		Size:  hexutil.Uint64(m.Size()),
		Pages: make([]pageEntry, 0),
	}
	_ = m.ForEachPage(func(pageIndex uint64, page []byte) error {
		out.Pages = append(out.Pages, pageEntry{Index: pageIndex, Data: page})
		return nil
	})
	return json.Marshal(out)
}

func (m *Memory) UnmarshalJSON(data []byte) error {
	var in memoryJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	m.base = uint64(in.Base)
	m.data = make([]byte, uint64(in.Size))
	m.touched = 0
	seen := make(map[uint64]struct{}, len(in.Pages))
	for i, p := range in.Pages {
		if _, ok := seen[p.Index]; ok {
			return fmt.Errorf("cannot load duplicate page, entry %d, page index %d", i, p.Index)
		}
		seen[p.Index] = struct{}{}
		// compare the index before shifting, large indices would wrap
		if p.Index > m.Size()>>PageAddrSize {
			return fmt.Errorf("page %d (entry %d) does not fit in %d bytes of memory", p.Index, i, m.Size())
		}
		start := p.Index << PageAddrSize
		if len(p.Data) > PageSize || start >= m.Size() || uint64(len(p.Data)) > m.Size()-start {
			return fmt.Errorf("page %d (entry %d) does not fit in %d bytes of memory", p.Index, i, m.Size())
		}
		copy(m.data[start:], p.Data)
		m.touch(start + uint64(len(p.Data)))
	}
	return nil
}

// Usage reports the size of the touched part of memory.
func (m *Memory) Usage() string {
	total := m.touched
	const unit = 1024
	if total < unit {
		return fmt.Sprintf("%d B", total)
	}
	div, exp := uint64(unit), 0
	for n := total / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	// KiB, MiB, GiB, TiB, ...
	return fmt.Sprintf("%.1f %ciB", float64(total)/float64(div), "KMGTPE"[exp])
}
