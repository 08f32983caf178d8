package graph

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"strings"
	"unsafe"

	"github.com/golang/snappy"
)

const (
	magicBytes = "GNCSSSP\x00"
	version    = uint32(1)
	maxNodes   = 100_000_000
	maxEdges   = 1_000_000_000

	// CompressedSuffix marks graph files stored as a snappy stream.
	CompressedSuffix = ".sz"

	flagCoordinates = uint32(1)
)

// fileHeader is the binary header.
type fileHeader struct {
	Magic    [8]byte
	Version  uint32
	NumNodes uint32
	NumEdges uint32
	Flags    uint32
}

// WriteBinary serializes a SparseGraph to a binary file.
func WriteBinary(path string, g *SparseGraph) error {
	return WriteFile(path, g, nil)
}

// ReadBinary loads a graph written by WriteBinary or WriteFile, discarding
// any coordinates.
func ReadBinary(path string) (*SparseGraph, error) {
	g, _, err := ReadFile(path)
	return g, err
}

// WriteFile serializes a SparseGraph and, if coords is non-nil, its node
// coordinates. Paths ending in CompressedSuffix are written as a snappy
// stream. Uses unsafe.Slice for fast zero-copy I/O.
func WriteFile(path string, g *SparseGraph, coords *Coordinates) error {
	if err := g.Check(); err != nil {
		return fmt.Errorf("graph invalid: %w", err)
	}
	if coords != nil && coords.Len() != int(g.NodeCount()) {
		return fmt.Errorf("%w: %d coordinates for %d nodes", ErrCoordinatesLength, coords.Len(), g.NodeCount())
	}

	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		f.Close()
		os.Remove(tmpPath) // clean up on error
	}()

	var sink io.Writer = f
	var sw *snappy.Writer
	if isCompressed(path) {
		sw = snappy.NewBufferedWriter(f)
		sink = sw
	}

	crcWriter := crc32Writer{w: sink, hash: crc32.NewIEEE()}
	w := &crcWriter

	hdr := fileHeader{
		Version:  version,
		NumNodes: g.NodeCount(),
		NumEdges: g.EdgeCount(),
	}
	if coords != nil {
		hdr.Flags |= flagCoordinates
	}
	copy(hdr.Magic[:], magicBytes)
	if err := binary.Write(w, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	if err := writeUint32Slice(w, g.offsets); err != nil {
		return fmt.Errorf("write offsets: %w", err)
	}
	if err := writeUint32Slice(w, g.destinations); err != nil {
		return fmt.Errorf("write destinations: %w", err)
	}
	if err := writeFloat64Slice(w, g.weights); err != nil {
		return fmt.Errorf("write weights: %w", err)
	}
	if coords != nil {
		if err := writeFloat64Slice(w, coords.Lat); err != nil {
			return fmt.Errorf("write latitudes: %w", err)
		}
		if err := writeFloat64Slice(w, coords.Lon); err != nil {
			return fmt.Errorf("write longitudes: %w", err)
		}
	}

	// Write CRC32 trailer.
	checksum := crcWriter.hash.Sum32()
	if err := binary.Write(sink, binary.LittleEndian, checksum); err != nil {
		return fmt.Errorf("write CRC32: %w", err)
	}

	if sw != nil {
		if err := sw.Close(); err != nil {
			return fmt.Errorf("flush snappy stream: %w", err)
		}
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	// Atomic rename.
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// ReadFile deserializes a SparseGraph written by WriteFile. coords is nil
// when the file carries none. The loaded graph must pass Check.
func ReadFile(path string) (*SparseGraph, *Coordinates, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	var src io.Reader = f
	if isCompressed(path) {
		src = snappy.NewReader(f)
	}

	crcReader := crc32Reader{r: src, hash: crc32.NewIEEE()}
	r := &crcReader

	var hdr fileHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	if string(hdr.Magic[:]) != magicBytes {
		return nil, nil, fmt.Errorf("invalid magic bytes: %q", hdr.Magic)
	}
	if hdr.Version != version {
		return nil, nil, fmt.Errorf("unsupported version: %d", hdr.Version)
	}
	if hdr.NumNodes > maxNodes {
		return nil, nil, fmt.Errorf("NumNodes %d exceeds limit %d", hdr.NumNodes, maxNodes)
	}
	if hdr.NumEdges > maxEdges {
		return nil, nil, fmt.Errorf("NumEdges %d exceeds limit %d", hdr.NumEdges, maxEdges)
	}

	offsets, err := readUint32Slice(r, int(hdr.NumNodes)+1)
	if err != nil {
		return nil, nil, fmt.Errorf("read offsets: %w", err)
	}
	destinations, err := readUint32Slice(r, int(hdr.NumEdges))
	if err != nil {
		return nil, nil, fmt.Errorf("read destinations: %w", err)
	}
	weights, err := readFloat64Slice(r, int(hdr.NumEdges))
	if err != nil {
		return nil, nil, fmt.Errorf("read weights: %w", err)
	}
	var coords *Coordinates
	if hdr.Flags&flagCoordinates != 0 {
		coords = &Coordinates{}
		if coords.Lat, err = readFloat64Slice(r, int(hdr.NumNodes)); err != nil {
			return nil, nil, fmt.Errorf("read latitudes: %w", err)
		}
		if coords.Lon, err = readFloat64Slice(r, int(hdr.NumNodes)); err != nil {
			return nil, nil, fmt.Errorf("read longitudes: %w", err)
		}
	}

	expectedCRC := crcReader.hash.Sum32()
	var storedCRC uint32
	if err := binary.Read(src, binary.LittleEndian, &storedCRC); err != nil {
		return nil, nil, fmt.Errorf("read CRC32: %w", err)
	}
	if storedCRC != expectedCRC {
		return nil, nil, fmt.Errorf("CRC32 mismatch: stored=%08x computed=%08x", storedCRC, expectedCRC)
	}

	g := New(hdr.NumNodes, offsets, destinations, weights)
	if err := g.Check(); err != nil {
		return nil, nil, fmt.Errorf("graph invalid: %w", err)
	}
	return g, coords, nil
}

func isCompressed(path string) bool {
	return strings.HasSuffix(path, CompressedSuffix)
}

// Zero-copy I/O helpers using unsafe.Slice.

func writeUint32Slice(w io.Writer, s []uint32) error {
	if len(s) == 0 {
		return nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*4)
	_, err := w.Write(b)
	return err
}

func writeFloat64Slice(w io.Writer, s []float64) error {
	if len(s) == 0 {
		return nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*8)
	_, err := w.Write(b)
	return err
}

func readUint32Slice(r io.Reader, n int) ([]uint32, error) {
	if n == 0 {
		return nil, nil
	}
	s := make([]uint32, n)
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), n*4)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return s, nil
}

func readFloat64Slice(r io.Reader, n int) ([]float64, error) {
	if n == 0 {
		return nil, nil
	}
	s := make([]float64, n)
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), n*8)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return s, nil
}

// CRC32 wrapping writers/readers.

type crc32Writer struct {
	w    io.Writer
	hash crc32Hash
}

type crc32Hash interface {
	Write([]byte) (int, error)
	Sum32() uint32
}

func (cw *crc32Writer) Write(p []byte) (int, error) {
	cw.hash.Write(p)
	return cw.w.Write(p)
}

type crc32Reader struct {
	r    io.Reader
	hash crc32Hash
}

func (cr *crc32Reader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	if n > 0 {
		cr.hash.Write(p[:n])
	}
	return n, err
}
