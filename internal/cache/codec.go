package cache

import (
	"encoding/binary"
	"errors"
	"fmt"
	"slices"

	"github.com/pierrec/lz4/v4"
)

// Array file layout (little-endian):
//
//	magic   [4]byte  "FPA1"
//	flags   uint16   flagDelta | flagLZ4
//	_       uint16   reserved, zero
//	count   uint64   number of values
//	payload uint32   length of the payload that follows
//	...     payload  LZ4 block, or raw 8-byte values when not compressible
const (
	arrayMagic       = "FPA1"
	headerSize       = 20
	uint64ByteSize   = 8
	maxPayloadLength = 1<<32 - 1
)

const (
	flagDelta uint16 = 1 << iota
	flagLZ4
)

// ErrCorruptArtifact is returned when a cache file cannot be decoded.
var ErrCorruptArtifact = errors.New("corrupt cache artifact")

// EncodeArray serializes values. Sorted arrays are delta-encoded first so
// consecutive moduli become a run of ones that LZ4 compresses well.
func EncodeArray(values []uint64) ([]byte, error) {
	var flags uint16
	data := values
	if len(values) > 1 && slices.IsSorted(values) {
		data = slices.Clone(values)
		deltaEncode(data)
		flags |= flagDelta
	}

	raw := make([]byte, len(data)*uint64ByteSize)
	for i, v := range data {
		binary.LittleEndian.PutUint64(raw[i*uint64ByteSize:], v)
	}

	payload := raw
	if len(raw) > 0 {
		compressed := make([]byte, lz4.CompressBlockBound(len(raw)))
		written, err := lz4.CompressBlock(raw, compressed, nil)
		if err == nil && written > 0 && written < len(raw) {
			payload = compressed[:written]
			flags |= flagLZ4
		}
	}
	if len(payload) > maxPayloadLength {
		return nil, fmt.Errorf("array of %d values is too large to cache", len(values))
	}

	out := make([]byte, headerSize+len(payload))
	copy(out, arrayMagic)
	binary.LittleEndian.PutUint16(out[4:], flags)
	binary.LittleEndian.PutUint64(out[8:], uint64(len(values)))
	binary.LittleEndian.PutUint32(out[16:], uint32(len(payload)))
	copy(out[headerSize:], payload)
	return out, nil
}

// DecodeArray restores values written by EncodeArray.
func DecodeArray(data []byte) ([]uint64, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the header", ErrCorruptArtifact, len(data))
	}
	if string(data[:4]) != arrayMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrCorruptArtifact, data[:4])
	}
	flags := binary.LittleEndian.Uint16(data[4:])
	count := binary.LittleEndian.Uint64(data[8:])
	payloadLen := binary.LittleEndian.Uint32(data[16:])
	payload := data[headerSize:]
	if uint64(len(payload)) != uint64(payloadLen) {
		return nil, fmt.Errorf("%w: payload is %d bytes, header says %d", ErrCorruptArtifact, len(payload), payloadLen)
	}
	if count > uint64(maxPayloadLength)/uint64ByteSize {
		return nil, fmt.Errorf("%w: implausible count %d", ErrCorruptArtifact, count)
	}

	rawLen := int(count) * uint64ByteSize
	raw := payload
	if flags&flagLZ4 != 0 {
		raw = make([]byte, rawLen)
		n, err := lz4.UncompressBlock(payload, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptArtifact, err)
		}
		raw = raw[:n]
	}
	if len(raw) != rawLen {
		return nil, fmt.Errorf("%w: expected %d bytes of values, got %d", ErrCorruptArtifact, rawLen, len(raw))
	}

	if count == 0 {
		return nil, nil
	}
	values := make([]uint64, count)
	for i := range values {
		values[i] = binary.LittleEndian.Uint64(raw[i*uint64ByteSize:])
	}
	if flags&flagDelta != 0 {
		deltaDecode(values)
	}
	return values, nil
}

// deltaEncode replaces each element with the difference from its
// predecessor, in place. The first element is left unchanged.
func deltaEncode(data []uint64) {
	for i := len(data) - 1; i > 0; i-- {
		data[i] -= data[i-1]
	}
}

// deltaDecode performs a prefix sum to restore values produced by deltaEncode.
func deltaDecode(data []uint64) {
	for i := 1; i < len(data); i++ {
		data[i] += data[i-1]
	}
}
