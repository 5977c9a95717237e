// Binary encoding for match position lists.
//
// Format (little-endian):
//
//	count:     uint32
//	positions: [count]uint32, strictly ascending
package store

import (
	"encoding/binary"
	"fmt"

	"github.com/coregx/kmp/internal/conv"
)

// encodePositions packs positions into a single pre-sized buffer.
func encodePositions(positions []int) ([]byte, error) {
	count, err := conv.IntToUint32(len(positions))
	if err != nil {
		return nil, fmt.Errorf("too many positions: %w", err)
	}
	buf := make([]byte, 4+4*len(positions))
	binary.LittleEndian.PutUint32(buf, count)
	for i, p := range positions {
		v, err := conv.IntToUint32(p)
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", p, err)
		}
		binary.LittleEndian.PutUint32(buf[4+4*i:], v)
	}
	return buf, nil
}

// decodePositions unpacks a buffer written by encodePositions. A nil buffer
// decodes to no positions.
func decodePositions(buf []byte) ([]int, error) {
	if buf == nil {
		return []int{}, nil
	}
	if len(buf) < 4 {
		return nil, fmt.Errorf("truncated header: %d bytes", len(buf))
	}
	count := binary.LittleEndian.Uint32(buf)
	if uint64(len(buf)-4) != 4*uint64(count) {
		return nil, fmt.Errorf("length mismatch: %d positions in %d bytes", count, len(buf)-4)
	}
	out := make([]int, count)
	for i := range out {
		v, err := conv.Uint32ToInt(binary.LittleEndian.Uint32(buf[4+4*i:]))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
