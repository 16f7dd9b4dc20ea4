package cripta

import "encoding/binary"

// BlockSize is the DES block width in bytes.
const BlockSize = 8

// Block is one 64-bit unit of plaintext or ciphertext. The first byte of the
// byte form holds the most significant bits.
type Block uint64

// BlockFromBytes reads the first 8 bytes of b. It panics if b is shorter.
func BlockFromBytes(b []uint8) Block {
	return Block(binary.BigEndian.Uint64(b))
}

// PutBytes writes the block into the first 8 bytes of dst.
func (b Block) PutBytes(dst []uint8) {
	binary.BigEndian.PutUint64(dst, uint64(b))
}

func (b Block) Bytes() [BlockSize]uint8 {
	var out [BlockSize]uint8
	b.PutBytes(out[:])
	return out
}

func (b Block) halves() (uint32, uint32) {
	return uint32(b >> 32), uint32(b)
}

func joinHalves(left, right uint32) Block {
	return Block(uint64(left)<<32 | uint64(right))
}
