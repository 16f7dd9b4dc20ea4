package cripta

import (
	"context"
	"fmt"
)

type Direction int

const (
	Encrypt Direction = iota
	Decrypt
)

func (d Direction) String() string {
	switch d {
	case Encrypt:
		return "encrypt"
	case Decrypt:
		return "decrypt"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// TruncatedBlockError reports trailing bytes of a persisted block sequence
// that were too few to form a block and were dropped.
type TruncatedBlockError struct {
	Dropped int
	Length  int
}

func (e *TruncatedBlockError) Error() string {
	return fmt.Sprintf("block sequence of %d bytes ends with %d bytes that do not form a full block; they were dropped",
		e.Length, e.Dropped)
}

// Chunk splits data into blocks, extending a short final group with zero
// bytes. The extension is not recorded anywhere, so trailing zeros of the
// original data cannot be told apart from padding.
func Chunk(data []uint8) []Block {
	numBlocks := (len(data) + BlockSize - 1) / BlockSize
	blocks := make([]Block, numBlocks)

	full := len(data) / BlockSize
	for i := 0; i < full; i++ {
		blocks[i] = BlockFromBytes(data[i*BlockSize:])
	}

	if rest := data[full*BlockSize:]; len(rest) > 0 {
		var tail [BlockSize]uint8
		copy(tail[:], rest)
		blocks[full] = BlockFromBytes(tail[:])
	}

	return blocks
}

// ParseBlocks reads a persisted block sequence. Trailing bytes that cannot
// fill a block are not part of any block; their count is returned as dropped.
func ParseBlocks(data []uint8) (blocks []Block, dropped int) {
	full := len(data) / BlockSize
	blocks = make([]Block, full)
	for i := range blocks {
		blocks[i] = BlockFromBytes(data[i*BlockSize:])
	}
	return blocks, len(data) - full*BlockSize
}

// Unchunk concatenates the blocks without removing any padding.
func Unchunk(blocks []Block) []uint8 {
	out := make([]uint8, len(blocks)*BlockSize)
	for i, b := range blocks {
		b.PutBytes(out[i*BlockSize:])
	}
	return out
}

// EncryptStream chunks data, enciphers every block with schedule on the given
// number of workers and returns the concatenated ciphertext.
func EncryptStream(ctx context.Context, data []uint8, schedule *SubkeySchedule, workers int) ([]uint8, error) {
	cipher, err := NewDESCipherFromSchedule(schedule)
	if err != nil {
		return nil, err
	}

	processed, err := Process(ctx, cipher, Chunk(data), Encrypt, workers)
	if err != nil {
		return nil, fmt.Errorf("encryption failed: %w", err)
	}

	return Unchunk(processed), nil
}

// DecryptStream deciphers a concatenated block sequence. If the input length
// is not a multiple of BlockSize the plaintext of the full blocks is returned
// together with a *TruncatedBlockError.
func DecryptStream(ctx context.Context, data []uint8, schedule *SubkeySchedule, workers int) ([]uint8, error) {
	cipher, err := NewDESCipherFromSchedule(schedule)
	if err != nil {
		return nil, err
	}

	blocks, dropped := ParseBlocks(data)

	processed, err := Process(ctx, cipher, blocks, Decrypt, workers)
	if err != nil {
		return nil, fmt.Errorf("decryption failed: %w", err)
	}

	plaintext := Unchunk(processed)
	if dropped > 0 {
		return plaintext, &TruncatedBlockError{Dropped: dropped, Length: len(data)}
	}
	return plaintext, nil
}
