package cripta

import (
	"errors"
	"fmt"
)

const (
	// KeySize is the DES key length in bytes. Parity bits are carried but never checked.
	KeySize = 8
	// Rounds is the number of Feistel rounds and subkeys.
	Rounds = 16
)

// ErrInvalidKeyLength is returned for any key that is not exactly KeySize bytes.
var ErrInvalidKeyLength = errors.New("DES key must be 8 bytes (64 bits)")

// SubkeySchedule holds the 16 round subkeys of one key, 48 bits each in the
// low bits of every entry. A schedule is never modified after derivation, so
// it can be shared by any number of goroutines.
type SubkeySchedule [Rounds]uint64

type DESKeySchedule struct{}

func (dks *DESKeySchedule) GenerateRoundKeys(masterKey []uint8) (*SubkeySchedule, error) {
	return DeriveSchedule(masterKey)
}

// DeriveSchedule expands an 8-byte key into its round subkeys.
func DeriveSchedule(key []uint8) (*SubkeySchedule, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidKeyLength, len(key))
	}

	permutedKey := permute(uint64(BlockFromBytes(key)), 64, pc1Table[:])

	c := uint32(permutedKey>>28) & mask28
	d := uint32(permutedKey) & mask28

	var schedule SubkeySchedule
	for round := 0; round < Rounds; round++ {
		c = rotl28(c, shiftSchedule[round])
		d = rotl28(d, shiftSchedule[round])

		cd := uint64(c)<<28 | uint64(d)
		schedule[round] = permute(cd, 56, pc2Table[:])
	}

	return &schedule, nil
}

// Reversed returns a copy with the subkeys in decryption order.
func (s *SubkeySchedule) Reversed() *SubkeySchedule {
	var reversed SubkeySchedule
	for i, k := range s {
		reversed[Rounds-1-i] = k
	}
	return &reversed
}
