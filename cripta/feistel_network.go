package cripta

import (
	"fmt"
)

type FeistelNetwork struct {
	roundFunction IRoundFunction
	roundsCount   int
}

func NewFeistelNetwork(
	roundFunctionImpl IRoundFunction,
	roundsCount int,
) (*FeistelNetwork, error) {

	if roundFunctionImpl == nil {
		return nil, fmt.Errorf("round function implementation cannot be nil")
	}
	if roundsCount < 0 {
		return nil, fmt.Errorf("rounds count cannot be negative: %d", roundsCount)
	}

	fRoundsCount := roundsCount
	if fRoundsCount == 0 {
		fRoundsCount = Rounds
	}

	return &FeistelNetwork{
		roundFunction: roundFunctionImpl,
		roundsCount:   fRoundsCount,
	}, nil
}

func (fn *FeistelNetwork) GetRoundsCount() int {
	return fn.roundsCount
}

// Run applies the rounds to (left, right) taking round keys in the given
// order, or from the last one backwards when reverse is set. The result is
// the swapped pair (R, L) so that running it again with the opposite order
// undoes the transform. keys must hold at least GetRoundsCount entries.
func (fn *FeistelNetwork) Run(left, right uint32, keys []uint64, reverse bool) (uint32, uint32) {
	for round := 0; round < fn.roundsCount; round++ {
		k := keys[round]
		if reverse {
			k = keys[fn.roundsCount-1-round]
		}
		left, right = right, left^fn.roundFunction.Apply(right, k)
	}
	return right, left
}
