package cripta

import "testing"

// xorAddRound is a deliberately non-invertible toy round function.
type xorAddRound struct{}

func (xorAddRound) Apply(half uint32, roundKey uint64) uint32 {
	return (half*2654435761 + uint32(roundKey)) &^ 0x3
}

func TestNewFeistelNetwork(t *testing.T) {
	if _, err := NewFeistelNetwork(nil, Rounds); err == nil {
		t.Error("expected an error for a nil round function")
	}
	if _, err := NewFeistelNetwork(xorAddRound{}, -1); err == nil {
		t.Error("expected an error for a negative rounds count")
	}

	fn, err := NewFeistelNetwork(xorAddRound{}, 0)
	if err != nil {
		t.Fatalf("error creating network: %v", err)
	}
	if fn.GetRoundsCount() != Rounds {
		t.Errorf("GetRoundsCount() = %d, want default %d", fn.GetRoundsCount(), Rounds)
	}
}

func TestFeistelNetwork_ReverseUndoesForward(t *testing.T) {
	keys := []uint64{3, 1, 4, 1, 5, 9, 2, 6}

	for _, rounds := range []int{1, 2, 5, 8} {
		fn, err := NewFeistelNetwork(xorAddRound{}, rounds)
		if err != nil {
			t.Fatalf("error creating network: %v", err)
		}

		l, r := uint32(0xDEADBEEF), uint32(0x01234567)
		el, er := fn.Run(l, r, keys, false)
		if el == l && er == r {
			t.Errorf("%d rounds: forward run left the block unchanged", rounds)
		}

		dl, dr := fn.Run(el, er, keys, true)
		if dl != l || dr != r {
			t.Errorf("%d rounds: got (%08X, %08X), want (%08X, %08X)", rounds, dl, dr, l, r)
		}
	}
}

func TestFeistelNetwork_SingleRound(t *testing.T) {
	fn, err := NewFeistelNetwork(xorAddRound{}, 1)
	if err != nil {
		t.Fatalf("error creating network: %v", err)
	}

	l, r := uint32(0x11111111), uint32(0x22222222)
	gotR, gotL := fn.Run(l, r, []uint64{7}, false)

	// One round gives L1 = R0, R1 = L0 ^ f(R0); the result is swapped.
	if wantL := r; gotL != wantL {
		t.Errorf("L1 = %08X, want %08X", gotL, wantL)
	}
	if wantR := l ^ (xorAddRound{}).Apply(r, 7); gotR != wantR {
		t.Errorf("R1 = %08X, want %08X", gotR, wantR)
	}
}
