package cripta

import (
	"errors"
	"testing"

	"github.com/go-test/deep"
)

func TestDeriveSchedule_InvalidKeyLength(t *testing.T) {
	for _, n := range []int{0, 7, 9, 16} {
		schedule, err := DeriveSchedule(make([]uint8, n))
		if !errors.Is(err, ErrInvalidKeyLength) {
			t.Errorf("DeriveSchedule(%d bytes) error = %v, want ErrInvalidKeyLength", n, err)
		}
		if schedule != nil {
			t.Errorf("DeriveSchedule(%d bytes) returned a schedule", n)
		}
	}
}

func TestDeriveSchedule_TextbookSubkeys(t *testing.T) {
	schedule := mustSchedule(t, mustHex(t, "133457799BBCDFF1"))

	tests := []struct {
		round int
		want  uint64
	}{
		// 000110 110000 001011 101111 111111 000111 000001 110010
		{1, 0x1B02EFFC7072},
		// 011110 011010 111011 011001 110110 111100 100111 100101
		{2, 0x79AED9DBC9E5},
		// 110010 110011 110110 001011 000011 100001 011111 110101
		{16, 0xCB3D8B0E17F5},
	}
	for _, tt := range tests {
		if got := schedule[tt.round-1]; got != tt.want {
			t.Errorf("K%d = %012X (%s), want %012X", tt.round, got, FormatBits(got, 48, 6), tt.want)
		}
	}

	for i, k := range schedule {
		if k>>48 != 0 {
			t.Errorf("K%d = %X has bits above 48", i+1, k)
		}
	}
}

func TestDeriveSchedule_IgnoresParityBits(t *testing.T) {
	key := mustHex(t, "133457799BBCDFF1")
	flipped := make([]uint8, len(key))
	for i, b := range key {
		flipped[i] = b ^ 0x01
	}

	if diff := deep.Equal(mustSchedule(t, key), mustSchedule(t, flipped)); diff != nil {
		t.Errorf("schedules differ when only parity bits change: %v", diff)
	}
}

func TestDESKeySchedule_GenerateRoundKeys(t *testing.T) {
	key := mustHex(t, "0123456789ABCDEF")

	var ks IKeySchedule = &DESKeySchedule{}
	got, err := ks.GenerateRoundKeys(key)
	if err != nil {
		t.Fatalf("error generating round keys: %v", err)
	}
	if diff := deep.Equal(got, mustSchedule(t, key)); diff != nil {
		t.Errorf("GenerateRoundKeys() differs from DeriveSchedule(): %v", diff)
	}
}

func TestSubkeySchedule_Reversed(t *testing.T) {
	schedule := mustSchedule(t, mustHex(t, "0123456789ABCDEF"))
	reversed := schedule.Reversed()

	for i := 0; i < Rounds; i++ {
		if reversed[i] != schedule[Rounds-1-i] {
			t.Fatalf("Reversed()[%d] = %X, want %X", i, reversed[i], schedule[Rounds-1-i])
		}
	}
	if diff := deep.Equal(reversed.Reversed(), schedule); diff != nil {
		t.Errorf("reversing twice changed the schedule: %v", diff)
	}
}
