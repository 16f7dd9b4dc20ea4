package cripta

import (
	"math/rand"
	"testing"
)

func TestPermute_InitialPermutation(t *testing.T) {
	if got := permute(0x0123456789ABCDEF, 64, ipTable[:]); got != textbookIP {
		t.Errorf("IP(0123456789ABCDEF) = %016X, want %016X", got, uint64(textbookIP))
	}
}

func TestPermute_FinalIsInverseOfInitial(t *testing.T) {
	rng := rand.New(rand.NewSource(64))
	for i := 0; i < 100; i++ {
		v := rng.Uint64()
		if got := permute(permute(v, 64, ipTable[:]), 64, fpTable[:]); got != v {
			t.Fatalf("FP(IP(%016X)) = %016X", v, got)
		}
	}
}

func TestPermute_Identity(t *testing.T) {
	rule := make([]uint8, 28)
	for i := range rule {
		rule[i] = uint8(i + 1)
	}
	if got := permute(0xABCDEF1, 28, rule); got != 0xABCDEF1 {
		t.Errorf("identity permutation = %X, want ABCDEF1", got)
	}
}

func TestTables_AreWellFormed(t *testing.T) {
	tests := []struct {
		name    string
		table   []uint8
		inWidth int
		// expected number of times every source bit is picked; 0 means "at most once"
		uses int
	}{
		{"IP", ipTable[:], 64, 1},
		{"FP", fpTable[:], 64, 1},
		{"PC1", pc1Table[:], 64, 0},
		{"PC2", pc2Table[:], 56, 0},
		{"P", pTable[:], 32, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counts := make([]int, tt.inWidth+1)
			for _, src := range tt.table {
				if src < 1 || int(src) > tt.inWidth {
					t.Fatalf("source bit %d out of range 1..%d", src, tt.inWidth)
				}
				counts[src]++
			}
			for bit := 1; bit <= tt.inWidth; bit++ {
				if tt.uses > 0 && counts[bit] != tt.uses {
					t.Errorf("bit %d used %d times, want %d", bit, counts[bit], tt.uses)
				}
				if counts[bit] > 1 {
					t.Errorf("bit %d used %d times", bit, counts[bit])
				}
			}
		})
	}

	t.Run("PC1 skips parity bits", func(t *testing.T) {
		for _, src := range pc1Table {
			if src%8 == 0 {
				t.Errorf("PC1 selects parity bit %d", src)
			}
		}
	})

	t.Run("E repeats half of the bits", func(t *testing.T) {
		counts := make([]int, 33)
		for _, src := range eTable {
			counts[src]++
		}
		twice := 0
		for bit := 1; bit <= 32; bit++ {
			switch counts[bit] {
			case 1:
			case 2:
				twice++
			default:
				t.Errorf("bit %d used %d times", bit, counts[bit])
			}
		}
		if twice != 16 {
			t.Errorf("%d bits appear twice, want 16", twice)
		}
	})

	t.Run("S-box rows are permutations", func(t *testing.T) {
		for i, box := range sBoxes {
			for r, row := range box {
				var seen [16]bool
				for _, v := range row {
					if v > 15 || seen[v] {
						t.Errorf("S%d row %d is not a permutation of 0..15", i+1, r)
						break
					}
					seen[v] = true
				}
			}
		}
	})

	t.Run("shift schedule totals 28", func(t *testing.T) {
		total := 0
		for _, s := range shiftSchedule {
			total += int(s)
		}
		if total != 28 {
			t.Errorf("rotations sum to %d, want 28", total)
		}
	})
}

func TestRotl28(t *testing.T) {
	tests := []struct {
		in     uint32
		shifts uint8
		want   uint32
	}{
		{0x8000000, 1, 0x0000001},
		{0x0000001, 2, 0x0000004},
		{0xC000000, 2, 0x0000003},
		{0xF0CCAAF, 1, 0xE19955F},
	}
	for _, tt := range tests {
		if got := rotl28(tt.in, tt.shifts); got != tt.want {
			t.Errorf("rotl28(%07X, %d) = %07X, want %07X", tt.in, tt.shifts, got, tt.want)
		}
	}
}

func TestFormatBits(t *testing.T) {
	tests := []struct {
		value uint64
		width int
		group int
		want  string
	}{
		{0x5, 4, 0, "0101"},
		{0xF0, 8, 4, "1111 0000"},
		{0x1B02EFFC7072, 48, 6, "000110 110000 001011 101111 111111 000111 000001 110010"},
		{0x7, 5, 2, "00 11 1"},
	}
	for _, tt := range tests {
		if got := FormatBits(tt.value, tt.width, tt.group); got != tt.want {
			t.Errorf("FormatBits(%X, %d, %d) = %q, want %q", tt.value, tt.width, tt.group, got, tt.want)
		}
	}
}
