package cripta

// DESRoundFunction is the DES f-function: expansion, key mixing, S-box
// substitution and the P permutation.
type DESRoundFunction struct{}

func (DESRoundFunction) Apply(half uint32, roundKey uint64) uint32 {
	mixed := permute(uint64(half), 32, eTable[:]) ^ (roundKey & 0xFFFFFFFFFFFF)

	var substituted uint64
	for i := 0; i < 8; i++ {
		group := (mixed >> uint(42-6*i)) & 0x3F
		row := (group>>4)&0x2 | group&0x1
		col := (group >> 1) & 0xF
		substituted = substituted<<4 | uint64(sBoxes[i][row][col])
	}

	return uint32(permute(substituted, 32, pTable[:]))
}
