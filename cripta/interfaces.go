package cripta

type IKeySchedule interface {
	GenerateRoundKeys(masterKey []uint8) (*SubkeySchedule, error)
}

type IRoundFunction interface {
	Apply(half uint32, roundKey uint64) uint32
}

// ISymmetricCipher implementations must be safe for concurrent use: the
// pipeline calls them from several goroutines at once.
type ISymmetricCipher interface {
	BlockSize() int
	EncryptBlock(plainBlock Block) Block
	DecryptBlock(cipherBlock Block) Block
}
