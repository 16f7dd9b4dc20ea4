package cripta

import "fmt"

var desNetwork = &FeistelNetwork{
	roundFunction: DESRoundFunction{},
	roundsCount:   Rounds,
}

// EncryptBlock enciphers one block with subkeys 1..16.
func EncryptBlock(block Block, schedule *SubkeySchedule) Block {
	return crypt(desNetwork, block, schedule, false)
}

// DecryptBlock runs the same network as EncryptBlock with subkeys 16..1.
func DecryptBlock(block Block, schedule *SubkeySchedule) Block {
	return crypt(desNetwork, block, schedule, true)
}

func crypt(feistel *FeistelNetwork, block Block, schedule *SubkeySchedule, reverse bool) Block {
	left, right := Block(permute(uint64(block), 64, ipTable[:])).halves()
	r16, l16 := feistel.Run(left, right, schedule[:], reverse)
	return Block(permute(uint64(joinHalves(r16, l16)), 64, fpTable[:]))
}

// DESCipher binds a derived schedule to the ISymmetricCipher interface.
type DESCipher struct {
	feistel  *FeistelNetwork
	schedule *SubkeySchedule
}

func NewDESCipher(key []uint8) (*DESCipher, error) {
	keySchedule := &DESKeySchedule{}

	schedule, err := keySchedule.GenerateRoundKeys(key)
	if err != nil {
		return nil, fmt.Errorf("failed to generate round keys: %w", err)
	}

	return NewDESCipherFromSchedule(schedule)
}

func NewDESCipherFromSchedule(schedule *SubkeySchedule) (*DESCipher, error) {
	if schedule == nil {
		return nil, fmt.Errorf("subkey schedule cannot be nil")
	}

	feistel, err := NewFeistelNetwork(DESRoundFunction{}, Rounds)
	if err != nil {
		return nil, err
	}

	return &DESCipher{
		feistel:  feistel,
		schedule: schedule,
	}, nil
}

func (des *DESCipher) BlockSize() int {
	return BlockSize
}

func (des *DESCipher) Schedule() *SubkeySchedule {
	return des.schedule
}

func (des *DESCipher) EncryptBlock(plainBlock Block) Block {
	return crypt(des.feistel, plainBlock, des.schedule, false)
}

func (des *DESCipher) DecryptBlock(cipherBlock Block) Block {
	return crypt(des.feistel, cipherBlock, des.schedule, true)
}
