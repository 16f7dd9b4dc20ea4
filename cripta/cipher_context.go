package cripta

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// CipherContext runs the block-stream pipeline for one key: it owns the
// cipher, the worker count and the logger used for progress and warnings.
type CipherContext struct {
	cipher  *DESCipher
	workers int
	log     logrus.FieldLogger
}

type ContextOption func(*CipherContext)

// WithWorkers sets the size of the worker pool. Values below 1 are rejected
// by NewCipherContext.
func WithWorkers(workers int) ContextOption {
	return func(ctx *CipherContext) {
		ctx.workers = workers
	}
}

func WithLogger(log logrus.FieldLogger) ContextOption {
	return func(ctx *CipherContext) {
		if log != nil {
			ctx.log = log
		}
	}
}

func NewCipherContext(schedule *SubkeySchedule, opts ...ContextOption) (*CipherContext, error) {
	cipher, err := NewDESCipherFromSchedule(schedule)
	if err != nil {
		return nil, err
	}

	ctx := &CipherContext{
		cipher:  cipher,
		workers: DefaultWorkers(),
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(ctx)
	}

	if ctx.workers < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWorkers, ctx.workers)
	}

	return ctx, nil
}

// NewCipherContextFromKey derives the schedule for key and builds a context.
func NewCipherContextFromKey(key []uint8, opts ...ContextOption) (*CipherContext, error) {
	schedule, err := DeriveSchedule(key)
	if err != nil {
		return nil, err
	}
	return NewCipherContext(schedule, opts...)
}

func (ctx *CipherContext) GetWorkers() int {
	return ctx.workers
}

func (ctx *CipherContext) Schedule() *SubkeySchedule {
	return ctx.cipher.Schedule()
}

func (ctx *CipherContext) Encrypt(c context.Context, plaintext []uint8) ([]uint8, error) {
	if plaintext == nil {
		return nil, fmt.Errorf("plaintext cannot be nil")
	}

	start := time.Now()
	blocks := Chunk(plaintext)

	if pad := len(blocks)*BlockSize - len(plaintext); pad > 0 {
		ctx.log.WithField("padding_bytes", pad).Debug("zero-extending final block")
	}

	processed, err := Process(c, ctx.cipher, blocks, Encrypt, ctx.workers)
	if err != nil {
		return nil, fmt.Errorf("encryption failed: %w", err)
	}

	ctx.log.WithFields(logrus.Fields{
		"blocks":  len(blocks),
		"workers": ctx.workers,
		"elapsed": time.Since(start),
	}).Debug("encrypted stream")

	return Unchunk(processed), nil
}

// Decrypt deciphers a block sequence. A tail shorter than one block is
// dropped with a warning and the plaintext of the full blocks is returned.
func (ctx *CipherContext) Decrypt(c context.Context, ciphertext []uint8) ([]uint8, error) {
	if ciphertext == nil {
		return nil, fmt.Errorf("ciphertext cannot be nil")
	}

	start := time.Now()
	blocks, dropped := ParseBlocks(ciphertext)
	if dropped > 0 {
		ctx.log.WithFields(logrus.Fields{
			"length":        len(ciphertext),
			"dropped_bytes": dropped,
		}).Warn("ciphertext is not a whole number of blocks, trailing bytes dropped")
	}

	processed, err := Process(c, ctx.cipher, blocks, Decrypt, ctx.workers)
	if err != nil {
		return nil, fmt.Errorf("decryption failed: %w", err)
	}

	ctx.log.WithFields(logrus.Fields{
		"blocks":  len(blocks),
		"workers": ctx.workers,
		"elapsed": time.Since(start),
	}).Debug("decrypted stream")

	return Unchunk(processed), nil
}

// EncryptReader reads the whole source, encrypts it and writes the result to dst.
func (ctx *CipherContext) EncryptReader(c context.Context, src io.Reader, dst io.Writer) error {
	return ctx.transformReader(c, src, dst, ctx.Encrypt)
}

func (ctx *CipherContext) DecryptReader(c context.Context, src io.Reader, dst io.Writer) error {
	return ctx.transformReader(c, src, dst, ctx.Decrypt)
}

func (ctx *CipherContext) transformReader(
	c context.Context,
	src io.Reader,
	dst io.Writer,
	transform func(context.Context, []uint8) ([]uint8, error),
) error {
	data, err := io.ReadAll(src)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	out, err := transform(c, data)
	if err != nil {
		return err
	}

	if _, err := dst.Write(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (ctx *CipherContext) EncryptFile(c context.Context, inputPath string, outputPath string) error {
	return ctx.transformFile(c, inputPath, outputPath, ctx.Encrypt)
}

func (ctx *CipherContext) DecryptFile(c context.Context, inputPath string, outputPath string) error {
	return ctx.transformFile(c, inputPath, outputPath, ctx.Decrypt)
}

func (ctx *CipherContext) transformFile(
	c context.Context,
	inputPath string,
	outputPath string,
	transform func(context.Context, []uint8) ([]uint8, error),
) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("input file %q does not exist: %w", inputPath, err)
		}
		return fmt.Errorf("failed to read input file: %w", err)
	}

	out, err := transform(c, data)
	if err != nil {
		return err
	}

	err = os.WriteFile(outputPath, out, 0644)
	if err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	ctx.log.WithFields(logrus.Fields{
		"input":  inputPath,
		"output": outputPath,
		"bytes":  len(out),
	}).Info("wrote output file")

	return nil
}

// GenerateKey returns a random 8-byte key. Parity bits are left as drawn.
func GenerateKey() ([]uint8, error) {
	key := make([]uint8, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	return key, nil
}
