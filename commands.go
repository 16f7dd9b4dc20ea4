package main

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ImQQiaoO/DES-Lab/cripta"
	"github.com/ImQQiaoO/DES-Lab/internal/core"
)

var (
	ConfigFlag string
	OutputFlag string
	DumpFlag   bool
	SizeFlag   int
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt [files...]",
	Short: "Encrypts files, writing <file><suffix> next to each one",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFiles(cmd, args, cripta.Encrypt)
	},
}

var decryptCmd = &cobra.Command{
	Use:   "decrypt [files...]",
	Short: "Decrypts files, writing <file without suffix>.dec next to each one",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFiles(cmd, args, cripta.Decrypt)
	},
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Prints the 16 round subkeys derived from the key",
	Args:  cobra.NoArgs,
	RunE:  runSchedule,
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Times encryption with one worker against the configured pool",
	Args:  cobra.NoArgs,
	RunE:  runBench,
}

func init() {
	for _, cmd := range []*cobra.Command{encryptCmd, decryptCmd} {
		cmd.Flags().StringVarP(&OutputFlag, "out", "o", "", "Output path (only with a single input file)")
	}
	scheduleCmd.Flags().BoolVar(&DumpFlag, "dump", false, "Dump the raw schedule values")
	benchCmd.Flags().IntVar(&SizeFlag, "size", 8, "Amount of random data to encrypt, in MiB")
}

func bindPersistentFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&ConfigFlag, "config", "c", "", "Directory containing config.yaml")
	fs.StringP("key", "k", "", "DES key as 16 hex digits")
	fs.IntP("workers", "w", 0, "Number of parallel workers (default: number of CPUs)")
	fs.String("log-level", "", "Minimum log level: debug, info, warn, error")
	fs.String("log-file", "", "Write logs to this file instead of stdout")
}

func setup(cmd *cobra.Command) (*core.Config, *logrus.Logger, error) {
	cfg, err := core.LoadConfig(ConfigFlag, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger, err := core.NewLogger(cfg)
	if err != nil {
		return nil, nil, err
	}

	if logger.IsLevelEnabled(logrus.DebugLevel) {
		redacted := *cfg
		if redacted.Key != "" {
			redacted.Key = "<redacted>"
		}
		logger.Debugf("loaded configuration:\n%s", spew.Sdump(redacted))
	}

	return cfg, logger, nil
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func runFiles(cmd *cobra.Command, inputs []string, dir cripta.Direction) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	if OutputFlag != "" && len(inputs) > 1 {
		return errors.New("--out can only be used with a single input file")
	}

	// Missing inputs are reported before any key material is touched.
	for _, in := range inputs {
		if _, err := os.Stat(in); err != nil {
			return fmt.Errorf("input file %q: %w", in, err)
		}
	}

	key, err := resolveKey(cfg, dir, logger)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	cache := cripta.NewScheduleCache(cfg.Cache.TTL)
	for _, in := range inputs {
		schedule, err := cache.Get(key)
		if err != nil {
			return err
		}

		cc, err := cripta.NewCipherContext(schedule,
			cripta.WithWorkers(cfg.Workers),
			cripta.WithLogger(logger.WithField("direction", dir.String())),
		)
		if err != nil {
			return err
		}

		out := OutputFlag
		if out == "" {
			out = outputPath(in, cfg.OutputSuffix, dir)
		}

		start := time.Now()
		if dir == cripta.Encrypt {
			err = cc.EncryptFile(ctx, in, out)
		} else {
			err = cc.DecryptFile(ctx, in, out)
		}
		if err != nil {
			return fmt.Errorf("%s %s: %w", dir, in, err)
		}

		info, err := os.Stat(in)
		if err != nil {
			return err
		}
		newFileReport(in, out, dir, cfg.Workers, info.Size(), time.Since(start)).print(cmd.OutOrStdout())
	}

	logger.WithField("schedules_derived", cache.Len()).Debug("finished")
	return nil
}

// resolveKey returns the configured key. Encryption without a key generates
// a random one and prints it, since the output would be useless otherwise.
func resolveKey(cfg *core.Config, dir cripta.Direction, logger logrus.FieldLogger) ([]byte, error) {
	if cfg.Key == "" && dir == cripta.Encrypt {
		key, err := cripta.GenerateKey()
		if err != nil {
			return nil, err
		}
		logger.Warnf("no key given, generated key %s", strings.ToUpper(hex.EncodeToString(key)))
		return key, nil
	}
	return cfg.KeyBytes()
}

// outputPath names the result of processing input in direction dir.
func outputPath(input, suffix string, dir cripta.Direction) string {
	if dir == cripta.Encrypt {
		return input + suffix
	}
	return strings.TrimSuffix(input, suffix) + ".dec"
}

func runSchedule(cmd *cobra.Command, _ []string) error {
	cfg, _, err := setup(cmd)
	if err != nil {
		return err
	}

	key, err := cfg.KeyBytes()
	if err != nil {
		return err
	}

	schedule, err := cripta.DeriveSchedule(key)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if DumpFlag {
		fmt.Fprint(w, spew.Sdump(schedule))
		return nil
	}
	for i, k := range schedule {
		fmt.Fprintf(w, "K%02d  %012X  %s\n", i+1, k, cripta.FormatBits(k, 48, 6))
	}
	return nil
}

func runBench(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	if SizeFlag < 1 {
		return fmt.Errorf("--size must be at least 1, got %d", SizeFlag)
	}

	key, err := resolveKey(cfg, cripta.Encrypt, logger)
	if err != nil {
		return err
	}
	schedule, err := cripta.DeriveSchedule(key)
	if err != nil {
		return err
	}

	data := make([]byte, SizeFlag<<20)
	if _, err := rand.Read(data); err != nil {
		return fmt.Errorf("failed to generate input: %w", err)
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	var results []benchResult
	var reference []byte
	for _, workers := range []int{1, cfg.Workers} {
		start := time.Now()
		out, err := cripta.EncryptStream(ctx, data, schedule, workers)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		if reference == nil {
			reference = out
		} else if !bytes.Equal(out, reference) {
			return fmt.Errorf("ciphertext with %d workers differs from single worker output", workers)
		}
		results = append(results, benchResult{workers: workers, elapsed: elapsed})
	}

	printBench(cmd.OutOrStdout(), int64(len(data)), results)
	return nil
}
