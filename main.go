package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

/*
Encrypt a file (writes input.txt.enc):
  deslab encrypt -k 0123456789ABCDEF input.txt

Decrypt it back (writes input.txt.dec):
  deslab decrypt -k 0123456789ABCDEF input.txt.enc

Several files under one key derive the subkey schedule once:
  deslab encrypt -k 0123456789ABCDEF -w 8 a.bin b.bin c.bin

Print the round subkeys:
  deslab schedule -k 133457799BBCDFF1

Compare one worker with the configured pool:
  deslab bench --size 16

Every flag can also come from config.yaml in --config or from DESLAB_* variables.
*/

var rootCmd = &cobra.Command{
	Use:   "deslab",
	Short: "DES (ECB) encryption of files with a parallel block pipeline",
	Long: `deslab enciphers byte streams with the classical 64-bit DES block cipher in
Electronic Codebook mode. Input is split into 8-byte blocks, the final block is
zero-extended, and blocks are processed in parallel by a fixed pool of workers.

Zero extension is not reversible: decrypted output keeps the padding bytes.`,
	SilenceUsage: true,
}

func init() {
	bindPersistentFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(encryptCmd)
	rootCmd.AddCommand(decryptCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(benchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
