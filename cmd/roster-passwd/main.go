// Command roster-passwd reads a passphrase from standard input and prints
// the bcrypt hash to put in ROSTER_PASSPHRASE_HASH.
package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mmynk/roster/internal/auth"
	"github.com/mmynk/roster/pkg/logging"
)

func main() {
	logging.Setup()

	fmt.Fprint(os.Stderr, "Passphrase: ")
	in := bufio.NewScanner(os.Stdin)
	if !in.Scan() {
		slog.Error("No passphrase given", "error", in.Err())
		os.Exit(1)
	}
	passphrase := strings.TrimSuffix(in.Text(), "\r")

	hash, err := auth.HashPassphrase(passphrase)
	if err != nil {
		slog.Error("Failed to hash passphrase", "error", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
