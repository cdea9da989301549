// Command dynup-init interactively creates a dynup config file.
//
// The personal access token is read without terminal echo and the file is
// written with 0600 permissions. An existing file is never overwritten.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/akarpz/dynup"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "dynup-init: %s\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("incorrect number of arguments: expected 1, received %d (usage: dynup-init <config-path>)", len(args))
	}
	path := args[0]

	stdin := bufio.NewReader(os.Stdin)

	fmt.Print("Domain to update: ")
	domain, err := readLine(stdin)
	if err != nil {
		return err
	}

	fmt.Printf("Record TTL in seconds [%d]: ", dynup.DefaultTTL)
	ttlText, err := readLine(stdin)
	if err != nil {
		return err
	}
	ttl := dynup.DefaultTTL
	if ttlText != "" {
		if ttl, err = strconv.Atoi(ttlText); err != nil {
			return fmt.Errorf("invalid TTL %q: %w", ttlText, err)
		}
	}

	fmt.Print("Personal access token: \n")
	bytekey, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return fmt.Errorf("error reading from stdin: %w", err)
	}

	cfg := dynup.Config{
		PAT:    string(bytekey),
		Domain: domain,
		TTL:    ttl,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("unable to create %q: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("unable to write %q: %w", path, err)
	}
	fmt.Printf("config written to %q\n", path)
	return nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("error reading from stdin: %w", err)
	}
	return strings.TrimSpace(line), nil
}
