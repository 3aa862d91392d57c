package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"

	arcanum "github.com/arcanum-sdk/client-go"
	"github.com/arcanum-sdk/client-go/config"
)

// Test seams for the terminal.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// newClient loads configuration, prompts for a missing API secret when
// stdin is a terminal, and builds the client.
func (c *cli) newClient() (*arcanum.Client, error) {
	opts := []config.LoadOption{config.WithViper(c.v)}
	if c.envFile != "" {
		opts = append(opts, config.WithEnvFile(c.envFile))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return nil, err
	}

	if cfg.APISecret == "" && cfg.APIKey != "" && isTerminal(int(os.Stdin.Fd())) {
		secret, err := promptSecret(c.errOut)
		if err != nil {
			return nil, err
		}
		cfg.APISecret = secret
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := slog.New(slog.DiscardHandler)
	if c.verbose {
		logger = slog.New(slog.NewTextHandler(c.errOut, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	return arcanum.NewFromConfig(*cfg, arcanum.WithLogger(logger), arcanum.WithUserAgent("arcanum-cli"))
}

func promptSecret(w io.Writer) (string, error) {
	fmt.Fprint(w, "API secret: ")
	b, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("failed to read API secret: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}
