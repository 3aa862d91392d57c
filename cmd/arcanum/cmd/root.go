// Package cmd provides the commands of the arcanum CLI.
package cmd

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arcanum-sdk/client-go/config"
)

// cli holds the state shared by every command of one invocation.
type cli struct {
	v          *viper.Viper
	envFile    string
	jsonOutput bool
	verbose    bool

	out    io.Writer
	errOut io.Writer
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	c := &cli{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "arcanum",
		Short: "Command-line client for the Arcanum secrets API",
		Long: `arcanum talks to an Arcanum server using an API key and secret.

Credentials are read from the environment or a .env file:
  ARCANUM_API_KEY        API key
  ARCANUM_API_SECRET     API secret (prompted for when missing)
  ARCANUM_API_BASE_URL   server base URL
  ARCANUM_TIMEOUT        request timeout, e.g. 15s

Examples:
  arcanum vaults list
  arcanum secrets get --name database --vault Production
  arcanum projects grant billing alice viewer`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			c.out = cmd.OutOrStdout()
			c.errOut = cmd.ErrOrStderr()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&c.jsonOutput, "json", false, "output in JSON format")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "log every request to stderr")
	flags.StringVar(&c.envFile, "env-file", "", "env file to load (default .env when present)")
	flags.String("base-url", "", "API base URL (overrides "+config.EnvBaseURL+")")
	flags.String("api-key", "", "API key (overrides "+config.EnvAPIKey+")")

	_ = c.v.BindPFlag(config.EnvBaseURL, flags.Lookup("base-url"))
	_ = c.v.BindPFlag(config.EnvAPIKey, flags.Lookup("api-key"))

	rootCmd.AddCommand(
		c.vaultsCommand(),
		c.projectsCommand(),
		c.secretsCommand(),
		c.tokensCommand(),
		c.usersCommand(),
	)
	return rootCmd
}

// Execute runs the CLI with the process arguments.
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		reportError(os.Stderr, err)
		return err
	}
	return nil
}
