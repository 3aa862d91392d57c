package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	arcanum "github.com/arcanum-sdk/client-go"
)

func (c *cli) tokensCommand() *cobra.Command {
	tokensCmd := &cobra.Command{
		Use:     "tokens",
		Aliases: []string{"token"},
		Short:   "Manage API tokens",
	}

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List your tokens",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := c.newClient()
			if err != nil {
				return err
			}
			tokens, err := client.ListTokens(cmd.Context())
			if err != nil {
				return err
			}
			if c.jsonOutput {
				return printJSON(c.out, tokens)
			}
			if len(tokens) == 0 {
				fmt.Fprintln(c.errOut, "No tokens found.")
				return nil
			}
			tw := newTable(c.out, "PRINCIPAL", "USER TOKEN", "EXPIRES", "AUTHORITIES")
			for _, t := range tokens {
				fmt.Fprintf(tw, "%s\t%t\t%s\t%s\n", t.Principal, t.UserToken, expiryLabel(t.ExpiresAt(), t.IsExpired()), strings.Join(t.Authorities, ", "))
			}
			return tw.Flush()
		},
	}

	meCmd := &cobra.Command{
		Use:   "me",
		Short: "Describe the token in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := c.newClient()
			if err != nil {
				return err
			}
			info, err := client.GetTokenInfo(cmd.Context())
			if err != nil {
				return err
			}
			if c.jsonOutput {
				return printJSON(c.out, info)
			}
			PrintKeyValue(c.out, "Principal", info.Principal)
			PrintKeyValue(c.out, "Owner", fmt.Sprintf("%s (%s)", info.Owner.Name, info.Owner.NetID))
			PrintKeyValue(c.out, "User token", fmt.Sprint(info.UserToken))
			PrintKeyValue(c.out, "Expires", expiryLabel(info.ExpiresAt(), info.IsExpired()))
			PrintKeyValue(c.out, "Authorities", strings.Join(info.Authorities, ", "))
			return nil
		},
	}

	var authorities []string
	var ttl time.Duration
	createCmd := &cobra.Command{
		Use:   "create PRINCIPAL",
		Short: "Create a token; its secret is shown only once",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.newClient()
			if err != nil {
				return err
			}
			input := arcanum.TokenInput{Principal: args[0], Authorities: authorities}
			if ttl > 0 {
				input.Expiry = time.Now().Add(ttl).Unix()
			}
			token, err := client.CreateToken(cmd.Context(), input)
			if err != nil {
				return err
			}
			if c.jsonOutput {
				return printJSON(c.out, token)
			}
			Success(c.out, "Created token for %s", token.Principal)
			if token.APIKey != nil {
				PrintKeyValue(c.out, "API key", *token.APIKey)
			}
			if token.APISecret != nil {
				PrintKeyValue(c.out, "API secret", *token.APISecret)
				Warning(c.out, "Store the secret now; it cannot be shown again.")
			}
			return nil
		},
	}
	createCmd.Flags().StringSliceVar(&authorities, "authority", nil, "authority to grant the token (repeatable)")
	createCmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime, e.g. 720h")

	revokeCmd := c.payloadCommand("revoke PRINCIPAL", "Revoke a token", 1,
		func(cmd *cobra.Command, client *arcanum.Client, args []string) (arcanum.Payload, string, error) {
			p, err := client.RevokeToken(cmd.Context(), arcanum.TokenInput{Principal: args[0]})
			return p, "Revoked token " + args[0], err
		})

	tokensCmd.AddCommand(listCmd, meCmd, createCmd, revokeCmd)
	return tokensCmd
}

func expiryLabel(at time.Time, expired bool) string {
	label := at.UTC().Format(time.RFC3339)
	if expired {
		return label + " " + Dim("(expired)")
	}
	return label
}
