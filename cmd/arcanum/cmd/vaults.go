package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	arcanum "github.com/arcanum-sdk/client-go"
)

func (c *cli) vaultsCommand() *cobra.Command {
	vaultsCmd := &cobra.Command{
		Use:     "vaults",
		Aliases: []string{"vault"},
		Short:   "Manage vaults",
	}

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List vaults",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := c.newClient()
			if err != nil {
				return err
			}
			vaults, err := client.ListVaults(cmd.Context())
			if err != nil {
				return err
			}
			return c.printVaults(vaults)
		},
	}

	getCmd := &cobra.Command{
		Use:   "get NAME",
		Short: "Show a vault by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.newClient()
			if err != nil {
				return err
			}
			vault, err := client.GetVaultByName(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if vault == nil {
				return fmt.Errorf("vault %q not found", args[0])
			}
			return c.printVaults([]arcanum.Vault{*vault})
		},
	}

	var description string
	createCmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a vault",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.newClient()
			if err != nil {
				return err
			}
			vault, err := client.CreateVault(cmd.Context(), arcanum.VaultInput{Name: args[0], Description: description})
			if err != nil {
				return err
			}
			if c.jsonOutput {
				return printJSON(c.out, vault)
			}
			Success(c.out, "Created vault %s (id %d)", vault.Name, vault.ID)
			return nil
		},
	}
	createCmd.Flags().StringVarP(&description, "description", "d", "", "vault description")

	grantCmd := &cobra.Command{
		Use:   "grant NAME NETID",
		Short: "Give a user access to a vault",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.newClient()
			if err != nil {
				return err
			}
			p, err := client.GrantVaultAccess(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return c.printPayload(p, fmt.Sprintf("Granted %s access to vault %s", args[1], args[0]))
		},
	}

	revokeCmd := &cobra.Command{
		Use:   "revoke NAME NETID",
		Short: "Remove a user's access to a vault",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.newClient()
			if err != nil {
				return err
			}
			p, err := client.RevokeVaultAccess(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return c.printPayload(p, fmt.Sprintf("Revoked %s's access to vault %s", args[1], args[0]))
		},
	}

	vaultsCmd.AddCommand(listCmd, getCmd, createCmd, grantCmd, revokeCmd)
	return vaultsCmd
}

func (c *cli) printVaults(vaults []arcanum.Vault) error {
	if c.jsonOutput {
		return printJSON(c.out, vaults)
	}
	if len(vaults) == 0 {
		fmt.Fprintln(c.errOut, "No vaults found.")
		return nil
	}
	tw := newTable(c.out, "ID", "NAME", "DESCRIPTION")
	for _, v := range vaults {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", v.ID, v.Name, v.Description)
	}
	return tw.Flush()
}
