package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	arcanum "github.com/arcanum-sdk/client-go"
)

func (c *cli) usersCommand() *cobra.Command {
	usersCmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Inspect users and manage authorities",
	}

	meCmd := &cobra.Command{
		Use:   "me",
		Short: "Show the user the credentials belong to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := c.newClient()
			if err != nil {
				return err
			}
			user, err := client.GetSelfUserInfo(cmd.Context())
			if err != nil {
				return err
			}
			return c.printUsers([]arcanum.User{*user})
		},
	}

	var admin bool
	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List users you can share with",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := c.newClient()
			if err != nil {
				return err
			}
			var users []arcanum.User
			if admin {
				users, err = client.ListUsersForAdmin(cmd.Context())
			} else {
				users, err = client.ListUsersForSharing(cmd.Context())
			}
			if err != nil {
				return err
			}
			return c.printUsers(users)
		},
	}
	listCmd.Flags().BoolVar(&admin, "admin", false, "list every user (administrators only)")

	grantCmd := c.payloadCommand("grant-authority NETID AUTHORITY", "Add an authority to a user", 2,
		func(cmd *cobra.Command, client *arcanum.Client, args []string) (arcanum.Payload, string, error) {
			p, err := client.GrantUserAuthority(cmd.Context(), args[0], arcanum.AuthorityInput{Authority: args[1]})
			return p, fmt.Sprintf("Granted %s to %s", args[1], args[0]), err
		})

	revokeCmd := c.payloadCommand("revoke-authority NETID AUTHORITY", "Remove an authority from a user", 2,
		func(cmd *cobra.Command, client *arcanum.Client, args []string) (arcanum.Payload, string, error) {
			p, err := client.RevokeUserAuthority(cmd.Context(), args[0], arcanum.AuthorityInput{Authority: args[1]})
			return p, fmt.Sprintf("Revoked %s from %s", args[1], args[0]), err
		})

	usersCmd.AddCommand(meCmd, listCmd, grantCmd, revokeCmd)
	return usersCmd
}

func (c *cli) printUsers(users []arcanum.User) error {
	if c.jsonOutput {
		return printJSON(c.out, users)
	}
	if len(users) == 0 {
		fmt.Fprintln(c.errOut, "No users found.")
		return nil
	}
	tw := newTable(c.out, "ID", "NETID", "NAME", "AUTHORITIES")
	for _, u := range users {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", u.ID, u.NetID, u.Name, strings.Join(u.Authorities, ", "))
	}
	return tw.Flush()
}
