package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	arcanum "github.com/arcanum-sdk/client-go"
)

func (c *cli) secretsCommand() *cobra.Command {
	secretsCmd := &cobra.Command{
		Use:     "secrets",
		Aliases: []string{"secret"},
		Short:   "Manage secrets",
	}

	var vaultName, search string
	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List secrets without their values",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := c.newClient()
			if err != nil {
				return err
			}
			var secrets []arcanum.EncryptedSecret
			switch {
			case search != "":
				secrets, err = client.FindSecretsByName(cmd.Context(), search)
			case vaultName != "":
				secrets, err = client.GetSecretsByVault(cmd.Context(), vaultName)
			default:
				secrets, err = client.ListSecrets(cmd.Context())
			}
			if err != nil {
				return err
			}
			if c.jsonOutput {
				return printJSON(c.out, secrets)
			}
			if len(secrets) == 0 {
				fmt.Fprintln(c.errOut, "No secrets found.")
				return nil
			}
			return c.printSecrets(secrets)
		},
	}
	listCmd.Flags().StringVar(&vaultName, "vault", "", "only secrets in this vault")
	listCmd.Flags().StringVar(&search, "search", "", "only secrets whose name contains this text")

	var name, inVault, field string
	getCmd := &cobra.Command{
		Use:   "get [ID]",
		Short: "Show a secret with its values",
		Long: `Show a decrypted secret by id, or by name with --name.

Examples:
  arcanum secrets get 42
  arcanum secrets get --name database --vault Production
  arcanum secrets get 42 --field password`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.newClient()
			if err != nil {
				return err
			}
			var secret *arcanum.DecryptedSecret
			switch {
			case name != "":
				secret, err = client.GetDecryptedSecretByName(cmd.Context(), name, inVault)
			case len(args) == 1:
				secret, err = client.GetSecret(cmd.Context(), args[0])
			default:
				return fmt.Errorf("either an ID or --name is required")
			}
			if err != nil {
				return err
			}
			if secret == nil {
				return fmt.Errorf("secret not found")
			}
			return c.printDecrypted(secret, field)
		},
	}
	getCmd.Flags().StringVar(&name, "name", "", "look the secret up by name")
	getCmd.Flags().StringVar(&inVault, "vault", "", "with --name, restrict the lookup to this vault")
	getCmd.Flags().StringVar(&field, "field", "", "print only this field's value")

	fieldCmd := c.payloadCommand("field ID FIELD_SLUG", "Fetch a single field of a secret", 2,
		func(cmd *cobra.Command, client *arcanum.Client, args []string) (arcanum.Payload, string, error) {
			p, err := client.GetSecretField(cmd.Context(), args[0], args[1])
			return p, "Field is empty", err
		})

	var createVault, createDescription string
	var createFields []string
	createCmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a secret",
		Long: `Create a secret in a vault. Fields are given as slug=value.

Example:
  arcanum secrets create database --vault Production --field username=admin --field password=s3cret`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := parseFields(createFields)
			if err != nil {
				return err
			}
			client, err := c.newClient()
			if err != nil {
				return err
			}
			p, err := client.CreateSecret(cmd.Context(), arcanum.SecretInput{
				Name:        args[0],
				Description: createDescription,
				Vault:       createVault,
				Fields:      fields,
			})
			if err != nil {
				return err
			}
			return c.printPayload(p, "Created secret "+args[0])
		},
	}
	createCmd.Flags().StringVar(&createVault, "vault", "", "vault to store the secret in")
	createCmd.Flags().StringVarP(&createDescription, "description", "d", "", "secret description")
	createCmd.Flags().StringArrayVarP(&createFields, "field", "f", nil, "field as slug=value (repeatable)")

	var updateName, updateDescription string
	var updateFields []string
	updateCmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := parseFields(updateFields)
			if err != nil {
				return err
			}
			client, err := c.newClient()
			if err != nil {
				return err
			}
			p, err := client.UpdateSecret(cmd.Context(), args[0], arcanum.SecretInput{
				Name:        updateName,
				Description: updateDescription,
				Fields:      fields,
			})
			if err != nil {
				return err
			}
			return c.printPayload(p, "Updated secret "+args[0])
		},
	}
	updateCmd.Flags().StringVar(&updateName, "name", "", "new name")
	updateCmd.Flags().StringVarP(&updateDescription, "description", "d", "", "new description")
	updateCmd.Flags().StringArrayVarP(&updateFields, "field", "f", nil, "field as slug=value (repeatable)")

	deleteCmd := c.payloadCommand("delete ID", "Delete a secret", 1,
		func(cmd *cobra.Command, client *arcanum.Client, args []string) (arcanum.Payload, string, error) {
			p, err := client.DeleteSecret(cmd.Context(), args[0])
			return p, "Deleted secret " + args[0], err
		})

	grantCmd := c.payloadCommand("grant ID NETID ROLE", "Grant viewer, editor or admin on a secret", 3,
		func(cmd *cobra.Command, client *arcanum.Client, args []string) (arcanum.Payload, string, error) {
			p, err := client.GrantSecretAccess(cmd.Context(), args[0], args[1], arcanum.Role(args[2]))
			return p, fmt.Sprintf("Granted %s %s on secret %s", args[1], strings.ToLower(args[2]), args[0]), err
		})

	revokeCmd := c.payloadCommand("revoke ID NETID", "Remove a user's access to a secret", 2,
		func(cmd *cobra.Command, client *arcanum.Client, args []string) (arcanum.Payload, string, error) {
			p, err := client.RevokeSecretAccess(cmd.Context(), args[0], args[1])
			return p, fmt.Sprintf("Revoked %s's access to secret %s", args[1], args[0]), err
		})

	authoritiesCmd := c.payloadCommand("authorities ID", "Show who has access to a secret", 1,
		func(cmd *cobra.Command, client *arcanum.Client, args []string) (arcanum.Payload, string, error) {
			p, err := client.GetSecretAuthorities(cmd.Context(), args[0])
			return p, "No authorities", err
		})

	secretsCmd.AddCommand(listCmd, getCmd, fieldCmd, createCmd, updateCmd, deleteCmd,
		grantCmd, revokeCmd, authoritiesCmd)
	return secretsCmd
}

// parseFields turns slug=value pairs into secret fields named after their slug.
func parseFields(pairs []string) ([]arcanum.SecretField, error) {
	fields := make([]arcanum.SecretField, 0, len(pairs))
	for _, pair := range pairs {
		slug, value, ok := strings.Cut(pair, "=")
		if !ok || slug == "" {
			return nil, fmt.Errorf("invalid field %q: expected slug=value", pair)
		}
		fields = append(fields, arcanum.SecretField{Name: slug, Slug: slug, Value: value})
	}
	return fields, nil
}

func (c *cli) printSecrets(secrets []arcanum.EncryptedSecret) error {
	tw := newTable(c.out, "ID", "NAME", "VAULT", "OWNER", "FIELDS")
	for _, s := range secrets {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			strconv.FormatInt(s.ID, 10), s.Name, s.Vault.Name, s.Owner.NetID, strings.Join(s.Fields, ", "))
	}
	return tw.Flush()
}

func (c *cli) printDecrypted(s *arcanum.DecryptedSecret, field string) error {
	if field != "" {
		value, ok := s.FieldValue(field)
		if !ok {
			return fmt.Errorf("secret %s has no field %q", s.Slug, field)
		}
		if c.jsonOutput {
			return printJSON(c.out, map[string]string{field: value})
		}
		fmt.Fprintln(c.out, value)
		return nil
	}
	if c.jsonOutput {
		return printJSON(c.out, s)
	}
	PrintKeyValue(c.out, "Name", s.Name)
	PrintKeyValue(c.out, "Slug", s.Slug)
	PrintKeyValue(c.out, "Vault", s.Vault)
	if s.Description != "" {
		PrintKeyValue(c.out, "Description", s.Description)
	}
	tw := newTable(c.out, "FIELD", "SLUG", "VALUE")
	for _, f := range s.Fields {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", f.Name, f.Slug, f.Value)
	}
	return tw.Flush()
}
