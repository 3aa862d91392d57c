package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	arcanum "github.com/arcanum-sdk/client-go"
)

func (c *cli) projectsCommand() *cobra.Command {
	projectsCmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project"},
		Short:   "Manage projects",
	}

	var search, owner string
	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List projects",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := c.newClient()
			if err != nil {
				return err
			}
			var projects []arcanum.Project
			switch {
			case search != "":
				projects, err = client.FindProjectsByName(cmd.Context(), search)
			case owner != "":
				projects, err = client.GetProjectsByOwner(cmd.Context(), owner)
			default:
				projects, err = client.ListProjects(cmd.Context())
			}
			if err != nil {
				return err
			}
			return c.printProjects(projects)
		},
	}
	listCmd.Flags().StringVar(&search, "search", "", "only projects whose name contains this text")
	listCmd.Flags().StringVar(&owner, "owner", "", "only projects owned by this NetID")

	var byName bool
	getCmd := &cobra.Command{
		Use:   "get SLUG",
		Short: "Show a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.newClient()
			if err != nil {
				return err
			}
			var project *arcanum.Project
			if byName {
				project, err = client.GetProjectByName(cmd.Context(), args[0])
			} else {
				project, err = client.GetProject(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}
			if project == nil {
				return fmt.Errorf("project %q not found", args[0])
			}
			return c.printProject(project)
		},
	}
	getCmd.Flags().BoolVar(&byName, "by-name", false, "treat the argument as a project name")

	var description string
	createCmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.newClient()
			if err != nil {
				return err
			}
			project, err := client.CreateProject(cmd.Context(), arcanum.ProjectInput{Name: args[0], Description: description})
			if err != nil {
				return err
			}
			if c.jsonOutput {
				return printJSON(c.out, project)
			}
			Success(c.out, "Created project %s (%s)", project.Name, project.Slug)
			return nil
		},
	}
	createCmd.Flags().StringVarP(&description, "description", "d", "", "project description")

	var newName, newDescription string
	editCmd := &cobra.Command{
		Use:   "edit SLUG",
		Short: "Rename or describe a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.newClient()
			if err != nil {
				return err
			}
			project, err := client.EditProject(cmd.Context(), args[0], arcanum.ProjectInput{Name: newName, Description: newDescription})
			if err != nil {
				return err
			}
			return c.printProject(project)
		},
	}
	editCmd.Flags().StringVar(&newName, "name", "", "new project name")
	editCmd.Flags().StringVarP(&newDescription, "description", "d", "", "new project description")

	deleteCmd := c.payloadCommand("delete SLUG", "Delete a project", 1,
		func(cmd *cobra.Command, client *arcanum.Client, args []string) (arcanum.Payload, string, error) {
			p, err := client.DeleteProject(cmd.Context(), args[0])
			return p, "Deleted project " + args[0], err
		})

	addSecretCmd := c.payloadCommand("add-secret SLUG SECRET_ID", "Attach a secret to a project", 2,
		func(cmd *cobra.Command, client *arcanum.Client, args []string) (arcanum.Payload, string, error) {
			p, err := client.AddProjectSecret(cmd.Context(), args[0], args[1])
			return p, fmt.Sprintf("Added secret %s to %s", args[1], args[0]), err
		})

	removeSecretCmd := c.payloadCommand("remove-secret SLUG SECRET_ID", "Detach a secret from a project", 2,
		func(cmd *cobra.Command, client *arcanum.Client, args []string) (arcanum.Payload, string, error) {
			p, err := client.RemoveProjectSecret(cmd.Context(), args[0], args[1])
			return p, fmt.Sprintf("Removed secret %s from %s", args[1], args[0]), err
		})

	grantCmd := c.payloadCommand("grant SLUG NETID ROLE", "Grant viewer, editor or admin on a project", 3,
		func(cmd *cobra.Command, client *arcanum.Client, args []string) (arcanum.Payload, string, error) {
			p, err := client.GrantProjectAccess(cmd.Context(), args[0], args[1], arcanum.Role(args[2]))
			return p, fmt.Sprintf("Granted %s %s on %s", args[1], strings.ToLower(args[2]), args[0]), err
		})

	revokeCmd := c.payloadCommand("revoke SLUG NETID", "Remove a user's access to a project", 2,
		func(cmd *cobra.Command, client *arcanum.Client, args []string) (arcanum.Payload, string, error) {
			p, err := client.RevokeProjectAccess(cmd.Context(), args[0], args[1])
			return p, fmt.Sprintf("Revoked %s's access to %s", args[1], args[0]), err
		})

	authoritiesCmd := c.payloadCommand("authorities SLUG", "Show who has access to a project", 1,
		func(cmd *cobra.Command, client *arcanum.Client, args []string) (arcanum.Payload, string, error) {
			p, err := client.GetProjectAuthorities(cmd.Context(), args[0])
			return p, "No authorities", err
		})

	projectsCmd.AddCommand(listCmd, getCmd, createCmd, editCmd, deleteCmd,
		addSecretCmd, removeSecretCmd, grantCmd, revokeCmd, authoritiesCmd)
	return projectsCmd
}

func (c *cli) printProjects(projects []arcanum.Project) error {
	if c.jsonOutput {
		return printJSON(c.out, projects)
	}
	if projects == nil {
		fmt.Fprintln(c.errOut, "No projects available.")
		return nil
	}
	if len(projects) == 0 {
		fmt.Fprintln(c.errOut, "No matching projects.")
		return nil
	}
	tw := newTable(c.out, "ID", "SLUG", "NAME", "OWNER", "SECRETS")
	for _, p := range projects {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\n", p.ID, p.Slug, p.Name, p.Owner.NetID, len(p.Secrets))
	}
	return tw.Flush()
}

func (c *cli) printProject(p *arcanum.Project) error {
	if c.jsonOutput {
		return printJSON(c.out, p)
	}
	PrintKeyValue(c.out, "Name", p.Name)
	PrintKeyValue(c.out, "Slug", p.Slug)
	PrintKeyValue(c.out, "Description", p.Description)
	PrintKeyValue(c.out, "Owner", fmt.Sprintf("%s (%s)", p.Owner.Name, p.Owner.NetID))
	if len(p.Secrets) == 0 {
		fmt.Fprintln(c.out, Dim("No secrets."))
		return nil
	}
	return c.printSecrets(p.Secrets)
}

// payloadCommand builds a command whose operation returns an untyped payload.
func (c *cli) payloadCommand(use, short string, nargs int,
	run func(*cobra.Command, *arcanum.Client, []string) (arcanum.Payload, string, error),
) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.newClient()
			if err != nil {
				return err
			}
			p, done, err := run(cmd, client, args)
			if err != nil {
				return err
			}
			return c.printPayload(p, done)
		},
	}
}
