package cli

import (
	"os"

	"github.com/spf13/cobra"
)

func newProjectsCmd(client *Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Inspect research projects",
	}

	cmd.AddCommand(newProjectsListCmd(client))
	cmd.AddCommand(newProjectsMembersCmd(client))
	return cmd
}

func newProjectsListCmd(client *Client) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List research projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := client.ListProjects()
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, out)
			}
			rows := make([][]string, 0, len(out.Items))
			for _, p := range out.Items {
				pi := ""
				if p.PI != nil {
					pi = p.PI.Username
				}
				rows = append(rows, []string{p.ID, p.Title, p.Status, pi})
			}
			return printTable(os.Stdout, []string{"ID", "TITLE", "STATUS", "PI"}, rows)
		},
	}
}

func newProjectsMembersCmd(client *Client) *cobra.Command {
	return &cobra.Command{
		Use:   "members <project-id>",
		Short: "List members of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			members, err := client.ListMembers(args[0])
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, members)
			}
			rows := make([][]string, 0, len(members))
			for _, u := range members {
				rows = append(rows, []string{u.ID, u.Username, u.FullName, u.Role})
			}
			return printTable(os.Stdout, []string{"ID", "USERNAME", "FULL NAME", "ROLE"}, rows)
		},
	}
}
