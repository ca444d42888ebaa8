package cli

import (
	"os"

	"github.com/spf13/cobra"
)

func newUsersCmd(client *Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Inspect user accounts",
	}

	cmd.AddCommand(newUsersListCmd(client))
	return cmd
}

func newUsersListCmd(client *Client) *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users (all users requires ADMIN; --role requires PI)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				out listEnvelope[userView]
				err error
			)
			if role != "" {
				out, err = client.ListUsersByRole(role)
			} else {
				out, err = client.ListUsers()
			}
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, out)
			}
			rows := make([][]string, 0, len(out.Items))
			for _, u := range out.Items {
				rows = append(rows, []string{u.ID, u.Username, u.FullName, u.Role})
			}
			return printTable(os.Stdout, []string{"ID", "USERNAME", "FULL NAME", "ROLE"}, rows)
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "Only list users holding this role")

	return cmd
}
