package root

import (
	"cmp"
	"fmt"

	"github.com/spf13/cobra"
)

func newSessionsCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sessions",
		Aliases: []string{"session"},
		Short:   "Manage saved sessions",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved sessions",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := root.newClient(loadConfig())
			if err != nil {
				return err
			}
			sessions, err := client.ListSessions(cmd.Context())
			if err != nil {
				return printFailure(cmd.ErrOrStderr(), err)
			}
			out := cmd.OutOrStdout()
			if len(sessions) == 0 {
				faintColor.Fprintln(out, "No saved sessions")
				return nil
			}
			for _, s := range sessions {
				fmt.Fprintln(out, s)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "save <name>",
		Short: "Save the current session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := root.newClient(loadConfig())
			if err != nil {
				return err
			}
			msg, err := client.SaveSession(cmd.Context(), args[0])
			if err != nil {
				return printFailure(cmd.ErrOrStderr(), err)
			}
			printSuccess(cmd.OutOrStdout(), "%s", cmp.Or(msg, "Session saved"))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "load <name>",
		Short: "Load a saved session into the backend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := root.newClient(loadConfig())
			if err != nil {
				return err
			}
			msg, err := client.LoadSession(cmd.Context(), args[0])
			if err != nil {
				return printFailure(cmd.ErrOrStderr(), err)
			}
			printSuccess(cmd.OutOrStdout(), "%s", cmp.Or(msg, "Session loaded"))
			return nil
		},
	})

	var yes bool
	deleteCmd := &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"rm"},
		Short:   "Delete a saved session",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete session %q?", name)) {
				faintColor.Fprintln(cmd.OutOrStdout(), "Cancelled")
				return nil
			}
			client, err := root.newClient(loadConfig())
			if err != nil {
				return err
			}
			msg, err := client.DeleteSession(cmd.Context(), name)
			if err != nil {
				return printFailure(cmd.ErrOrStderr(), err)
			}
			printSuccess(cmd.OutOrStdout(), "%s", cmp.Or(msg, "Session deleted"))
			return nil
		},
	}
	deleteCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	cmd.AddCommand(deleteCmd)

	return cmd
}
