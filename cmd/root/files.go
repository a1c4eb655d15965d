package root

import (
	"cmp"
	"fmt"
	"io"
	"os"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"

	"github.com/docker/gemini-console/pkg/api"
	"github.com/docker/gemini-console/pkg/fsx"
)

func newFilesCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "files",
		Aliases: []string{"file"},
		Short:   "Manage files uploaded to the session",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List uploaded files",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := root.newClient(loadConfig())
			if err != nil {
				return err
			}
			resp, err := client.ListFiles(cmd.Context())
			if err != nil {
				return printFailure(cmd.ErrOrStderr(), err)
			}
			printFiles(cmd.OutOrStdout(), resp)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "upload <path>...",
		Short: "Upload files, directories or globs",
		Long: `Upload local files. Directories are walked, globs (including **) are expanded
and files ignored by git are skipped. Text files are sent by content, everything
else by path.`,
		Example: `  gemini-console files upload README.md
  gemini-console files upload ./src "docs/**/*.md"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := collectUploads(args)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				faintColor.Fprintln(cmd.OutOrStdout(), "Nothing to upload")
				return nil
			}

			client, err := root.newClient(loadConfig())
			if err != nil {
				return err
			}
			count, err := uploadFiles(cmd, client, paths)
			if err != nil {
				return printFailure(cmd.ErrOrStderr(), err)
			}
			printSuccess(cmd.OutOrStdout(), "Uploaded %d file(s)", count)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "upload-pdf <url> [display-name]",
		Short: "Have the backend fetch and upload a PDF",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var displayName string
			if len(args) == 2 {
				displayName = args[1]
			}
			client, err := root.newClient(loadConfig())
			if err != nil {
				return err
			}
			msg, err := client.UploadPDFFromURL(cmd.Context(), args[0], displayName)
			if err != nil {
				return printFailure(cmd.ErrOrStderr(), err)
			}
			printSuccess(cmd.OutOrStdout(), "%s", cmp.Or(msg, "PDF uploaded"))
			return nil
		},
	})

	var deleteYes bool
	deleteCmd := &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"rm"},
		Short:   "Delete one uploaded file",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if !deleteYes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete %q?", name)) {
				faintColor.Fprintln(cmd.OutOrStdout(), "Cancelled")
				return nil
			}
			client, err := root.newClient(loadConfig())
			if err != nil {
				return err
			}
			msg, err := client.DeleteFile(cmd.Context(), name)
			if err != nil {
				return printFailure(cmd.ErrOrStderr(), err)
			}
			printSuccess(cmd.OutOrStdout(), "%s", cmp.Or(msg, "File deleted"))
			return nil
		},
	}
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Do not ask for confirmation")
	cmd.AddCommand(deleteCmd)

	var clearYes bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every uploaded file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !clearYes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Delete every uploaded file?") {
				faintColor.Fprintln(cmd.OutOrStdout(), "Cancelled")
				return nil
			}
			client, err := root.newClient(loadConfig())
			if err != nil {
				return err
			}
			msg, err := client.ClearFiles(cmd.Context())
			if err != nil {
				return printFailure(cmd.ErrOrStderr(), err)
			}
			printSuccess(cmd.OutOrStdout(), "%s", cmp.Or(msg, "All files cleared"))
			return nil
		},
	}
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "Do not ask for confirmation")
	cmd.AddCommand(clearCmd)

	return cmd
}

// collectUploads expands args, skipping files git ignores in the current
// repository.
func collectUploads(args []string) ([]string, error) {
	var shouldIgnore func(string) bool
	if wd, err := os.Getwd(); err == nil {
		if matcher, err := fsx.NewIgnoreMatcher(wd); err == nil && matcher != nil {
			shouldIgnore = matcher.ShouldIgnore
		}
	}
	return fsx.CollectFiles(args, shouldIgnore)
}

func uploadFiles(cmd *cobra.Command, client *api.Client, paths []string) (int, error) {
	ctx := cmd.Context()
	textPaths, otherPaths := fsx.SplitByContent(paths)

	uploaded := 0
	if len(textPaths) > 0 {
		contents, err := fsx.ReadFiles(ctx, textPaths)
		if err != nil {
			return 0, err
		}
		resp, err := client.UploadFilesEnhanced(ctx, contents)
		if err != nil {
			return 0, err
		}
		uploaded += resp.Count
	}
	if len(otherPaths) > 0 {
		resp, err := client.UploadFiles(ctx, otherPaths)
		if err != nil {
			return uploaded, err
		}
		uploaded += resp.Count
	}
	return uploaded, nil
}

func printFiles(w io.Writer, resp *api.FilesResponse) {
	if len(resp.Files) == 0 {
		faintColor.Fprintln(w, "No files loaded")
	}
	for _, f := range resp.Files {
		fmt.Fprintf(w, "%s\t%s\t%s\n", f.Label(), cmp.Or(f.MimeType, "-"), units.HumanSize(float64(f.SizeBytes)))
	}
	for _, name := range resp.ExpiredFiles {
		errorColor.Fprintf(w, "%s\texpired\n", name)
	}
}
