package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/projectfiles/internal/client/api"
	"github.com/spf13/cobra"
)

func newFilesCmd(st *cliState) *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "files",
		Short: "Upload, list and read project files",
	}
	cmd.PersistentFlags().StringVarP(&projectID, "project", "P", "", "project id")

	list := &cobra.Command{
		Use:   "list",
		Short: "List the files of a project, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := st.client.ListFiles(cmd.Context(), projectID)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no files")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tFILENAME\tCREATED")
			for _, f := range files {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", f.ID, f.Filename, f.CreatedAt.Local().Format("2006-01-02 15:04"))
			}
			return tw.Flush()
		},
	}

	upload := &cobra.Command{
		Use:   "upload <path>...",
		Short: "Upload files or whole folders; build output, dependencies and binaries are skipped",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if projectID == "" {
				return errors.New("--project is required")
			}

			files, skipped, err := api.CollectFiles(args...)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, s := range skipped {
				fmt.Fprintln(out, "skip", s)
			}
			if len(files) == 0 {
				fmt.Fprintln(out, "nothing to upload")
				return nil
			}

			res, err := st.client.Upload(cmd.Context(), projectID, files)
			if err != nil {
				return err
			}
			for _, f := range res.Files {
				fmt.Fprintln(out, "ok  ", f.Filename)
			}
			for _, e := range res.Errors {
				fmt.Fprintf(out, "fail %s: %s\n", e.File, e.Error)
			}
			if len(res.Errors) > 0 {
				return fmt.Errorf("%d of %d files failed", len(res.Errors), len(res.Errors)+len(res.Files))
			}
			return nil
		},
	}

	cat := &cobra.Command{
		Use:   "cat <file-id>",
		Short: "Print a stored file as text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := st.client.ParseFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), f.Content)
			return err
		},
	}

	cmd.AddCommand(list, upload, cat)
	return cmd
}
