package main

import (
	"github.com/dmitrijs2005/projectfiles/internal/client/api"
	"github.com/dmitrijs2005/projectfiles/internal/client/config"
	"github.com/spf13/cobra"
)

// cliState is filled in by the root PersistentPreRunE and shared by all
// subcommands.
type cliState struct {
	cfg    *config.Config
	client *api.Client
}

func newRootCmd() *cobra.Command {
	st := &cliState{}

	cmd := &cobra.Command{
		Use:           "projectfiles",
		Short:         "Upload source folders to projectfiles and read them back",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return st.init(cmd)
		},
	}

	config.RegisterFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		newProjectsCmd(st),
		newFilesCmd(st),
	)

	return cmd
}

func (st *cliState) init(cmd *cobra.Command) error {
	cfg, err := config.Load(config.ConfigPath(cmd.Flags()))
	if err != nil {
		return err
	}
	if err := config.ApplyFlags(cfg, cmd.Flags()); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	st.cfg = cfg
	st.client = api.NewClient(cfg.ServerURL, cfg.Token, cfg.RequestTimeout, cfg.RetryAttempts)
	return nil
}
