package main

import (
	"github.com/spf13/cobra"
)

func newSchemaCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schema <actor-id>",
		Short: "Fetch an actor's input schema and print its fields",
		Long: `Fetch an actor's input schema and print its fields.

With --output json or yaml the example input is printed instead, ready to be
edited and passed back with "run --input-file".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reporter, err := a.reporter()
			if err != nil {
				return err
			}
			s, err := a.session(args[0])
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Start(cmd.Context()); err != nil {
				if reportErr := reporter.Result(cmd.OutOrStdout(), s.Snapshot()); reportErr != nil {
					a.log.Warn("report failed", "error", reportErr)
				}
				return err
			}
			return reporter.Schema(cmd.OutOrStdout(), s.Snapshot())
		},
	}
}
