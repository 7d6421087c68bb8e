package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	actorrunner "github.com/goliatone/go-actorrunner"
	"github.com/goliatone/go-actorrunner/pkg/value"
)

func newRunCommand(a *app) *cobra.Command {
	var (
		sets      []string
		inputFile string
	)

	cmd := &cobra.Command{
		Use:   "run <actor-id>",
		Short: "Run an actor with its schema defaults and optional overrides",
		Long: `Run an actor with its schema defaults and optional overrides.

Values from --input-file are applied first, then every --set in order. Each
value is typed the same way as in the interactive form: JSON objects and
arrays, true/false and numbers are recognised, everything else stays text.`,
		Example: `  actorrunner run web-scraper --set startUrl=https://example.com --set maxPages=5
  actorrunner run web-scraper --input-file input.yaml --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reporter, err := a.reporter()
			if err != nil {
				return err
			}

			var edits []actorrunner.Edit
			if inputFile != "" {
				fileEdits, err := editsFromFile(inputFile)
				if err != nil {
					return err
				}
				edits = append(edits, fileEdits...)
			}
			for _, raw := range sets {
				edit, err := actorrunner.ParseEdit(raw)
				if err != nil {
					return err
				}
				edits = append(edits, edit)
			}

			s, err := a.session(args[0])
			if err != nil {
				return err
			}
			defer s.Close()

			snap, runErr := actorrunner.RunOnce(cmd.Context(), s, edits)
			if err := reporter.Result(cmd.OutOrStdout(), snap); err != nil {
				return err
			}
			return runErr
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "override a field as key=value (repeatable)")
	cmd.Flags().StringVarP(&inputFile, "input-file", "f", "", "YAML or JSON file with input values")
	return cmd
}

func editsFromFile(path string) ([]actorrunner.Edit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input file: %w", err)
	}

	var input value.Value
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		input, err = value.Parse(data)
	default:
		err = yaml.Unmarshal(data, &input)
	}
	if err != nil {
		return nil, fmt.Errorf("parse input file %s: %w", path, err)
	}
	return actorrunner.EditsFromValue(input)
}
