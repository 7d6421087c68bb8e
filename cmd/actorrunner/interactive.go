package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-actorrunner/pkg/renderers/tui"
	"github.com/goliatone/go-actorrunner/pkg/report"
	"github.com/goliatone/go-actorrunner/pkg/session"
)

func newInteractiveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "interactive [actor-id]",
		Aliases: []string{"i"},
		Short:   "Edit an actor's input in the terminal and run it",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			driver := a.driver(cmd.OutOrStdout())

			if a.cfg.APIKey == "" {
				key, err := driver.Password(ctx, tui.InputConfig{
					Message: "API key",
					Help:    "Forwarded to the actor service; leave empty if it needs none",
				})
				if err != nil {
					return err
				}
				a.cfg.APIKey = strings.TrimSpace(key)
			}

			reporter, err := a.newReporter(report.FormatText)
			if err != nil {
				return err
			}
			options := []tui.Option{
				tui.WithPromptDriver(driver),
				tui.WithReporter(reporter),
				tui.WithLogger(a.log),
			}
			if len(a.cfg.URLSuggestions) > 0 {
				options = append(options, tui.WithURLSuggestions(a.cfg.URLSuggestions))
			}
			renderer, err := tui.New(options...)
			if err != nil {
				return err
			}

			var actorID string
			if len(args) > 0 {
				actorID = args[0]
			}
			for {
				if actorID == "" {
					actorID, err = driver.Input(ctx, tui.InputConfig{Message: "Actor ID (empty to quit)"})
					if err != nil {
						return err
					}
					if actorID = strings.TrimSpace(actorID); actorID == "" {
						return nil
					}
				}

				s, err := a.session(actorID)
				if err != nil {
					return err
				}
				runErr := renderer.Run(ctx, s)
				_ = s.Close()

				// A failed schema fetch was already printed; offer another actor.
				var sessErr *session.Error
				if runErr != nil && !errors.As(runErr, &sessErr) {
					return runErr
				}
				actorID = ""
			}
		},
	}
}
