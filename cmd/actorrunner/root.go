package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	actorrunner "github.com/goliatone/go-actorrunner"
	"github.com/goliatone/go-actorrunner/internal/config"
	"github.com/goliatone/go-actorrunner/pkg/actor"
	"github.com/goliatone/go-actorrunner/pkg/client"
	"github.com/goliatone/go-actorrunner/pkg/logger"
	"github.com/goliatone/go-actorrunner/pkg/renderers/tui"
	"github.com/goliatone/go-actorrunner/pkg/report"
	"github.com/goliatone/go-actorrunner/pkg/session"
)

// app carries what the subcommands share once flags and config are resolved.
type app struct {
	configPath string

	cfg *config.Config
	log logger.Logger

	// newClient and driver are replaced in tests.
	newClient func(cfg *config.Config, log logger.Logger) (actor.Client, error)
	driver    func(out io.Writer) tui.PromptDriver
}

// NewRootCommand builds the actorrunner command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{})
}

func newRootCommand(a *app) *cobra.Command {
	if a.newClient == nil {
		a.newClient = httpClient
	}
	if a.driver == nil {
		a.driver = tui.NewSurveyDriver
	}

	root := &cobra.Command{
		Use:           "actorrunner",
		Short:         "Fetch an actor's input schema, edit it and run the actor",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (yaml, json or toml)")
	flags.String("base-url", config.DefaultBaseURL, "actor service base URL")
	flags.String("api-key", "", "credential forwarded to the actor service")
	flags.Duration("timeout", config.DefaultTimeout, "HTTP request timeout")
	flags.StringP("output", "o", config.DefaultOutput, "output format: text, json or yaml")
	flags.String("templates-dir", "", "directory whose schema.tpl/result.tpl replace the built-in report templates")
	flags.String("log-level", config.DefaultLogLevel, "log level: debug, info, warn or error")
	flags.Bool("log-json", false, "write logs as JSON")

	root.AddCommand(
		newSchemaCommand(a),
		newRunCommand(a),
		newInteractiveCommand(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	loader := config.NewLoader()
	for key, name := range config.FlagBindings {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}
		if err := loader.Viper().BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	cfg, err := loader.Load(a.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logger.New(&logger.Config{
		Level:      level,
		Output:     cmd.ErrOrStderr(),
		JSON:       cfg.Log.JSON,
		TimeFormat: time.TimeOnly,
	})
	if cfg.File != "" {
		a.log.Debug("config loaded", "file", cfg.File)
	}
	return nil
}

func (a *app) reporter() (*report.Reporter, error) {
	format, err := report.ParseFormat(a.cfg.Output)
	if err != nil {
		return nil, err
	}
	return a.newReporter(format)
}

func (a *app) newReporter(format report.Format) (*report.Reporter, error) {
	if format != report.FormatText || a.cfg.TemplatesDir == "" {
		return report.New(format)
	}
	engine, err := report.NewEngine(report.WithBaseDir(a.cfg.TemplatesDir))
	if err != nil {
		return nil, err
	}
	a.log.Debug("using report templates", "dir", a.cfg.TemplatesDir)
	return report.New(format, report.WithEngine(engine))
}

func (a *app) session(actorID string, options ...session.Option) (*session.Session, error) {
	c, err := a.newClient(a.cfg, a.log)
	if err != nil {
		return nil, err
	}
	options = append([]session.Option{session.WithLogger(a.log)}, options...)
	return actorrunner.NewSession(actorrunner.Actor{ID: actorID}, a.cfg.APIKey, c, options...)
}

func httpClient(cfg *config.Config, log logger.Logger) (actor.Client, error) {
	return actorrunner.NewClient(cfg.BaseURL,
		client.WithTimeout(cfg.Timeout),
		client.WithLogger(log),
		client.WithDebug(cfg.Log.Level == string(logger.DebugLevel)),
	)
}
