// Package cli wires the action registry into cobra commands: a manifest
// listing, a one-shot invoker, and the HTTP host.
package cli

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/assistkit/gh-skill/internal/action"
	"github.com/assistkit/gh-skill/internal/config"
	"github.com/assistkit/gh-skill/internal/credentials"
	"github.com/assistkit/gh-skill/internal/github"
	"github.com/assistkit/gh-skill/internal/ui"
)

// options carries the persistent flags shared by every subcommand.
type options struct {
	configPath string
	verbose    bool

	prompter ui.Prompter
}

// NewRootCmd builds the gh-skill command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{prompter: &ui.DefaultPrompter{}}

	cmd := &cobra.Command{
		Use:          "gh-skill",
		Short:        "GitHub actions for assistant hosts",
		Long:         "gh-skill exposes a curated set of GitHub operations as named actions,\neither invoked directly from the command line or served over HTTP.",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to TOML config file")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		newActionsCmd(opts),
		newInvokeCmd(opts),
		newServeCmd(opts),
	)
	return cmd
}

// load reads configuration and builds the logger. An explicit --config path
// must exist; the default location may be absent.
func (o *options) load() (config.Config, *log.Logger, error) {
	path := o.configPath
	explicit := path != ""
	if !explicit {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path, explicit)
	if err != nil {
		return cfg, nil, err
	}

	level := cfg.Log.Level
	if o.verbose {
		level = "debug"
	}
	return cfg, newLogger(level), nil
}

// newRegistry assembles the full action stack for one configuration.
func newRegistry(cfg config.Config) *action.Registry {
	factory := clientFactory(cfg)
	resolver := credentials.NewResolver(action.LoginLookup(factory),
		credentials.WithHost(cfg.GitHub.Host))
	return action.NewRegistry(action.NewService(resolver, factory))
}

func clientFactory(cfg config.Config) action.ClientFactory {
	return func(token string) (github.Client, error) {
		var opts []github.Option
		if cfg.GitHub.APIBaseURL != "" {
			opts = append(opts, github.WithBaseURL(cfg.GitHub.APIBaseURL))
		}
		client, err := github.NewClient(token, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create GitHub client: %w", err)
		}
		return client, nil
	}
}
