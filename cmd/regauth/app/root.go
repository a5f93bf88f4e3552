// Package app provides the commands of the regauth command-line application.
package app

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/reglet-dev/regauth/credential"
	"github.com/reglet-dev/regauth/credential/dto"
	"github.com/reglet-dev/regauth/credential/filesystem"
	"github.com/reglet-dev/regauth/credential/retrievers"
	"github.com/reglet-dev/regauth/credential/values"
	"github.com/reglet-dev/regauth/prompt"
)

// rootOptions is shared by every subcommand.
type rootOptions struct {
	configPath     string
	debug          bool
	logger         *slog.Logger
	ambient        values.Optional[values.Ambient]
	factoryOptions []retrievers.FactoryOption
	prompter       credentialPrompter
	setenv         func(key, value string) error
}

// credentialPrompter asks the user for a credential when the chain has none.
type credentialPrompter interface {
	IsInteractive() bool
	PromptForCredential(registry string) (values.Credential, error)
}

// Option configures the root command.
type Option func(*rootOptions)

// WithAmbient builds chains from a fixed environment and property snapshot
// instead of the current process.
func WithAmbient(a values.Ambient) Option {
	return func(o *rootOptions) { o.ambient = values.Some(a) }
}

// WithFactoryOptions passes extra options to the retriever factory.
func WithFactoryOptions(opts ...retrievers.FactoryOption) Option {
	return func(o *rootOptions) { o.factoryOptions = append(o.factoryOptions, opts...) }
}

// NewRootCmd creates the root command for the regauth CLI.
func NewRootCmd(opts ...Option) *cobra.Command {
	o := &rootOptions{
		logger:   slog.Default(),
		prompter: prompt.NewTerminalPrompter(),
		setenv:   os.Setenv,
	}
	for _, opt := range opts {
		opt(o)
	}
	if !o.ambient.IsPresent() {
		o.ambient = values.Some(values.CurrentAmbient())
	}

	cmd := &cobra.Command{
		Use:               "regauth",
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		Short:             "Resolve container registry credentials the way docker, podman and cloud helpers store them",
		Long: `regauth builds an ordered chain of credential sources (explicit credentials,
credential helpers, podman and docker config files, well-known cloud helpers and
ambient environment credentials) and resolves registry credentials through it.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelInfo
			if o.debug {
				level = slog.LevelDebug
			}
			o.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	ambient, _ := o.ambient.Get()
	cmd.PersistentFlags().StringVar(&o.configPath, "config", DefaultConfigPath(ambient), "Path to the regauth config file")
	cmd.PersistentFlags().BoolVar(&o.debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(newRetrieversCmd(o))
	cmd.AddCommand(newGetCmd(o))
	cmd.AddCommand(newHelperCmd(o))
	cmd.AddCommand(newSchemaCmd())
	cmd.AddCommand(newValidateCmd())

	return cmd
}

// service wires the credential service for the current flags.
func (o *rootOptions) service() (*credential.CredentialService, error) {
	repo, err := filesystem.NewFileConfigRepository()
	if err != nil {
		return nil, err
	}
	ambient, _ := o.ambient.Get()

	factoryOpts := append([]retrievers.FactoryOption{
		retrievers.WithLogger(o.logger),
		retrievers.WithEnvironment(ambient.Environment),
	}, o.factoryOptions...)

	return credential.NewCredentialService(
		retrievers.NewFactory(factoryOpts...),
		credential.WithAmbient(ambient),
		credential.WithConfigRepository(repo),
		credential.WithLogger(o.logger),
	), nil
}

// load wires the service and reads the config file.
func (o *rootOptions) load(cmd *cobra.Command) (*credential.CredentialService, *dto.CredentialSpecDTO, error) {
	svc, err := o.service()
	if err != nil {
		return nil, nil, err
	}
	spec, err := svc.LoadSpec(cmd.Context(), o.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	return svc, spec, nil
}
