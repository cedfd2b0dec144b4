package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"tissue/internal/config"
	"tissue/internal/debug"
	appErrors "tissue/internal/errors"
	"tissue/internal/github"
	"tissue/internal/ui"
)

const currentUserTimeout = 15 * time.Second

func main() {
	if err := newRootCmd(defaultDeps()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type programRunner interface {
	Run() (tea.Model, error)
}

type programFactory func(*ui.App) programRunner

// runtimeDeps holds the pieces main swaps out in tests.
type runtimeDeps struct {
	newClient   func(token, apiURL string) (github.Client, error)
	interactive func() bool
	prompt      func() (string, error)
	program     programFactory
}

func defaultDeps() runtimeDeps {
	return runtimeDeps{
		newClient: func(token, apiURL string) (github.Client, error) {
			return github.NewRemoteClient(token, github.WithBaseURL(apiURL))
		},
		interactive: isInteractiveTTY,
		prompt:      promptForToken,
		program: func(app *ui.App) programRunner {
			return tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
		},
	}
}

type cliOptions struct {
	logLevel    string
	printLogDir bool
	setToken    string
}

func newRootCmd(deps runtimeDeps) *cobra.Command {
	var opts cliOptions
	cmd := &cobra.Command{
		Use:   "tissue <owner> <repo>",
		Short: "Browse, discuss and label GitHub issues from the terminal",
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.printLogDir {
				return nil
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts, deps)
		},
	}
	cmd.SetVersionTemplate(versionTemplate())

	flags := cmd.Flags()
	flags.StringVarP(&opts.logLevel, "log-level", "l", "", "Log level (trace, debug, info, warn, error, none)")
	flags.BoolVarP(&opts.printLogDir, "print-log-dir", "p", false, "Print the log directory and exit")
	flags.StringVarP(&opts.setToken, "set-token", "s", "", "Save a GitHub token to the config file")
	return cmd
}

func run(cmd *cobra.Command, args []string, opts cliOptions, deps runtimeDeps) error {
	if err := config.Initialize(); err != nil {
		return fmt.Errorf("initialize config: %w", err)
	}

	if opts.printLogDir {
		dir, err := debug.LogDir()
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), dir)
		return nil
	}

	owner := strings.TrimSpace(args[0])
	repo := strings.TrimSpace(args[1])
	if owner == "" || repo == "" {
		return appErrors.Validation("Owner and repository must not be empty.")
	}

	if cmd.Flags().Changed("log-level") {
		if err := config.ApplyOverrides(map[string]any{config.KeyLogLevel: opts.logLevel}); err != nil {
			return err
		}
	}
	level, err := debug.ParseLevel(config.GetString(config.KeyLogLevel))
	if err != nil {
		return err
	}
	if err := debug.Init(level); err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}
	defer debug.Close()

	if opts.setToken != "" {
		if err := config.SaveToken(opts.setToken); err != nil {
			return fmt.Errorf("save token: %w", err)
		}
		debug.Log("token saved from --set-token")
	}

	token, err := resolveToken(cmd.ErrOrStderr(), deps)
	if err != nil {
		return err
	}

	client, err := deps.newClient(token, config.GetString(config.KeyAPIURL))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), currentUserTimeout)
	user, err := client.CurrentUser(ctx)
	cancel()
	if err != nil {
		return fmt.Errorf("resolve current user: %w", err)
	}
	debug.Logf("authenticated as %s", user)

	return runProgram(ui.Options{
		Client:       client,
		Owner:        owner,
		Repo:         repo,
		User:         user,
		TickInterval: config.TickInterval(),
		HelpStyle:    config.GetString(config.KeyHelpStyle),
		SearchState:  ui.ParseSearchState(config.GetString(config.KeySearchState)),
	}, ui.NewApp, deps.program)
}

// resolveToken prefers configured tokens and only prompts on a terminal. A
// prompted token is persisted so later launches skip the prompt.
func resolveToken(stderr io.Writer, deps runtimeDeps) (string, error) {
	if token := config.Token(); token != "" {
		return token, nil
	}
	if deps.interactive == nil || deps.prompt == nil || !deps.interactive() {
		return "", appErrors.New(appErrors.CodeConfigurationError,
			"No GitHub token configured. Set TISSUE_GITHUB_TOKEN or GITHUB_TOKEN, or run with --set-token.", nil)
	}
	token, err := deps.prompt()
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", appErrors.New(appErrors.CodeConfigurationError, "No GitHub token entered.", nil)
	}
	if err := config.SaveToken(token); err != nil {
		_, _ = fmt.Fprintf(stderr, "Warning: could not save token: %v\n", err)
	}
	return token, nil
}

func runProgram(opts ui.Options, builder func(ui.Options) (*ui.App, error), factory programFactory) error {
	app, err := builder(opts)
	if err != nil {
		return fmt.Errorf("initialize UI: %w", err)
	}
	if factory == nil {
		return fmt.Errorf("program factory is nil")
	}
	prog := factory(app)
	if prog == nil {
		return fmt.Errorf("program is nil")
	}
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("run UI: %w", err)
	}
	return nil
}
