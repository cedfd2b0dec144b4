package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tissue/internal/config"
	appErrors "tissue/internal/errors"
	"tissue/internal/github"
	"tissue/internal/ui"
)

type noopProgram struct{ err error }

func (p noopProgram) Run() (tea.Model, error) { return nil, p.err }

// isolate points config, token lookup and logging at a fresh home directory.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TISSUE_GITHUB_TOKEN", "")
	t.Setenv("GITHUB_TOKEN", "")
	t.Cleanup(config.ResetForTesting(t))
	return home
}

func mockDeps(t *testing.T, mock *github.MockClient) (runtimeDeps, *[]string, *bool) {
	t.Helper()
	var tokens []string
	ran := false
	deps := runtimeDeps{
		newClient: func(token, _ string) (github.Client, error) {
			tokens = append(tokens, token)
			return mock, nil
		},
		interactive: func() bool { return false },
		prompt: func() (string, error) {
			t.Fatal("prompt should not be called")
			return "", nil
		},
		program: func(app *ui.App) programRunner {
			require.NotNil(t, app)
			ran = true
			return noopProgram{}
		},
	}
	return deps, &tokens, &ran
}

func execute(cmdArgs []string, deps runtimeDeps) (string, error) {
	cmd := newRootCmd(deps)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(cmdArgs)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmdRequiresOwnerAndRepo(t *testing.T) {
	isolate(t)
	deps, _, ran := mockDeps(t, github.NewMockClient())
	_, err := execute([]string{"acme"}, deps)
	require.Error(t, err)
	assert.False(t, *ran)
}

func TestRootCmdPrintLogDir(t *testing.T) {
	home := isolate(t)
	deps, tokens, ran := mockDeps(t, github.NewMockClient())
	out, err := execute([]string{"--print-log-dir"}, deps)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".tissue")+"\n", out)
	assert.Empty(t, *tokens)
	assert.False(t, *ran)
}

func TestRootCmdVersion(t *testing.T) {
	isolate(t)
	deps, _, _ := mockDeps(t, github.NewMockClient())
	out, err := execute([]string{"--version"}, deps)
	require.NoError(t, err)
	assert.Contains(t, out, "tissue version dev")
	assert.Contains(t, out, "OS/Arch:")
}

func TestRootCmdStartsProgram(t *testing.T) {
	isolate(t)
	t.Setenv("TISSUE_GITHUB_TOKEN", "from-env")
	mock := github.NewMockClient()
	mock.CurrentUserFn = func(context.Context) (string, error) { return "octocat", nil }
	deps, tokens, ran := mockDeps(t, mock)

	_, err := execute([]string{"acme", "widgets", "--log-level", "none"}, deps)
	require.NoError(t, err)
	assert.Equal(t, []string{"from-env"}, *tokens)
	assert.Equal(t, 1, mock.CurrentUserCallCount)
	assert.True(t, *ran)
}

func TestRootCmdFallsBackToGitHubToken(t *testing.T) {
	isolate(t)
	t.Setenv("GITHUB_TOKEN", "conventional")
	mock := github.NewMockClient()
	mock.CurrentUserFn = func(context.Context) (string, error) { return "octocat", nil }
	deps, tokens, _ := mockDeps(t, mock)

	_, err := execute([]string{"acme", "widgets", "-l", "none"}, deps)
	require.NoError(t, err)
	assert.Equal(t, []string{"conventional"}, *tokens)
}

func TestRootCmdCurrentUserFailureIsFatal(t *testing.T) {
	isolate(t)
	t.Setenv("TISSUE_GITHUB_TOKEN", "bad")
	mock := github.NewMockClient()
	mock.CurrentUserFn = func(context.Context) (string, error) {
		return "", appErrors.New(appErrors.CodeUnauthorized, "Bad credentials.", nil)
	}
	deps, _, ran := mockDeps(t, mock)

	_, err := execute([]string{"acme", "widgets", "-l", "none"}, deps)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bad credentials.")
	assert.True(t, appErrors.IsCode(err, appErrors.CodeUnauthorized))
	assert.False(t, *ran)
}

func TestRootCmdRejectsUnknownLogLevel(t *testing.T) {
	isolate(t)
	t.Setenv("TISSUE_GITHUB_TOKEN", "tok")
	deps, tokens, _ := mockDeps(t, github.NewMockClient())
	_, err := execute([]string{"acme", "widgets", "-l", "loud"}, deps)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
	assert.Empty(t, *tokens)
}

func TestRootCmdSetTokenPersists(t *testing.T) {
	home := isolate(t)
	mock := github.NewMockClient()
	mock.CurrentUserFn = func(context.Context) (string, error) { return "octocat", nil }
	deps, tokens, _ := mockDeps(t, mock)

	_, err := execute([]string{"acme", "widgets", "-l", "none", "--set-token", "saved"}, deps)
	require.NoError(t, err)
	assert.Equal(t, []string{"saved"}, *tokens)

	data, err := os.ReadFile(filepath.Join(home, ".tissue", "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "saved")
}

func TestResolveToken(t *testing.T) {
	t.Run("MissingWithoutTerminal", func(t *testing.T) {
		isolate(t)
		var stderr bytes.Buffer
		_, err := resolveToken(&stderr, runtimeDeps{interactive: func() bool { return false }})
		require.Error(t, err)
		assert.True(t, appErrors.IsCode(err, appErrors.CodeConfigurationError))
	})

	t.Run("PromptedTokenIsSaved", func(t *testing.T) {
		home := isolate(t)
		var stderr bytes.Buffer
		token, err := resolveToken(&stderr, runtimeDeps{
			interactive: func() bool { return true },
			prompt:      func() (string, error) { return "  typed  ", nil },
		})
		require.NoError(t, err)
		assert.Equal(t, "typed", token)
		assert.Equal(t, "typed", config.Token())
		assert.FileExists(t, filepath.Join(home, ".tissue", "config.yaml"))
		assert.Empty(t, stderr.String())
	})

	t.Run("PromptFailure", func(t *testing.T) {
		isolate(t)
		var stderr bytes.Buffer
		_, err := resolveToken(&stderr, runtimeDeps{
			interactive: func() bool { return true },
			prompt:      func() (string, error) { return "", errors.New("interrupted") },
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "interrupted")
	})
}

func TestRunProgram(t *testing.T) {
	opts := ui.Options{Client: github.NewMockClient(), Owner: "acme", Repo: "widgets", User: "me"}

	t.Run("BuilderError", func(t *testing.T) {
		err := runProgram(opts, func(ui.Options) (*ui.App, error) {
			return nil, errors.New("boom")
		}, func(*ui.App) programRunner {
			t.Fatal("factory should not be called")
			return nil
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "initialize UI: boom")
	})

	t.Run("NilFactory", func(t *testing.T) {
		err := runProgram(opts, ui.NewApp, nil)
		require.Error(t, err)
	})

	t.Run("RunError", func(t *testing.T) {
		err := runProgram(opts, ui.NewApp, func(*ui.App) programRunner {
			return noopProgram{err: errors.New("tty lost")}
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "run UI: tty lost")
	})
}
