// Package github talks to the GitHub REST API on behalf of the UI.
package github

import "context"

// Client defines the remote operations the UI performs against one
// repository's issues.
type Client interface {
	ListComments(ctx context.Context, owner, repo string, issue, perPage, page int) ([]Comment, error)
	CreateComment(ctx context.Context, owner, repo string, issue int, body string) (Comment, error)
	// GetLabel reports a missing label with errors.CodeNotFound.
	GetLabel(ctx context.Context, owner, repo, name string) (Label, error)
	AddLabels(ctx context.Context, owner, repo string, issue int, names []string) ([]Label, error)
	RemoveLabel(ctx context.Context, owner, repo string, issue int, name string) ([]Label, error)
	CreateLabel(ctx context.Context, owner, repo, name, color, description string) (Label, error)
	SearchIssues(ctx context.Context, query, sort, order string) (SearchPage, error)
	CurrentUser(ctx context.Context) (string, error)
	ListRepoLabels(ctx context.Context, owner, repo string) ([]Label, error)
}
