package github

import (
	"context"
	"errors"
	"sync"
)

// ErrMockNotImplemented is returned when a MockClient method lacks an override.
var ErrMockNotImplemented = errors.New("github.MockClient: method not implemented")

// MockClient is a test double for Client.
type MockClient struct {
	ListCommentsFn   func(context.Context, string, string, int, int, int) ([]Comment, error)
	CreateCommentFn  func(context.Context, string, string, int, string) (Comment, error)
	GetLabelFn       func(context.Context, string, string, string) (Label, error)
	AddLabelsFn      func(context.Context, string, string, int, []string) ([]Label, error)
	RemoveLabelFn    func(context.Context, string, string, int, string) ([]Label, error)
	CreateLabelFn    func(context.Context, string, string, string, string, string) (Label, error)
	SearchIssuesFn   func(context.Context, string, string, string) (SearchPage, error)
	CurrentUserFn    func(context.Context) (string, error)
	ListRepoLabelsFn func(context.Context, string, string) ([]Label, error)

	mu                     sync.Mutex
	ListCommentsCallCount  int
	CreateCommentCallCount int
	GetLabelCallCount      int
	AddLabelsCallCount     int
	RemoveLabelCallCount   int
	CreateLabelCallCount   int
	SearchIssuesCallCount  int
	CurrentUserCallCount   int
	ListRepoLabelsCount    int
	ListCommentsIssues     []int
	CreateCommentBodies    []string
	GetLabelNames          []string
	AddLabelsCallArgs      [][]string
	RemoveLabelCallArgs    []string
	CreateLabelCallArgs    []CreateLabelCallArg
	SearchQueries          []string
}

// CreateLabelCallArg captures arguments passed to CreateLabel.
type CreateLabelCallArg struct {
	Name        string
	Color       string
	Description string
}

var _ Client = (*MockClient)(nil)

// NewMockClient returns a MockClient with zeroed handlers.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// ListComments invokes the configured stub or returns ErrMockNotImplemented.
func (m *MockClient) ListComments(ctx context.Context, owner, repo string, issue, perPage, page int) ([]Comment, error) {
	m.mu.Lock()
	m.ListCommentsCallCount++
	m.ListCommentsIssues = append(m.ListCommentsIssues, issue)
	m.mu.Unlock()

	if m.ListCommentsFn == nil {
		return nil, ErrMockNotImplemented
	}
	return m.ListCommentsFn(ctx, owner, repo, issue, perPage, page)
}

// CreateComment invokes the configured stub or returns ErrMockNotImplemented.
func (m *MockClient) CreateComment(ctx context.Context, owner, repo string, issue int, body string) (Comment, error) {
	m.mu.Lock()
	m.CreateCommentCallCount++
	m.CreateCommentBodies = append(m.CreateCommentBodies, body)
	m.mu.Unlock()

	if m.CreateCommentFn == nil {
		return Comment{}, ErrMockNotImplemented
	}
	return m.CreateCommentFn(ctx, owner, repo, issue, body)
}

// GetLabel invokes the configured stub or returns ErrMockNotImplemented.
func (m *MockClient) GetLabel(ctx context.Context, owner, repo, name string) (Label, error) {
	m.mu.Lock()
	m.GetLabelCallCount++
	m.GetLabelNames = append(m.GetLabelNames, name)
	m.mu.Unlock()

	if m.GetLabelFn == nil {
		return Label{}, ErrMockNotImplemented
	}
	return m.GetLabelFn(ctx, owner, repo, name)
}

// AddLabels invokes the configured stub or returns ErrMockNotImplemented.
func (m *MockClient) AddLabels(ctx context.Context, owner, repo string, issue int, names []string) ([]Label, error) {
	m.mu.Lock()
	m.AddLabelsCallCount++
	m.AddLabelsCallArgs = append(m.AddLabelsCallArgs, append([]string{}, names...))
	m.mu.Unlock()

	if m.AddLabelsFn == nil {
		return nil, ErrMockNotImplemented
	}
	return m.AddLabelsFn(ctx, owner, repo, issue, names)
}

// RemoveLabel invokes the configured stub or returns ErrMockNotImplemented.
func (m *MockClient) RemoveLabel(ctx context.Context, owner, repo string, issue int, name string) ([]Label, error) {
	m.mu.Lock()
	m.RemoveLabelCallCount++
	m.RemoveLabelCallArgs = append(m.RemoveLabelCallArgs, name)
	m.mu.Unlock()

	if m.RemoveLabelFn == nil {
		return nil, ErrMockNotImplemented
	}
	return m.RemoveLabelFn(ctx, owner, repo, issue, name)
}

// CreateLabel invokes the configured stub or returns ErrMockNotImplemented.
func (m *MockClient) CreateLabel(ctx context.Context, owner, repo, name, color, description string) (Label, error) {
	m.mu.Lock()
	m.CreateLabelCallCount++
	m.CreateLabelCallArgs = append(m.CreateLabelCallArgs, CreateLabelCallArg{Name: name, Color: color, Description: description})
	m.mu.Unlock()

	if m.CreateLabelFn == nil {
		return Label{}, ErrMockNotImplemented
	}
	return m.CreateLabelFn(ctx, owner, repo, name, color, description)
}

// SearchIssues invokes the configured stub or returns ErrMockNotImplemented.
func (m *MockClient) SearchIssues(ctx context.Context, query, sort, order string) (SearchPage, error) {
	m.mu.Lock()
	m.SearchIssuesCallCount++
	m.SearchQueries = append(m.SearchQueries, query)
	m.mu.Unlock()

	if m.SearchIssuesFn == nil {
		return SearchPage{}, ErrMockNotImplemented
	}
	return m.SearchIssuesFn(ctx, query, sort, order)
}

// CurrentUser invokes the configured stub or returns ErrMockNotImplemented.
func (m *MockClient) CurrentUser(ctx context.Context) (string, error) {
	m.mu.Lock()
	m.CurrentUserCallCount++
	m.mu.Unlock()

	if m.CurrentUserFn == nil {
		return "", ErrMockNotImplemented
	}
	return m.CurrentUserFn(ctx)
}

// ListRepoLabels invokes the configured stub or returns ErrMockNotImplemented.
func (m *MockClient) ListRepoLabels(ctx context.Context, owner, repo string) ([]Label, error) {
	m.mu.Lock()
	m.ListRepoLabelsCount++
	m.mu.Unlock()

	if m.ListRepoLabelsFn == nil {
		return nil, ErrMockNotImplemented
	}
	return m.ListRepoLabelsFn(ctx, owner, repo)
}

// Calls returns a consistent snapshot of ListComments and CreateComment call
// counts.
func (m *MockClient) Calls() (listComments, createComment int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ListCommentsCallCount, m.CreateCommentCallCount
}
