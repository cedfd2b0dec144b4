package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v58/github"

	"tissue/internal/debug"
	appErrors "tissue/internal/errors"
)

// labelPageSize bounds each page when listing every label of a repository.
const labelPageSize = 100

// Option customises a RemoteClient.
type Option func(*remoteConfig)

type remoteConfig struct {
	httpClient *http.Client
	baseURL    string
}

// WithHTTPClient sets the transport used for API requests.
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *remoteConfig) {
		cfg.httpClient = c
	}
}

// WithBaseURL points the client at a different API root, such as a GitHub
// Enterprise host or a test server.
func WithBaseURL(raw string) Option {
	return func(cfg *remoteConfig) {
		cfg.baseURL = raw
	}
}

// RemoteClient implements Client on top of go-github.
type RemoteClient struct {
	gh *gh.Client
}

var _ Client = (*RemoteClient)(nil)

// NewRemoteClient builds an authenticated API client.
func NewRemoteClient(token string, opts ...Option) (*RemoteClient, error) {
	cfg := remoteConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	client := gh.NewClient(cfg.httpClient)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	if cfg.baseURL != "" {
		raw := cfg.baseURL
		if !strings.HasSuffix(raw, "/") {
			raw += "/"
		}
		u, err := url.Parse(raw)
		if err != nil {
			return nil, appErrors.New(appErrors.CodeConfigurationError, fmt.Sprintf("invalid API URL %q", cfg.baseURL), err)
		}
		client.BaseURL = u
	}
	return &RemoteClient{gh: client}, nil
}

// ListComments returns one page of comments on an issue.
func (c *RemoteClient) ListComments(ctx context.Context, owner, repo string, issue, perPage, page int) ([]Comment, error) {
	debug.Logf("github: list comments %s/%s#%d page=%d", owner, repo, issue, page)
	opts := &gh.IssueListCommentsOptions{
		ListOptions: gh.ListOptions{PerPage: perPage, Page: page},
	}
	raw, _, err := c.gh.Issues.ListComments(ctx, owner, repo, issue, opts)
	if err != nil {
		return nil, classifyError("list comments", err)
	}
	comments := make([]Comment, 0, len(raw))
	for _, rc := range raw {
		comments = append(comments, convertComment(rc))
	}
	return comments, nil
}

// CreateComment posts a new comment and returns it as stored by the server.
func (c *RemoteClient) CreateComment(ctx context.Context, owner, repo string, issue int, body string) (Comment, error) {
	debug.Logf("github: create comment on %s/%s#%d", owner, repo, issue)
	rc, _, err := c.gh.Issues.CreateComment(ctx, owner, repo, issue, &gh.IssueComment{Body: gh.String(body)})
	if err != nil {
		return Comment{}, classifyError("create comment", err)
	}
	return convertComment(rc), nil
}

// GetLabel looks up a repository label by name.
func (c *RemoteClient) GetLabel(ctx context.Context, owner, repo, name string) (Label, error) {
	rl, _, err := c.gh.Issues.GetLabel(ctx, owner, repo, name)
	if err != nil {
		return Label{}, classifyError("get label", err)
	}
	return convertLabel(rl), nil
}

// AddLabels attaches labels to an issue and returns the issue's full label set.
func (c *RemoteClient) AddLabels(ctx context.Context, owner, repo string, issue int, names []string) ([]Label, error) {
	raw, _, err := c.gh.Issues.AddLabelsToIssue(ctx, owner, repo, issue, names)
	if err != nil {
		return nil, classifyError("add labels", err)
	}
	return convertLabels(raw), nil
}

// RemoveLabel detaches a label and returns the issue's remaining labels.
func (c *RemoteClient) RemoveLabel(ctx context.Context, owner, repo string, issue int, name string) ([]Label, error) {
	if _, err := c.gh.Issues.RemoveLabelForIssue(ctx, owner, repo, issue, name); err != nil {
		return nil, classifyError("remove label", err)
	}
	raw, _, err := c.gh.Issues.ListLabelsByIssue(ctx, owner, repo, issue, &gh.ListOptions{PerPage: labelPageSize})
	if err != nil {
		return nil, classifyError("list issue labels", err)
	}
	return convertLabels(raw), nil
}

// CreateLabel creates a repository label.
func (c *RemoteClient) CreateLabel(ctx context.Context, owner, repo, name, color, description string) (Label, error) {
	in := &gh.Label{Name: gh.String(name), Color: gh.String(color)}
	if description != "" {
		in.Description = gh.String(description)
	}
	rl, _, err := c.gh.Issues.CreateLabel(ctx, owner, repo, in)
	if err != nil {
		return Label{}, classifyError("create label", err)
	}
	return convertLabel(rl), nil
}

// SearchIssues runs an issue search and returns the first page of results.
func (c *RemoteClient) SearchIssues(ctx context.Context, query, sort, order string) (SearchPage, error) {
	debug.Logf("github: search %q", query)
	opts := &gh.SearchOptions{
		Sort:        sort,
		Order:       order,
		ListOptions: gh.ListOptions{PerPage: 100},
	}
	res, _, err := c.gh.Search.Issues(ctx, query, opts)
	if err != nil {
		return SearchPage{}, classifyError("search issues", err)
	}
	page := SearchPage{
		Total:      res.GetTotal(),
		Incomplete: res.GetIncompleteResults(),
		Issues:     make([]Issue, 0, len(res.Issues)),
	}
	for _, ri := range res.Issues {
		page.Issues = append(page.Issues, convertIssue(ri))
	}
	return page, nil
}

// CurrentUser returns the login of the authenticated user.
func (c *RemoteClient) CurrentUser(ctx context.Context) (string, error) {
	u, _, err := c.gh.Users.Get(ctx, "")
	if err != nil {
		return "", classifyError("current user", err)
	}
	return u.GetLogin(), nil
}

// ListRepoLabels returns every label defined in the repository.
func (c *RemoteClient) ListRepoLabels(ctx context.Context, owner, repo string) ([]Label, error) {
	opts := &gh.ListOptions{PerPage: labelPageSize}
	var out []Label
	for {
		raw, resp, err := c.gh.Issues.ListLabels(ctx, owner, repo, opts)
		if err != nil {
			return nil, classifyError("list labels", err)
		}
		out = append(out, convertLabels(raw)...)
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return out, nil
}

func formatTime(ts gh.Timestamp) string {
	if ts.IsZero() {
		return ""
	}
	return ts.UTC().Format(TimeLayout)
}

func convertComment(rc *gh.IssueComment) Comment {
	return Comment{
		ID:        rc.GetID(),
		Author:    rc.GetUser().GetLogin(),
		CreatedAt: formatTime(rc.GetCreatedAt()),
		Body:      rc.GetBody(),
	}
}

func convertLabel(rl *gh.Label) Label {
	return Label{
		Name:        rl.GetName(),
		Color:       strings.ToLower(rl.GetColor()),
		Description: rl.GetDescription(),
	}
}

func convertLabels(raw []*gh.Label) []Label {
	labels := make([]Label, 0, len(raw))
	for _, rl := range raw {
		labels = append(labels, convertLabel(rl))
	}
	return labels
}

func convertIssue(ri *gh.Issue) Issue {
	return Issue{
		Number:    ri.GetNumber(),
		Title:     ri.GetTitle(),
		State:     ri.GetState(),
		Author:    ri.GetUser().GetLogin(),
		CreatedAt: formatTime(ri.GetCreatedAt()),
		Body:      ri.GetBody(),
		Labels:    convertLabels(ri.Labels),
		Comments:  ri.GetComments(),
		URL:       ri.GetHTMLURL(),
	}
}
