package github

// TimeLayout is the display format for every timestamp handed to the UI.
const TimeLayout = "2006-01-02 15:04"

// Comment is one comment on an issue.
type Comment struct {
	ID        int64
	Author    string
	CreatedAt string
	Body      string
}

// Label is a repository label. Color is six lowercase hex digits without '#'.
type Label struct {
	Name        string
	Color       string
	Description string
}

// Issue is the subset of an issue shown by the list and conversation views.
type Issue struct {
	Number    int
	Title     string
	State     string
	Author    string
	CreatedAt string
	Body      string
	Labels    []Label
	Comments  int
	URL       string
}

// SearchPage is one page of issue search results.
type SearchPage struct {
	Total      int
	Issues     []Issue
	Incomplete bool
}

// Search sort and order values used by the issue search.
const (
	SortCreated = "created"
	OrderDesc   = "desc"
)

// LabelNames returns the names of labels in order.
func LabelNames(labels []Label) []string {
	names := make([]string, 0, len(labels))
	for _, l := range labels {
		names = append(names, l.Name)
	}
	return names
}
