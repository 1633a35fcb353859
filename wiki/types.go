package wiki

// Defaults applied when a tool call omits the corresponding argument
const (
	DefaultListLimit = 10
	DefaultOrderBy   = "TITLE"
	DefaultEditor    = "markdown"
)

// OrderByValues are the orderings accepted by the page listing
var OrderByValues = []string{"ID", "PATH", "TITLE", "CREATED", "UPDATED"}

// ValidOrderBy reports whether value is an accepted listing order
func ValidOrderBy(value string) bool {
	for _, v := range OrderByValues {
		if v == value {
			return true
		}
	}
	return false
}

// Page is the full record returned by single/singleByPath queries
type Page struct {
	ID          int    `json:"id"`
	Path        string `json:"path"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
	Editor      string `json:"editor"`
	IsPublished bool   `json:"isPublished"`
}

// PageListItem is the summary shape returned by the list query
type PageListItem struct {
	ID        int    `json:"id"`
	Path      string `json:"path"`
	Title     string `json:"title"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ResponseStatus is Wiki.js's mutation-level success/failure envelope,
// distinct from transport-level success.
type ResponseStatus struct {
	Succeeded bool   `json:"succeeded"`
	ErrorCode int    `json:"errorCode"`
	Slug      string `json:"slug"`
	Message   string `json:"message"`
}

// PageRef is the page subset returned alongside mutation results
type PageRef struct {
	ID    int    `json:"id"`
	Path  string `json:"path"`
	Title string `json:"title"`
}

// MutationOutcome is the decoded result of a create or update mutation.
// Page may be nil even on success; handlers must not assume it is set.
type MutationOutcome struct {
	Result ResponseStatus `json:"responseResult"`
	Page   *PageRef       `json:"page"`
}

// ListPagesArgs are the inputs to ListPages. Zero values select defaults.
type ListPagesArgs struct {
	OrderBy string
	Limit   int
}

// CreatePageInput carries the fields for a page creation.
// Description is always sent as an empty string.
type CreatePageInput struct {
	Path        string
	Title       string
	Content     string
	Editor      string
	IsPublished bool
}

// UpdatePageInput carries the fields for a page update. Nil pointers are
// omitted from the mutation entirely so the server leaves them unchanged.
type UpdatePageInput struct {
	ID          int
	Title       *string
	Content     *string
	Editor      *string
	IsPublished *bool
}
