package shared

// Filter carries the list-query options shared by every repository. Embed it
// in a domain-specific filter to add typed criteria.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
}
