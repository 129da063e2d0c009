package models

// PageInfo describes one page of a paginated listing. Page is 1-based.
type PageInfo struct {
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

// PostPage is a page of posts
type PostPage struct {
	Posts    []Post   `json:"data"`
	PageInfo PageInfo `json:"pageInfo"`
}
