package models

// SliceRequest asks for a page of results without a total count, for
// infinite-scroll browsing. The store fetches PageSize+1 rows so HasMore
// can be derived without a COUNT query.
type SliceRequest struct {
	Page     int `json:"page" query:"page"`
	PageSize int `json:"page_size" query:"page_size"`
}

func (r SliceRequest) Offset() int {
	return r.Page * r.PageSize
}

func (r SliceRequest) FetchSize() int {
	return r.PageSize + 1
}

// GroupSlice is a slice of product group summaries.
type GroupSlice struct {
	Items    []ProductGroupSummary `json:"items"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"page_size"`
	HasMore  bool                  `json:"has_more"`
}

// NewGroupSlice trims an over-fetched row set (FetchSize rows) down to the
// requested page and records whether more rows exist.
func NewGroupSlice(rows []ProductGroupSummary, req SliceRequest) GroupSlice {
	hasMore := len(rows) > req.PageSize
	if hasMore {
		rows = rows[:req.PageSize]
	}
	return GroupSlice{Items: rows, Page: req.Page, PageSize: req.PageSize, HasMore: hasMore}
}

// PageRequest asks for a counted page, used by search.
type PageRequest struct {
	Page     int `json:"page" query:"page"`
	PageSize int `json:"page_size" query:"page_size"`
}

func (r PageRequest) Offset() int {
	return r.Page * r.PageSize
}

// GroupPage is a counted page of product group summaries.
type GroupPage struct {
	Items      []ProductGroupSummary `json:"items"`
	Total      int                   `json:"total"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalPages int                   `json:"total_pages"`
}

// NewGroupPage computes TotalPages from the total row count.
func NewGroupPage(items []ProductGroupSummary, total int, req PageRequest) GroupPage {
	pages := 0
	if req.PageSize > 0 {
		pages = (total + req.PageSize - 1) / req.PageSize
	}
	return GroupPage{Items: items, Total: total, Page: req.Page, PageSize: req.PageSize, TotalPages: pages}
}
