package dto

import "net/url"

// Pagination defaults shared by every listing
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 50
)

// Page is a validated page request
type Page struct {
	Page  int `json:"page" validate:"pagenumber"`
	Limit int `json:"limit" validate:"pagesize"`
}

func parsePage(q url.Values, errs *ValidationErrors) Page {
	return Page{
		Page:  queryInt(q, "page", DefaultPage, errs),
		Limit: queryInt(q, "limit", DefaultLimit, errs),
	}
}
