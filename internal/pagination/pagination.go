package pagination

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

// ErrPageNotFound indicates the requested page is past the end of the data.
var ErrPageNotFound = errors.New("invalid page: not found")

// Params are the client-supplied pagination inputs, read from the "page" and
// "page-size" query parameters.
type Params struct {
	Page     int `form:"page"`
	PageSize int `form:"page-size"`
}

// Page is one page of results plus the navigation details the envelope
// exposes to clients.
type Page struct {
	CurrentPage        int     `json:"current_page"`
	TotalPages         int     `json:"total_pages"`
	TotalItems         int     `json:"total_items"`
	ItemsPerPage       int     `json:"items_per_page"`
	HasNext            bool    `json:"has_next"`
	HasPrevious        bool    `json:"has_previous"`
	NextPageNumber     *int    `json:"next_page_number"`
	PreviousPageNumber *int    `json:"previous_page_number"`
	Next               *string `json:"next"`
	Previous           *string `json:"previous"`
	Results            any     `json:"results"`
}

// FromRequest reads pagination params with defaults of page 1 and 10 items
// per page. Malformed values fall back to the defaults.
func FromRequest(c *gin.Context) Params {
	params := Params{Page: defaultPage, PageSize: defaultPageSize}
	if raw := c.Query("page"); raw != "" {
		if page, errParse := strconv.Atoi(raw); errParse == nil && page > 0 {
			params.Page = page
		}
	}
	if raw := c.Query("page-size"); raw != "" {
		if size, errParse := strconv.Atoi(raw); errParse == nil && size > 0 {
			params.PageSize = size
		}
	}
	return params
}

// Paginate slices items for the requested page and fills the navigation
// links relative to the request URL. Asking past the last page returns
// ErrPageNotFound; an empty collection still has page 1.
func Paginate[T any](c *gin.Context, items []T, params Params) (Page, error) {
	if params.Page <= 0 {
		params.Page = defaultPage
	}
	if params.PageSize <= 0 {
		params.PageSize = defaultPageSize
	}

	totalItems := len(items)
	totalPages := (totalItems + params.PageSize - 1) / params.PageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if params.Page > totalPages {
		return Page{}, ErrPageNotFound
	}

	start := (params.Page - 1) * params.PageSize
	end := start + params.PageSize
	if end > totalItems {
		end = totalItems
	}

	page := Page{
		CurrentPage:  params.Page,
		TotalPages:   totalPages,
		TotalItems:   totalItems,
		ItemsPerPage: params.PageSize,
		HasNext:      params.Page < totalPages,
		HasPrevious:  params.Page > 1,
		Results:      items[start:end],
	}
	if page.HasNext {
		next := params.Page + 1
		page.NextPageNumber = &next
		page.Next = pageLink(c, next)
	}
	if page.HasPrevious {
		previous := params.Page - 1
		page.PreviousPageNumber = &previous
		page.Previous = pageLink(c, previous)
	}
	return page, nil
}

func pageLink(c *gin.Context, page int) *string {
	if c == nil || c.Request == nil || c.Request.URL == nil {
		return nil
	}
	link := *c.Request.URL
	query := link.Query()
	query.Set("page", strconv.Itoa(page))
	link.RawQuery = query.Encode()
	value := link.String()
	return &value
}
