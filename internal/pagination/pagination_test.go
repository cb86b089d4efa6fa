package pagination

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newQueryContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/api/notes?"+rawQuery, nil)
	return c
}

func TestFromRequestDefaults(t *testing.T) {
	params := FromRequest(newQueryContext(t, ""))
	if params.Page != 1 || params.PageSize != 10 {
		t.Fatalf("unexpected defaults: %+v", params)
	}
}

func TestFromRequestReadsQuery(t *testing.T) {
	params := FromRequest(newQueryContext(t, "page=3&page-size=25"))
	if params.Page != 3 || params.PageSize != 25 {
		t.Fatalf("unexpected params: %+v", params)
	}
}

func TestFromRequestIgnoresMalformed(t *testing.T) {
	params := FromRequest(newQueryContext(t, "page=abc&page-size=-5"))
	if params.Page != 1 || params.PageSize != 10 {
		t.Fatalf("expected defaults for malformed input, got %+v", params)
	}
}

func TestPaginateMiddlePage(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}
	c := newQueryContext(t, "page=2&page-size=10")

	page, errPaginate := Paginate(c, items, Params{Page: 2, PageSize: 10})
	if errPaginate != nil {
		t.Fatalf("paginate: %v", errPaginate)
	}
	if page.CurrentPage != 2 || page.TotalPages != 3 || page.TotalItems != 25 || page.ItemsPerPage != 10 {
		t.Fatalf("unexpected page: %+v", page)
	}
	if !page.HasNext || !page.HasPrevious {
		t.Fatalf("expected both neighbors: %+v", page)
	}
	if page.NextPageNumber == nil || *page.NextPageNumber != 3 {
		t.Fatalf("unexpected next page number: %v", page.NextPageNumber)
	}
	if page.PreviousPageNumber == nil || *page.PreviousPageNumber != 1 {
		t.Fatalf("unexpected previous page number: %v", page.PreviousPageNumber)
	}
	results := page.Results.([]int)
	if len(results) != 10 || results[0] != 10 {
		t.Fatalf("unexpected results slice: %v", results)
	}
	if page.Next == nil || !strings.Contains(*page.Next, "page=3") {
		t.Fatalf("unexpected next link: %v", page.Next)
	}
	if page.Previous == nil || !strings.Contains(*page.Previous, "page=1") {
		t.Fatalf("unexpected previous link: %v", page.Previous)
	}
}

func TestPaginateLastPartialPage(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}
	c := newQueryContext(t, "page=2&page-size=3")

	page, errPaginate := Paginate(c, items, Params{Page: 2, PageSize: 3})
	if errPaginate != nil {
		t.Fatalf("paginate: %v", errPaginate)
	}
	if page.HasNext {
		t.Fatalf("last page must have no next: %+v", page)
	}
	results := page.Results.([]string)
	if len(results) != 2 || results[0] != "d" {
		t.Fatalf("unexpected results: %v", results)
	}
	if page.NextPageNumber != nil || page.Next != nil {
		t.Fatalf("expected nil next fields: %+v", page)
	}
}

func TestPaginatePastEnd(t *testing.T) {
	c := newQueryContext(t, "page=4")
	if _, errPaginate := Paginate(c, []int{1, 2, 3}, Params{Page: 4, PageSize: 10}); !errors.Is(errPaginate, ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound, got %v", errPaginate)
	}
}

func TestPaginateEmptyCollection(t *testing.T) {
	c := newQueryContext(t, "")
	page, errPaginate := Paginate(c, []int{}, Params{Page: 1, PageSize: 10})
	if errPaginate != nil {
		t.Fatalf("paginate: %v", errPaginate)
	}
	if page.TotalPages != 1 || page.TotalItems != 0 || page.HasNext || page.HasPrevious {
		t.Fatalf("unexpected empty page: %+v", page)
	}
}
