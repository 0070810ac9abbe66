// Package pagination parses page requests from query strings and shapes
// paged responses.
package pagination

import (
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	DefaultSize = 20
	MaxSize     = 100
	// MaxPage keeps Offset plus a full page within a 32-bit int.
	MaxPage = (math.MaxInt32 - MaxSize) / MaxSize
)

// Pageable is a zero-based page request with a single sort column.
type Pageable struct {
	Page int    `json:"page"`
	Size int    `json:"size"`
	Sort string `json:"sort"`
	Desc bool   `json:"desc"`
}

// Offset returns the number of rows to skip.
func (p Pageable) Offset() int {
	return p.Page * p.Size
}

// Sorting maps public sort keys to column names. The first entry passed to
// NewSorting is the default sort key.
type Sorting struct {
	defaultKey string
	columns    map[string]string
}

// NewSorting builds a whitelist of sortable keys. Pairs are key, column.
func NewSorting(defaultKey, defaultColumn string, pairs ...string) Sorting {
	columns := map[string]string{defaultKey: defaultColumn}
	for i := 0; i+1 < len(pairs); i += 2 {
		columns[pairs[i]] = pairs[i+1]
	}
	return Sorting{defaultKey: defaultKey, columns: columns}
}

// Column resolves a sort key, falling back to the default column.
func (s Sorting) Column(key string) string {
	if col, ok := s.columns[key]; ok {
		return col
	}
	return s.columns[s.defaultKey]
}

// FromQuery reads page, size and sort=field[,asc|desc] from the request.
// Out-of-range values fall back to the defaults rather than failing.
func FromQuery(c *gin.Context, sorting Sorting) Pageable {
	p := Pageable{
		Page: intParam(c, "page", 0),
		Size: intParam(c, "size", DefaultSize),
		Sort: sorting.defaultKey,
	}
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.Size < 1 || p.Size > MaxSize {
		p.Size = DefaultSize
	}

	if raw := c.Query("sort"); raw != "" {
		field, direction, _ := strings.Cut(raw, ",")
		if _, ok := sorting.columns[field]; ok {
			p.Sort = field
		}
		p.Desc = strings.EqualFold(direction, "desc")
	}

	return p
}

// Page is one window of a sorted, filtered result set.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
	HasMore       bool  `json:"has_more"`
}

// NewPage wraps items fetched for p out of total matching rows.
func NewPage[T any](items []T, p Pageable, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if p.Size > 0 {
		pages = int((total + int64(p.Size) - 1) / int64(p.Size))
	}
	return Page[T]{
		Content:       items,
		Page:          p.Page,
		Size:          p.Size,
		TotalElements: total,
		TotalPages:    pages,
		HasMore:       int64(p.Offset()+len(items)) < total,
	}
}

func intParam(c *gin.Context, key string, defaultVal int) int {
	if val := c.Query(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
