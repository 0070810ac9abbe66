package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

var userSorting = NewSorting("userId", "id", "name", "name", "createdAt", "created_at")

func contextFor(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/users/init?"+rawQuery, nil)
	return c
}

func TestFromQueryDefaults(t *testing.T) {
	p := FromQuery(contextFor(""), userSorting)

	assert.Equal(t, Pageable{Page: 0, Size: 20, Sort: "userId"}, p)
	assert.Equal(t, "id", userSorting.Column(p.Sort))
	assert.Equal(t, 0, p.Offset())
}

func TestFromQueryExplicit(t *testing.T) {
	p := FromQuery(contextFor("page=2&size=5&sort=name,desc"), userSorting)

	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 5, p.Size)
	assert.Equal(t, "name", p.Sort)
	assert.True(t, p.Desc)
	assert.Equal(t, 10, p.Offset())
}

func TestFromQueryRejectsOutOfRange(t *testing.T) {
	p := FromQuery(contextFor("page=-3&size=1000&sort=password"), userSorting)

	assert.Equal(t, 0, p.Page)
	assert.Equal(t, DefaultSize, p.Size)
	assert.Equal(t, "userId", p.Sort)
	assert.Equal(t, "id", userSorting.Column("password"))

	huge := FromQuery(contextFor("page=461168601842738791"), userSorting)
	assert.Equal(t, MaxPage, huge.Page)
	assert.Greater(t, huge.Offset(), 0)

	page := NewPage([]int{}, huge, 5)
	assert.Equal(t, MaxPage, page.Page)
	assert.False(t, page.HasMore)
	assert.Equal(t, 1, page.TotalPages)

	overflow := FromQuery(contextFor("page=99999999999999999999999"), userSorting)
	assert.Equal(t, 0, overflow.Page)
}

func TestNewPage(t *testing.T) {
	p := Pageable{Page: 1, Size: 2}
	page := NewPage([]int{3, 4}, p, 5)

	assert.Equal(t, []int{3, 4}, page.Content)
	assert.Equal(t, int64(5), page.TotalElements)
	assert.Equal(t, 3, page.TotalPages)
	assert.True(t, page.HasMore)

	last := NewPage([]int{5}, Pageable{Page: 2, Size: 2}, 5)
	assert.False(t, last.HasMore)

	empty := NewPage[int](nil, Pageable{Size: 20}, 0)
	assert.NotNil(t, empty.Content)
	assert.Equal(t, 0, empty.TotalPages)
}
