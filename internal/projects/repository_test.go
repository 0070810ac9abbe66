package projects

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"carbon-shop/marketplace-backend/internal/orders"
	"carbon-shop/marketplace-backend/internal/store"
	"carbon-shop/marketplace-backend/internal/store/storetest"
	"carbon-shop/marketplace-backend/pkg/pagination"
)

func newTestRepository(t *testing.T) (Repository, *gorm.DB) {
	db := storetest.NewDB(t, &Project{}, &orders.Order{})
	return NewRepository(db), db
}

func projectIDs(items []Project) []int64 {
	ids := make([]int64, 0, len(items))
	for _, p := range items {
		ids = append(ids, p.ID)
	}
	return ids
}

// seedProjects inserts ids 40..1. Multiples of 4 are REJECTED, multiples of
// 7 APPROVED, the rest INIT. Owners alternate between companies 1 and 2.
func seedProjects(t *testing.T, repo Repository) (pending []int64) {
	t.Helper()
	ctx := context.Background()
	for id := int64(40); id >= 1; id-- {
		status := StatusInit
		switch {
		case id%4 == 0:
			status = StatusRejected
		case id%7 == 0:
			status = StatusApproved
		}
		require.NoError(t, repo.Save(ctx, &Project{
			ID:             id,
			Name:           fmt.Sprintf("project-%02d", id),
			Status:         status,
			OwnerCompanyID: id%2 + 1,
		}))
		if status == StatusInit {
			pending = append([]int64{id}, pending...)
		}
	}
	return pending
}

func TestFindByStatusExcludesReviewedProjects(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()
	pending := seedProjects(t, repo)
	require.Greater(t, len(pending), pagination.DefaultSize)

	items, total, err := repo.FindByStatus(ctx, StatusInit, pagination.Pageable{Size: pagination.DefaultSize, Sort: "id"})
	require.NoError(t, err)

	assert.Equal(t, int64(len(pending)), total)
	assert.Equal(t, pending[:pagination.DefaultSize], projectIDs(items))
	for _, p := range items {
		assert.Equal(t, StatusInit, p.Status)
	}

	count, err := repo.CountByStatus(ctx, StatusRejected)
	require.NoError(t, err)
	assert.Equal(t, int64(10), count)
}

func TestRejectedProjectLeavesPendingQueue(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()
	pending := seedProjects(t, repo)

	project, err := repo.GetByID(ctx, pending[0])
	require.NoError(t, err)
	project.Status = StatusRejected
	require.NoError(t, repo.Save(ctx, project))

	items, total, err := repo.FindByStatus(ctx, StatusInit, pagination.Pageable{Size: pagination.MaxSize, Sort: "id"})
	require.NoError(t, err)
	assert.Equal(t, int64(len(pending)-1), total)
	assert.NotContains(t, projectIDs(items), pending[0])
}

func TestFindByOwner(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()
	seedProjects(t, repo)

	items, total, err := repo.FindByOwner(ctx, 1, pagination.Pageable{Size: 5, Sort: "name", Desc: true})
	require.NoError(t, err)

	assert.Equal(t, int64(20), total)
	assert.Equal(t, []int64{40, 38, 36, 34, 32}, projectIDs(items))
}

func TestFindAllWithIDFilter(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()
	seedProjects(t, repo)

	items, total, err := repo.FindAll(ctx, nil, pagination.Pageable{Size: 3, Sort: "id"})
	require.NoError(t, err)
	assert.Equal(t, int64(40), total)
	assert.Equal(t, []int64{1, 2, 3}, projectIDs(items))

	id := int64(12)
	items, total, err = repo.FindAll(ctx, &id, pagination.Pageable{Size: 3, Sort: "id"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, []int64{12}, projectIDs(items))
}

func TestFirstOrderIDAndDelete(t *testing.T) {
	repo, db := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &Project{ID: 1, Name: "Mangrove", Status: StatusInit, OwnerCompanyID: 1}))
	require.NoError(t, repo.Save(ctx, &Project{ID: 2, Name: "Peatland", Status: StatusInit, OwnerCompanyID: 1}))
	require.NoError(t, db.Create(&orders.Order{ID: 9, ProjectID: 1, BuyerCompanyID: 3, Quantity: 5, Status: orders.StatusInit}).Error)
	require.NoError(t, db.Create(&orders.Order{ID: 4, ProjectID: 1, BuyerCompanyID: 3, Quantity: 1, Status: orders.StatusDone}).Error)

	orderID, found, err := repo.FirstOrderID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(4), orderID)

	_, found, err = repo.FirstOrderID(ctx, 2)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.Delete(ctx, 2))
	_, err = repo.GetByID(ctx, 2)
	assert.True(t, errors.Is(err, store.ErrNotFound))

	assert.True(t, errors.Is(repo.Delete(ctx, 2), store.ErrNotFound))
}
