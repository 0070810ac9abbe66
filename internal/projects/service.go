package projects

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"carbon-shop/marketplace-backend/pkg/pagination"
)

// ErrReferenced is returned when a project cannot be deleted because other
// records still point at it.
var ErrReferenced = errors.New("project is still referenced")

// ReferencedWarning names the first record that blocks a delete.
type ReferencedWarning struct {
	Key    string  `json:"key"`
	Params []int64 `json:"params"`
}

// ReferencedError carries the warning and matches ErrReferenced.
type ReferencedError struct {
	ProjectID int64
	Warning   ReferencedWarning
}

func (e *ReferencedError) Error() string {
	return fmt.Sprintf("project %d: %s (%s)", e.ProjectID, ErrReferenced, e.Warning.Key)
}

func (e *ReferencedError) Unwrap() error { return ErrReferenced }

type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List pages through all projects. A non-empty filter is an exact project
// id; a filter that is not a number matches nothing.
func (s *Service) List(ctx context.Context, filter string, p pagination.Pageable) (pagination.Page[Project], error) {
	var id *int64
	if filter != "" {
		parsed, err := strconv.ParseInt(filter, 10, 64)
		if err != nil {
			return pagination.NewPage[Project](nil, p, 0), nil
		}
		id = &parsed
	}

	items, total, err := s.repo.FindAll(ctx, id, p)
	if err != nil {
		return pagination.Page[Project]{}, err
	}
	return pagination.NewPage(items, p, total), nil
}

// ListByOwner pages through the projects of one seller company.
func (s *Service) ListByOwner(ctx context.Context, ownerCompanyID int64, p pagination.Pageable) (pagination.Page[Project], error) {
	items, total, err := s.repo.FindByOwner(ctx, ownerCompanyID, p)
	if err != nil {
		return pagination.Page[Project]{}, err
	}
	return pagination.NewPage(items, p, total), nil
}

func (s *Service) Get(ctx context.Context, projectID int64) (*Project, error) {
	return s.repo.GetByID(ctx, projectID)
}

// ReferencedWarning reports the first order placed against the project, or
// nil when nothing references it.
func (s *Service) ReferencedWarning(ctx context.Context, projectID int64) (*ReferencedWarning, error) {
	if _, err := s.repo.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	orderID, found, err := s.repo.FirstOrderID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &ReferencedWarning{Key: "project.order.project.referenced", Params: []int64{orderID}}, nil
}

// Delete removes a project that no order references.
func (s *Service) Delete(ctx context.Context, projectID int64) error {
	warning, err := s.ReferencedWarning(ctx, projectID)
	if err != nil {
		return err
	}
	if warning != nil {
		return &ReferencedError{ProjectID: projectID, Warning: *warning}
	}

	if err := s.repo.Delete(ctx, projectID); err != nil {
		return err
	}
	s.logger.Info("Project deleted", zap.Int64("project_id", projectID))
	return nil
}
