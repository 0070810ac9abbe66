package users

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrCompanyTaken is returned when a company is already linked to another user.
var ErrCompanyTaken = errors.New("company is already assigned to another user")

// Service manages user profile fields outside the audit workflow.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ValidateCompany reports whether companyID may be assigned to the user
// identified by currentUserID. A nil company is always valid, and so is the
// user's own current company. currentUserID is nil when no user exists yet.
func (s *Service) ValidateCompany(ctx context.Context, currentUserID *int64, companyID *int64) error {
	if companyID == nil {
		return nil
	}

	if currentUserID != nil {
		current, err := s.repo.GetByID(ctx, *currentUserID)
		if err != nil {
			return err
		}
		if current.CompanyID != nil && *current.CompanyID == *companyID {
			return nil
		}
	}

	exists, err := s.repo.CompanyExists(ctx, *companyID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("company %d: %w", *companyID, ErrCompanyTaken)
	}
	return nil
}

// UpdateCompany links a user to a company, or unlinks when companyID is nil.
func (s *Service) UpdateCompany(ctx context.Context, userID int64, companyID *int64) (*AppUser, error) {
	if err := s.ValidateCompany(ctx, &userID, companyID); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.CompanyID = companyID
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User company updated", zap.Int64("user_id", userID), zap.Int64p("company_id", companyID))
	return user, nil
}
