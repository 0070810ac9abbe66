package audit

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"carbon-shop/marketplace-backend/internal/notifications"
	"carbon-shop/marketplace-backend/internal/orders"
	"carbon-shop/marketplace-backend/internal/projects"
	"carbon-shop/marketplace-backend/internal/questions"
	"carbon-shop/marketplace-backend/internal/users"
	"carbon-shop/marketplace-backend/pkg/pagination"
	"carbon-shop/marketplace-backend/pkg/workflows"
)

// Service applies mediator audit triggers to orders, users, projects and
// questions. Each operation is a fetch, a mutation of at most two fields and
// a single save; there is no guard on the entity's current status and no
// locking, so concurrent calls on one id are last-write-wins.
type Service struct {
	orders    orders.Repository
	users     users.Repository
	projects  projects.Repository
	questions questions.Repository
	triggers  *workflows.TriggerTable
	publisher notifications.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewService creates the audit workflow service. A nil publisher disables
// event fan-out.
func NewService(
	orderRepo orders.Repository,
	userRepo users.Repository,
	projectRepo projects.Repository,
	questionRepo questions.Repository,
	publisher notifications.Publisher,
	logger *zap.Logger,
) *Service {
	if publisher == nil {
		publisher = notifications.NewMultiPublisher(logger)
	}
	return &Service{
		orders:    orderRepo,
		users:     userRepo,
		projects:  projectRepo,
		questions: questionRepo,
		triggers:  workflows.NewTriggerTable(),
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock replaces the time source used for approvedAt/rejectedAt.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// =====================================================
// Orders
// =====================================================

// StartProcessOrder moves an order to PROCESSING.
func (s *Service) StartProcessOrder(ctx context.Context, orderID int64) (*orders.Order, error) {
	return s.transitionOrder(ctx, orderID, workflows.ActionProcess)
}

// CancelOrder moves an order to CANCELLED.
func (s *Service) CancelOrder(ctx context.Context, orderID int64) (*orders.Order, error) {
	return s.transitionOrder(ctx, orderID, workflows.ActionCancel)
}

// DoneOrder moves an order to DONE.
func (s *Service) DoneOrder(ctx context.Context, orderID int64) (*orders.Order, error) {
	return s.transitionOrder(ctx, orderID, workflows.ActionDone)
}

func (s *Service) transitionOrder(ctx context.Context, orderID int64, action workflows.Action) (*orders.Order, error) {
	target, err := s.target(workflows.KindOrder, action)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	order.Status = orders.OrderStatus(target)
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}

	s.publish(ctx, workflows.KindOrder, action, order.ID, target, nil)
	return order, nil
}

// =====================================================
// Users
// =====================================================

// ApproveUser marks a registration APPROVED and stamps approvedAt.
func (s *Service) ApproveUser(ctx context.Context, userID int64) (*users.AppUser, error) {
	return s.transitionUser(ctx, userID, workflows.ActionApprove)
}

// RejectUser marks a registration REJECTED and stamps rejectedAt.
func (s *Service) RejectUser(ctx context.Context, userID int64) (*users.AppUser, error) {
	return s.transitionUser(ctx, userID, workflows.ActionReject)
}

func (s *Service) transitionUser(ctx context.Context, userID int64, action workflows.Action) (*users.AppUser, error) {
	target, err := s.target(workflows.KindUser, action)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	user.Status = users.UserStatus(target)
	if action == workflows.ActionApprove {
		user.ApprovedAt = &now
	} else {
		user.RejectedAt = &now
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	s.publish(ctx, workflows.KindUser, action, user.ID, target, nil)
	return user, nil
}

// ListPendingUsers pages through registrations still in INIT.
func (s *Service) ListPendingUsers(ctx context.Context, p pagination.Pageable) (pagination.Page[users.AppUser], error) {
	items, total, err := s.users.FindByStatus(ctx, users.StatusInit, p)
	if err != nil {
		return pagination.Page[users.AppUser]{}, err
	}
	return pagination.NewPage(items, p, total), nil
}

// =====================================================
// Projects
// =====================================================

// ApproveProject marks a project APPROVED and records the approving mediator.
func (s *Service) ApproveProject(ctx context.Context, projectID, actorID int64) error {
	return s.transitionProject(ctx, projectID, workflows.ActionApprove, &actorID)
}

// RejectProject marks a project REJECTED. auditBy is left as it was.
func (s *Service) RejectProject(ctx context.Context, projectID int64) error {
	return s.transitionProject(ctx, projectID, workflows.ActionReject, nil)
}

func (s *Service) transitionProject(ctx context.Context, projectID int64, action workflows.Action, actorID *int64) error {
	target, err := s.target(workflows.KindProject, action)
	if err != nil {
		return err
	}

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}

	project.Status = projects.ProjectStatus(target)
	if actorID != nil {
		project.AuditBy = actorID
	}
	if err := s.projects.Save(ctx, project); err != nil {
		return err
	}

	s.publish(ctx, workflows.KindProject, action, project.ID, target, actorID)
	return nil
}

// ListPendingProjects pages through projects still in INIT.
func (s *Service) ListPendingProjects(ctx context.Context, p pagination.Pageable) (pagination.Page[projects.Project], error) {
	items, total, err := s.projects.FindByStatus(ctx, projects.StatusInit, p)
	if err != nil {
		return pagination.Page[projects.Project]{}, err
	}
	return pagination.NewPage(items, p, total), nil
}

// =====================================================
// Questions
// =====================================================

// ValidateAnswer enforces the answer length bound in characters.
func ValidateAnswer(answer *string) error {
	if answer != nil && utf8.RuneCountInString(*answer) > MaxAnswerLength {
		return fmt.Errorf("%w: answer must be at most %d characters", ErrValidation, MaxAnswerLength)
	}
	return nil
}

// AnswerQuestion stores a mediator answer. A nil answer clears it, leaving
// the question pending again. Validation runs before the question is loaded.
func (s *Service) AnswerQuestion(ctx context.Context, questionID int64, answer *string) error {
	if err := ValidateAnswer(answer); err != nil {
		return err
	}
	return s.setAnswer(ctx, questionID, workflows.ActionAnswer, answer)
}

// DeleteQuestionAnswer clears the answer so the question is pending again.
func (s *Service) DeleteQuestionAnswer(ctx context.Context, questionID int64) error {
	return s.setAnswer(ctx, questionID, workflows.ActionDeleteAnswer, nil)
}

func (s *Service) setAnswer(ctx context.Context, questionID int64, action workflows.Action, answer *string) error {
	if _, err := s.target(workflows.KindQuestion, action); err != nil {
		return err
	}

	question, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		return err
	}

	question.Answer = answer
	if err := s.questions.Save(ctx, question); err != nil {
		return err
	}

	status := "UNANSWERED"
	if question.Answered() {
		status = "ANSWERED"
	}
	s.publish(ctx, workflows.KindQuestion, action, question.ID, status, nil)
	return nil
}

// ListUnansweredQuestions pages through questions with no answer.
func (s *Service) ListUnansweredQuestions(ctx context.Context, p pagination.Pageable) (pagination.Page[questions.Question], error) {
	items, total, err := s.questions.FindUnanswered(ctx, p)
	if err != nil {
		return pagination.Page[questions.Question]{}, err
	}
	return pagination.NewPage(items, p, total), nil
}

// =====================================================
// Queue summary
// =====================================================

// PendingSummary counts the three moderation queues.
func (s *Service) PendingSummary(ctx context.Context) (*PendingSummary, error) {
	pendingUsers, err := s.users.CountByStatus(ctx, users.StatusInit)
	if err != nil {
		return nil, err
	}
	pendingProjects, err := s.projects.CountByStatus(ctx, projects.StatusInit)
	if err != nil {
		return nil, err
	}
	unanswered, err := s.questions.CountUnanswered(ctx)
	if err != nil {
		return nil, err
	}
	return &PendingSummary{
		PendingUsers:        pendingUsers,
		PendingProjects:     pendingProjects,
		UnansweredQuestions: unanswered,
	}, nil
}

func (s *Service) target(kind workflows.Kind, action workflows.Action) (string, error) {
	target, ok := s.triggers.Target(kind, action)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTrigger, workflows.Trigger{Kind: kind, Action: action})
	}
	return target, nil
}

// publish runs after the store write; delivery failures never fail the call.
func (s *Service) publish(ctx context.Context, kind workflows.Kind, action workflows.Action, id int64, status string, actorID *int64) {
	event := notifications.NewTransitionEvent(string(kind), string(action), id, status, actorID, s.now())
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish audit event", zap.Error(err), zap.String("event_id", event.ID.String()))
	}
}
