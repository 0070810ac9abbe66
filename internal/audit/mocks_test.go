package audit

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"carbon-shop/marketplace-backend/internal/notifications"
	"carbon-shop/marketplace-backend/internal/orders"
	"carbon-shop/marketplace-backend/internal/projects"
	"carbon-shop/marketplace-backend/internal/questions"
	"carbon-shop/marketplace-backend/internal/users"
	"carbon-shop/marketplace-backend/pkg/pagination"
)

// MockOrderRepository is a mock implementation of orders.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id int64) (*orders.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orders.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *orders.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of users.Repository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*users.AppUser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.AppUser), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *users.AppUser) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByStatus(ctx context.Context, status users.UserStatus, p pagination.Pageable) ([]users.AppUser, int64, error) {
	args := m.Called(ctx, status, p)
	return args.Get(0).([]users.AppUser), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) CountByStatus(ctx context.Context, status users.UserStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) CompanyExists(ctx context.Context, companyID int64) (bool, error) {
	args := m.Called(ctx, companyID)
	return args.Bool(0), args.Error(1)
}

// MockProjectRepository is a mock implementation of projects.Repository
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) GetByID(ctx context.Context, id int64) (*projects.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*projects.Project), args.Error(1)
}

func (m *MockProjectRepository) Save(ctx context.Context, project *projects.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProjectRepository) FindAll(ctx context.Context, id *int64, p pagination.Pageable) ([]projects.Project, int64, error) {
	args := m.Called(ctx, id, p)
	return args.Get(0).([]projects.Project), args.Get(1).(int64), args.Error(2)
}

func (m *MockProjectRepository) FindByOwner(ctx context.Context, ownerCompanyID int64, p pagination.Pageable) ([]projects.Project, int64, error) {
	args := m.Called(ctx, ownerCompanyID, p)
	return args.Get(0).([]projects.Project), args.Get(1).(int64), args.Error(2)
}

func (m *MockProjectRepository) FirstOrderID(ctx context.Context, projectID int64) (int64, bool, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *MockProjectRepository) FindByStatus(ctx context.Context, status projects.ProjectStatus, p pagination.Pageable) ([]projects.Project, int64, error) {
	args := m.Called(ctx, status, p)
	return args.Get(0).([]projects.Project), args.Get(1).(int64), args.Error(2)
}

func (m *MockProjectRepository) CountByStatus(ctx context.Context, status projects.ProjectStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

// MockQuestionRepository is a mock implementation of questions.Repository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) GetByID(ctx context.Context, id int64) (*questions.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*questions.Question), args.Error(1)
}

func (m *MockQuestionRepository) Save(ctx context.Context, question *questions.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockQuestionRepository) FindUnanswered(ctx context.Context, p pagination.Pageable) ([]questions.Question, int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).([]questions.Question), args.Get(1).(int64), args.Error(2)
}

func (m *MockQuestionRepository) CountUnanswered(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// recordingPublisher keeps every event it is handed.
type recordingPublisher struct {
	mu     sync.Mutex
	events []notifications.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event notifications.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Events() []notifications.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]notifications.Event(nil), p.events...)
}

type fixture struct {
	orders    *MockOrderRepository
	users     *MockUserRepository
	projects  *MockProjectRepository
	questions *MockQuestionRepository
	events    *recordingPublisher
	service   *Service
}

func newFixture() *fixture {
	f := &fixture{
		orders:    new(MockOrderRepository),
		users:     new(MockUserRepository),
		projects:  new(MockProjectRepository),
		questions: new(MockQuestionRepository),
		events:    &recordingPublisher{},
	}
	f.service = NewService(f.orders, f.users, f.projects, f.questions, f.events, zap.NewNop())
	return f
}

func int64Ptr(v int64) *int64 { return &v }

func strPtr(v string) *string { return &v }
