package mocks

import (
	"context"
	"sync"

	"github.com/example/lesson-shop/internal/catalog"
	"github.com/example/lesson-shop/internal/remote"
)

// MockService is a mock implementation of remote.Service for testing.
type MockService struct {
	mu sync.Mutex

	// Canned responses
	Lessons       []catalog.Lesson
	SearchResults []catalog.Lesson

	// Errors to return
	FetchErr  error
	SearchErr error
	OrderErr  error
	SpacesErr map[string]error // per lesson id

	// Optional hooks; when set they take over the corresponding call
	FetchCallback func(ctx context.Context, sort, dir string) ([]catalog.Lesson, error)
	OrderCallback func(ctx context.Context, req remote.OrderRequest) error

	// Recorded calls
	FetchCalls  []FetchCall
	SearchCalls []SearchCall
	OrderCalls  []remote.OrderRequest
	SpacesCalls []SpacesCall
}

type FetchCall struct {
	Sort string
	Dir  string
}

type SearchCall struct {
	Query string
	Sort  string
	Dir   string
}

type SpacesCall struct {
	LessonID string
	Spaces   int
}

func NewMockService() *MockService {
	return &MockService{SpacesErr: make(map[string]error)}
}

func (m *MockService) FetchLessons(ctx context.Context, sort, dir string) ([]catalog.Lesson, error) {
	m.mu.Lock()
	m.FetchCalls = append(m.FetchCalls, FetchCall{Sort: sort, Dir: dir})
	cb := m.FetchCallback
	lessons, err := m.Lessons, m.FetchErr
	m.mu.Unlock()

	if cb != nil {
		return cb(ctx, sort, dir)
	}
	if err != nil {
		return nil, err
	}
	return lessons, nil
}

func (m *MockService) SearchLessons(ctx context.Context, query, sort, dir string) ([]catalog.Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SearchCalls = append(m.SearchCalls, SearchCall{Query: query, Sort: sort, Dir: dir})
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	if m.SearchResults != nil {
		return m.SearchResults, nil
	}
	return m.Lessons, nil
}

func (m *MockService) CreateOrder(ctx context.Context, req remote.OrderRequest) error {
	m.mu.Lock()
	m.OrderCalls = append(m.OrderCalls, req)
	cb := m.OrderCallback
	err := m.OrderErr
	m.mu.Unlock()

	if cb != nil {
		return cb(ctx, req)
	}
	return err
}

func (m *MockService) UpdateSpaces(ctx context.Context, lessonID string, spaces int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SpacesCalls = append(m.SpacesCalls, SpacesCall{LessonID: lessonID, Spaces: spaces})
	return m.SpacesErr[lessonID]
}

// CallCounts returns how many calls of each kind have been recorded.
func (m *MockService) CallCounts() (fetch, search, order, spaces int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.FetchCalls), len(m.SearchCalls), len(m.OrderCalls), len(m.SpacesCalls)
}
