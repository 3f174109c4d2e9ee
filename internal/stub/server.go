// Package stub is an in-memory lessons service implementing the remote
// contract the engine consumes. It backs cmd/catalogd for local development
// and the integration tests; it is not the production service.
package stub

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/lesson-shop/internal/catalog"
	"github.com/example/lesson-shop/internal/remote"
)

// Order is a recorded order as the stub stores it.
type Order struct {
	ID        string             `json:"id"`
	Reference string             `json:"reference"`
	Name      string             `json:"name"`
	Phone     string             `json:"phone"`
	Items     []remote.OrderItem `json:"items"`
	CreatedAt time.Time          `json:"createdAt"`
}

// Server holds the mutable lesson and order state.
type Server struct {
	mu      sync.RWMutex
	lessons []catalog.Lesson
	orders  map[string]Order
	logger  *zap.Logger
}

func New(logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		lessons: SeedLessons(),
		orders:  make(map[string]Order),
		logger:  logger,
	}
}

// Router returns the HTTP surface of the stub.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/lessons", s.listLessons)
	r.Get("/search", s.searchLessons)
	r.Post("/orders", s.createOrder)
	r.Put("/lessons/{id}", s.updateSpaces)
	r.Get("/health", s.health)
	return r
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

type listingResponse struct {
	Items []catalog.Lesson `json:"items"`
	Total int              `json:"total"`
}

// listLessons handles GET /lessons?sort=&dir=
func (s *Server) listLessons(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	lessons := append([]catalog.Lesson(nil), s.lessons...)
	s.mu.RUnlock()

	sortLessons(lessons, r.URL.Query().Get("sort"), r.URL.Query().Get("dir"))
	writeJSON(w, http.StatusOK, listingResponse{Items: lessons, Total: len(lessons)})
}

// searchLessons handles GET /search?q=&sort=&dir=
// The query matches case-insensitively against subject, location, and the
// string forms of price and spaces.
func (s *Server) searchLessons(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))

	s.mu.RLock()
	matched := make([]catalog.Lesson, 0, len(s.lessons))
	for _, l := range s.lessons {
		if q == "" || matches(l, q) {
			matched = append(matched, l)
		}
	}
	s.mu.RUnlock()

	sortLessons(matched, r.URL.Query().Get("sort"), r.URL.Query().Get("dir"))
	writeJSON(w, http.StatusOK, listingResponse{Items: matched, Total: len(matched)})
}

type orderRequest struct {
	Reference string             `json:"reference"`
	Name      string             `json:"name"`
	Phone     string             `json:"phone"`
	Items     []remote.OrderItem `json:"items"`
}

// createOrder handles POST /orders. Rejections come back as non-success
// statuses, as the contract requires.
func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if req.Name == "" || req.Phone == "" {
		writeError(w, http.StatusBadRequest, "name and phone are required")
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "order must contain at least one item")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range req.Items {
		if item.Qty <= 0 {
			writeError(w, http.StatusBadRequest, "item qty must be positive")
			return
		}
		if s.findLocked(item.LessonID) < 0 {
			writeError(w, http.StatusBadRequest, "unknown lesson: "+item.LessonID)
			return
		}
	}

	order := Order{
		ID:        uuid.New().String(),
		Reference: req.Reference,
		Name:      req.Name,
		Phone:     req.Phone,
		Items:     req.Items,
		CreatedAt: time.Now(),
	}
	s.orders[order.ID] = order

	s.logger.Info("order recorded",
		zap.String("id", order.ID),
		zap.Int("lines", len(order.Items)))
	writeJSON(w, http.StatusCreated, order)
}

type spacesRequest struct {
	Spaces int `json:"spaces"`
}

// updateSpaces handles PUT /lessons/{id}, setting authoritative capacity.
func (s *Server) updateSpaces(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req spacesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Spaces < 0 {
		writeError(w, http.StatusBadRequest, "spaces must be non-negative")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findLocked(id)
	if i < 0 {
		writeError(w, http.StatusNotFound, "lesson not found")
		return
	}
	s.lessons[i].Spaces = req.Spaces
	writeJSON(w, http.StatusOK, s.lessons[i])
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// OrderCount reports how many orders have been recorded. Test hook.
func (s *Server) OrderCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}

func (s *Server) findLocked(id string) int {
	for i, l := range s.lessons {
		if l.ID == id {
			return i
		}
	}
	return -1
}

func matches(l catalog.Lesson, q string) bool {
	return strings.Contains(strings.ToLower(l.Subject), q) ||
		strings.Contains(strings.ToLower(l.Location), q) ||
		strings.Contains(l.Price.String(), q) ||
		strings.Contains(strconv.Itoa(l.Spaces), q)
}

func sortLessons(lessons []catalog.Lesson, key, dir string) {
	if key == "" {
		key = remote.SortSubject
	}
	desc := dir == remote.DirDesc

	sort.SliceStable(lessons, func(i, j int) bool {
		a, b := lessons[i], lessons[j]
		var less bool
		switch key {
		case remote.SortLocation:
			less = strings.ToLower(a.Location) < strings.ToLower(b.Location)
		case remote.SortPrice:
			less = a.Price.LessThan(b.Price)
		case remote.SortSpaces:
			less = a.Spaces < b.Spaces
		default:
			less = strings.ToLower(a.Subject) < strings.ToLower(b.Subject)
		}
		if desc {
			return !less && !equalOn(a, b, key)
		}
		return less
	})
}

func equalOn(a, b catalog.Lesson, key string) bool {
	switch key {
	case remote.SortLocation:
		return strings.EqualFold(a.Location, b.Location)
	case remote.SortPrice:
		return a.Price.Equal(b.Price)
	case remote.SortSpaces:
		return a.Spaces == b.Spaces
	default:
		return strings.EqualFold(a.Subject, b.Subject)
	}
}
