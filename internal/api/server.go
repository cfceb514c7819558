// Package api wires the JSON HTTP surface of the items service.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/webstack/services/backend/internal/db"
	"github.com/webstack/services/backend/internal/repo"
	"github.com/webstack/services/backend/pkg/metrics"
)

// Store is the persistence surface handlers depend on. Keeping it an
// interface lets handler tests run against an in-memory fake.
type Store interface {
	Ping(ctx context.Context) error
	List(ctx context.Context) ([]db.Item, error)
	Get(ctx context.Context, id int64) (*db.Item, error)
	Create(ctx context.Context, name, description string) (*db.Item, error)
	Update(ctx context.Context, id int64, upd repo.ItemUpdate) (*db.Item, error)
	Delete(ctx context.Context, id int64) error
	Reset(ctx context.Context) error
}

// EventPublisher emits item lifecycle events after successful writes.
type EventPublisher interface {
	PublishItemCreated(ctx context.Context, item *db.Item) error
	PublishItemUpdated(ctx context.Context, item *db.Item, fieldsChanged []string) error
	PublishItemDeleted(ctx context.Context, id int64) error
}

// Server holds handler dependencies.
type Server struct {
	store       Store
	events      EventPublisher
	log         *zap.Logger
	serviceName string
	hostname    string
}

// NewServer creates the API server. events may be nil, in which case no
// events are published.
func NewServer(store Store, events EventPublisher, log *zap.Logger, serviceName, hostname string) *Server {
	return &Server{
		store:       store,
		events:      events,
		log:         log,
		serviceName: serviceName,
		hostname:    hostname,
	}
}

// Register attaches all routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.wrap("index", s.handleIndex))
	mux.HandleFunc("GET /health", s.wrap("health", s.handleHealth))
	mux.Handle("GET /metrics", promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /items", s.wrap("list_items", s.handleListItems))
	mux.HandleFunc("POST /items", s.wrap("create_item", s.handleCreateItem))
	mux.HandleFunc("GET /items/{id}", s.wrap("get_item", s.handleGetItem))
	mux.HandleFunc("PUT /items/{id}", s.wrap("update_item", s.handleUpdateItem))
	mux.HandleFunc("DELETE /items/{id}", s.wrap("delete_item", s.handleDeleteItem))
	mux.HandleFunc("POST /reset", s.wrap("reset", s.handleReset))
}

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
