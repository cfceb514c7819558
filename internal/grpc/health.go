// Package grpc exposes the standard grpc.health.v1 probe over the same
// database check the HTTP health endpoint uses.
package grpc

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// Pinger probes a backing dependency for reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthServer implements the gRPC health checking protocol.
type HealthServer struct {
	grpc_health_v1.UnimplementedHealthServer
	store Pinger
	log   *zap.Logger
}

// NewHealthServer creates a new health check server.
func NewHealthServer(store Pinger, log *zap.Logger) *HealthServer {
	return &HealthServer{
		store: store,
		log:   log,
	}
}

// Check reports SERVING while the database answers the liveness probe.
func (h *HealthServer) Check(ctx context.Context, req *grpc_health_v1.HealthCheckRequest) (*grpc_health_v1.HealthCheckResponse, error) {
	if err := h.store.Ping(ctx); err != nil {
		h.log.Error("Database health check failed", zap.Error(err))
		return &grpc_health_v1.HealthCheckResponse{
			Status: grpc_health_v1.HealthCheckResponse_NOT_SERVING,
		}, nil
	}

	return &grpc_health_v1.HealthCheckResponse{
		Status: grpc_health_v1.HealthCheckResponse_SERVING,
	}, nil
}

// Watch sends the current status once and returns.
func (h *HealthServer) Watch(req *grpc_health_v1.HealthCheckRequest, server grpc_health_v1.Health_WatchServer) error {
	status := grpc_health_v1.HealthCheckResponse_SERVING
	if err := h.store.Ping(server.Context()); err != nil {
		status = grpc_health_v1.HealthCheckResponse_NOT_SERVING
	}
	return server.Send(&grpc_health_v1.HealthCheckResponse{Status: status})
}
