// Package grpcops exposes an operational gRPC endpoint next to the HTTP API.
//
// It serves the standard grpc.health.v1 health service, backed by live
// checks against the storefront's dependencies, and enables reflection so
// grpcurl works without proto files. Handlers run behind panic-recovery,
// logging and Prometheus interceptors.
package grpcops

import (
	"context"
	"fmt"
	"net"
	"runtime/debug"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/siddharthaBojanki/greenCart/pkg/logger"
	"github.com/siddharthaBojanki/greenCart/pkg/metrics"
)

var (
	rpcHandled = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "greencart",
		Name:      "grpc_server_handled_total",
		Help:      "Completed gRPC calls by method and code.",
	}, []string{"grpc_method", "grpc_code"})

	rpcDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "greencart",
		Name:      "grpc_server_handling_seconds",
		Help:      "gRPC response latency in seconds.",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"grpc_method"})
)

func init() {
	// Served by the HTTP /metrics endpoint, which scrapes the app registry
	// rather than prometheus's global default.
	metrics.MustRegister(rpcHandled, rpcDuration)
}

// HealthCheck probes one dependency; return nil when it is serving.
type HealthCheck func(ctx context.Context) error

func recoveryInterceptor(
	ctx context.Context,
	req interface{},
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (resp interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("grpcops: panic recovered",
				"method", info.FullMethod,
				"panic", r,
				"stack", string(debug.Stack()),
			)
			err = status.Errorf(codes.Internal, "internal server error")
		}
	}()
	return handler(ctx, req)
}

func loggingInterceptor(
	ctx context.Context,
	req interface{},
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	code := codes.OK
	if err != nil {
		code = status.Code(err)
	}
	logger.Info("grpcops: request",
		"method", info.FullMethod,
		"duration_ms", time.Since(start).Milliseconds(),
		"code", code.String(),
	)
	return resp, err
}

func metricsInterceptor(
	ctx context.Context,
	req interface{},
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	code := codes.OK
	if err != nil {
		code = status.Code(err)
	}
	rpcHandled.WithLabelValues(info.FullMethod, code.String()).Inc()
	rpcDuration.WithLabelValues(info.FullMethod).Observe(time.Since(start).Seconds())
	return resp, err
}

// chainUnary composes interceptors outermost-first.
func chainUnary(interceptors ...grpc.UnaryServerInterceptor) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		chain := handler
		for i := len(interceptors) - 1; i >= 0; i-- {
			i := i
			next := chain
			chain = func(ctx context.Context, req interface{}) (interface{}, error) {
				return interceptors[i](ctx, req, info, next)
			}
		}
		return chain(ctx, req)
	}
}

// healthServer answers grpc.health.v1 checks. The empty service name
// aggregates all registered checks; a named service runs just that check.
type healthServer struct {
	grpc_health_v1.UnimplementedHealthServer
	checks map[string]HealthCheck
}

func (h *healthServer) serving(ctx context.Context, service string) grpc_health_v1.HealthCheckResponse_ServingStatus {
	probe, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if service == "" {
		for _, check := range h.checks {
			if err := check(probe); err != nil {
				return grpc_health_v1.HealthCheckResponse_NOT_SERVING
			}
		}
		return grpc_health_v1.HealthCheckResponse_SERVING
	}

	check, ok := h.checks[service]
	if !ok {
		return grpc_health_v1.HealthCheckResponse_SERVICE_UNKNOWN
	}
	if err := check(probe); err != nil {
		return grpc_health_v1.HealthCheckResponse_NOT_SERVING
	}
	return grpc_health_v1.HealthCheckResponse_SERVING
}

func (h *healthServer) Check(
	ctx context.Context,
	req *grpc_health_v1.HealthCheckRequest,
) (*grpc_health_v1.HealthCheckResponse, error) {
	st := h.serving(ctx, req.GetService())
	if st == grpc_health_v1.HealthCheckResponse_SERVICE_UNKNOWN {
		return nil, status.Errorf(codes.NotFound, "unknown service %q", req.GetService())
	}
	return &grpc_health_v1.HealthCheckResponse{Status: st}, nil
}

func (h *healthServer) Watch(
	req *grpc_health_v1.HealthCheckRequest,
	stream grpc_health_v1.Health_WatchServer,
) error {
	return stream.Send(&grpc_health_v1.HealthCheckResponse{
		Status: h.serving(stream.Context(), req.GetService()),
	})
}

// Start listens on the given port and serves in the background. checks maps
// dependency names (e.g. "mongo", "redis") to their probes.
func Start(port string, checks map[string]HealthCheck) (*grpc.Server, error) {
	addr := ":" + port

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("grpcops: listen on %s: %w", addr, err)
	}

	srv := grpc.NewServer(
		grpc.UnaryInterceptor(
			chainUnary(recoveryInterceptor, loggingInterceptor, metricsInterceptor),
		),
		grpc.MaxRecvMsgSize(4*1024*1024),
		grpc.MaxSendMsgSize(4*1024*1024),
	)

	grpc_health_v1.RegisterHealthServer(srv, &healthServer{checks: checks})
	reflection.Register(srv)

	logger.Info("grpcops: server starting", "addr", addr)

	go func() {
		if err := srv.Serve(lis); err != nil {
			logger.Error("grpcops: serve error", "error", err)
		}
	}()

	return srv, nil
}

// Stop waits for in-flight RPCs to finish, then shuts the server down.
func Stop(srv *grpc.Server) {
	if srv == nil {
		return
	}
	logger.Info("grpcops: server shutting down")
	srv.GracefulStop()
}
