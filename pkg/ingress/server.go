package ingress

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/cascadeio/cascade/pkg/log"
	"github.com/cascadeio/cascade/pkg/metrics"
	"github.com/cascadeio/cascade/pkg/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// Server wraps a grpc.Server exposing the ingress RPCs over the
// network.
type Server struct {
	adapter *Adapter
	grpc    *grpc.Server
}

// NewServer builds an ingress gRPC server over adapter.
func NewServer(adapter *Adapter) *Server {
	s := &Server{
		adapter: adapter,
		grpc:    grpc.NewServer(grpc.UnaryInterceptor(metricsInterceptor)),
	}
	rpc.RegisterIngressServer(s.grpc, s.adapter)
	return s
}

// Start listens on addr and serves until the listener errors or Stop
// is called. It blocks.
func (s *Server) Start(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("ingress listen: %w", err)
	}
	componentLog := log.WithComponent(log.ComponentIngress)
	componentLog.Info().Str("addr", addr).Msg("ingress gRPC server listening")
	return s.grpc.Serve(lis)
}

// Stop gracefully drains and stops the gRPC server.
func (s *Server) Stop() {
	if s.grpc != nil {
		s.grpc.GracefulStop()
	}
}

// metricsInterceptor instruments every ingress RPC with
// cascade_api_requests_total and cascade_api_request_duration_seconds,
// labeled by method and by gRPC status code.
func metricsInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	method := methodName(info.FullMethod)
	start := time.Now()

	resp, err := handler(ctx, req)

	metrics.APIRequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	metrics.APIRequestsTotal.WithLabelValues(method, status.Code(err).String()).Inc()
	return resp, err
}

func methodName(fullMethod string) string {
	parts := strings.Split(fullMethod, "/")
	if len(parts) == 0 {
		return fullMethod
	}
	return parts[len(parts)-1]
}
