package remediation

import (
	"context"
	"fmt"

	"github.com/cascadeio/cascade/pkg/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

// Client wraps a gRPC connection to the external remediation service
// and satisfies Reconciler.
type Client struct {
	conn *grpc.ClientConn
	rpc  *rpc.RemediationClient
}

// DialConfig controls how Dial connects to the remediation service.
type DialConfig struct {
	Addr string
	// TLS, when non-nil, is used instead of insecure transport
	// credentials.
	TLS credentials.TransportCredentials
}

// Dial connects to the remediation service at cfg.Addr.
func Dial(cfg DialConfig) (*Client, error) {
	creds := cfg.TLS
	if creds == nil {
		creds = insecure.NewCredentials()
	}

	conn, err := grpc.NewClient(cfg.Addr, grpc.WithTransportCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("dial remediation service: %w", err)
	}

	return &Client{
		conn: conn,
		rpc:  rpc.NewRemediationClient(conn),
	}, nil
}

// Reconcile issues the reconcile RPC against the connected service.
func (c *Client) Reconcile(ctx context.Context, req *rpc.ReconcileRequest) (*rpc.ReconcileResponse, error) {
	return c.rpc.Reconcile(ctx, req)
}

// Close tears down the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
