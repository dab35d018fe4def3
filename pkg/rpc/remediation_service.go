package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// ReconcileRequest is the outbound reconcile RPC sent to the external
// remediation service.
type ReconcileRequest struct {
	PackageName   string                 `json:"package_name"`
	ObservedState string                 `json:"observed_state"`
	TriggeredAt   *timestamppb.Timestamp `json:"triggered_at"`
}

// ReconcileResponse is an acknowledgement only; the dispatcher does
// not await remediation completion.
type ReconcileResponse struct {
	Acknowledged bool `json:"acknowledged"`
}

// RemediationServer is implemented by the external remediation
// service. It has no home in this module other than as a target type
// for the hand-written client below and as the interface a test
// double implements.
type RemediationServer interface {
	Reconcile(ctx context.Context, req *ReconcileRequest) (*ReconcileResponse, error)
}

const remediationServiceName = "cascade.Remediation"

// RemediationServiceDesc is the hand-written descriptor for the
// outbound reconcile RPC, mirrored so a fake remediation service used
// in tests can be wired with RegisterRemediationServer the same way a
// real one would be.
var RemediationServiceDesc = grpc.ServiceDesc{
	ServiceName: remediationServiceName,
	HandlerType: (*RemediationServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Reconcile",
			Handler: func(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
				req := new(ReconcileRequest)
				if err := dec(req); err != nil {
					return nil, err
				}
				return srv.(RemediationServer).Reconcile(ctx, req)
			},
		},
	},
	Streams: []grpc.StreamDesc{},
}

// RegisterRemediationServer wires srv into s under RemediationServiceDesc.
func RegisterRemediationServer(s *grpc.Server, srv RemediationServer) {
	s.RegisterService(&RemediationServiceDesc, srv)
}

// RemediationClient calls the reconcile RPC against the external
// remediation service.
type RemediationClient struct {
	cc grpc.ClientConnInterface
}

// NewRemediationClient wraps an established connection.
func NewRemediationClient(cc grpc.ClientConnInterface) *RemediationClient {
	return &RemediationClient{cc: cc}
}

func (c *RemediationClient) Reconcile(ctx context.Context, req *ReconcileRequest) (*ReconcileResponse, error) {
	resp := new(ReconcileResponse)
	fullMethod := "/" + remediationServiceName + "/Reconcile"
	if err := c.cc.Invoke(ctx, fullMethod, req, resp, grpc.CallContentSubtype(codecName)); err != nil {
		return nil, err
	}
	return resp, nil
}
