package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// ContainerObservationWire is one (container, model, raw status)
// fact as it appears on the wire.
type ContainerObservationWire struct {
	ID        string `json:"id"`
	ModelName string `json:"model_name"`
	Status    string `json:"status"`
}

// ObserveContainersRequest is the batch observation ingress RPC
// request.
type ObserveContainersRequest struct {
	Containers []ContainerObservationWire `json:"containers"`
}

// TransitionResultWire mirrors types.TransitionResult on the wire.
type TransitionResultWire struct {
	TransitionID string `json:"transition_id"`
	Outcome      string `json:"outcome"`
	Message      string `json:"message"`
	ErrorDetail  string `json:"error_detail,omitempty"`
}

// ObserveContainersResponse carries one transition result per model
// observed in the batch, plus one per malformed item.
type ObserveContainersResponse struct {
	Results []TransitionResultWire `json:"results"`
}

// ChangeStateRequest is the state-change ingress RPC request.
type ChangeStateRequest struct {
	ResourceKind string                 `json:"resource_kind"`
	ResourceName string                 `json:"resource_name"`
	TargetState  string                 `json:"target_state"`
	TransitionID string                 `json:"transition_id"`
	OriginTime   *timestamppb.Timestamp `json:"origin_time"`
	Source       string                 `json:"source"`
}

// ChangeStateResponse carries the single transition result for a
// state-change request.
type ChangeStateResponse struct {
	Result TransitionResultWire `json:"result"`
}

// IngressServer is implemented by whatever handles the two inbound
// RPCs the ingress exposes.
type IngressServer interface {
	ObserveContainers(ctx context.Context, req *ObserveContainersRequest) (*ObserveContainersResponse, error)
	ChangeState(ctx context.Context, req *ChangeStateRequest) (*ChangeStateResponse, error)
}

const ingressServiceName = "cascade.Ingress"

// IngressServiceDesc is the hand-written grpc.ServiceDesc standing in
// for a protoc-generated one: same dispatch mechanism, same
// grpc.Server plumbing, a JSON-codec body instead of protobuf wire
// format.
var IngressServiceDesc = grpc.ServiceDesc{
	ServiceName: ingressServiceName,
	HandlerType: (*IngressServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ObserveContainers",
			Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
				req := new(ObserveContainersRequest)
				if err := dec(req); err != nil {
					return nil, err
				}
				if interceptor == nil {
					return srv.(IngressServer).ObserveContainers(ctx, req)
				}
				info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ingressServiceName + "/ObserveContainers"}
				return interceptor(ctx, req, info, func(ctx context.Context, req any) (any, error) {
					return srv.(IngressServer).ObserveContainers(ctx, req.(*ObserveContainersRequest))
				})
			},
		},
		{
			MethodName: "ChangeState",
			Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
				req := new(ChangeStateRequest)
				if err := dec(req); err != nil {
					return nil, err
				}
				if interceptor == nil {
					return srv.(IngressServer).ChangeState(ctx, req)
				}
				info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ingressServiceName + "/ChangeState"}
				return interceptor(ctx, req, info, func(ctx context.Context, req any) (any, error) {
					return srv.(IngressServer).ChangeState(ctx, req.(*ChangeStateRequest))
				})
			},
		},
	},
	Streams: []grpc.StreamDesc{},
}

// RegisterIngressServer wires srv into s under IngressServiceDesc.
func RegisterIngressServer(s *grpc.Server, srv IngressServer) {
	s.RegisterService(&IngressServiceDesc, srv)
}

// IngressClient calls the ingress RPCs against a remote server.
type IngressClient struct {
	cc grpc.ClientConnInterface
}

// NewIngressClient wraps an established connection.
func NewIngressClient(cc grpc.ClientConnInterface) *IngressClient {
	return &IngressClient{cc: cc}
}

func (c *IngressClient) ObserveContainers(ctx context.Context, req *ObserveContainersRequest) (*ObserveContainersResponse, error) {
	resp := new(ObserveContainersResponse)
	fullMethod := "/" + ingressServiceName + "/ObserveContainers"
	if err := c.cc.Invoke(ctx, fullMethod, req, resp, grpc.CallContentSubtype(codecName)); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *IngressClient) ChangeState(ctx context.Context, req *ChangeStateRequest) (*ChangeStateResponse, error) {
	resp := new(ChangeStateResponse)
	fullMethod := "/" + ingressServiceName + "/ChangeState"
	if err := c.cc.Invoke(ctx, fullMethod, req, resp, grpc.CallContentSubtype(codecName)); err != nil {
		return nil, err
	}
	return resp, nil
}
