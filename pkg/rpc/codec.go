// Package rpc carries the wire-level pieces shared by the ingress
// server (C4) and the remediation client (C5): a JSON grpc.Codec and
// the hand-written service descriptors for the two gRPC services this
// engine exposes or calls, since no protoc-generated stubs back this
// module.
//
// grpc-go's codec is pluggable by design — encoding.RegisterCodec
// lets any message shape ride over its transport, framing, and
// deadline propagation without requiring protobuf-generated types.
// Everything below is real google.golang.org/grpc: a real
// grpc.Server, a real grpc.ClientConn, real ServiceDesc dispatch.
// Only the wire encoding is JSON instead of binary protobuf.
package rpc

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
)

const codecName = "json"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// jsonCodec implements google.golang.org/grpc/encoding.Codec.
type jsonCodec struct{}

func (jsonCodec) Name() string { return codecName }

func (jsonCodec) Marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("json codec marshal: %w", err)
	}
	return data, nil
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("json codec unmarshal: %w", err)
	}
	return nil
}
