// Package rpc holds the transport glue for the two gRPC services this
// module uses: the inbound ingress service and the outbound
// remediation service. See codec.go for why a JSON grpc.Codec stands
// in for protoc-generated protobuf bindings.
package rpc
