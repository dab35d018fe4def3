package rpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONCodecRoundTrip(t *testing.T) {
	codec := jsonCodec{}
	original := &ObserveContainersRequest{
		Containers: []ContainerObservationWire{
			{ID: "c1", ModelName: "m1", Status: "running"},
		},
	}

	data, err := codec.Marshal(original)
	require.NoError(t, err)

	var decoded ObserveContainersRequest
	require.NoError(t, codec.Unmarshal(data, &decoded))
	assert.Equal(t, *original, decoded)
}

func TestJSONCodecName(t *testing.T) {
	assert.Equal(t, "json", jsonCodec{}.Name())
}
