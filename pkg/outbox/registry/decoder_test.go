package registry

import (
	"encoding/json"
	"testing"

	"github.com/netwave-iq/netwave-backend/pkg/enums"
)

func TestDecoderRegistry(t *testing.T) {
	reg := NewDecoderRegistry()
	reg.Register(enums.EventBookingConfirmed, 1, func(payload json.RawMessage) (interface{}, error) {
		var decoded map[string]string
		if err := json.Unmarshal(payload, &decoded); err != nil {
			return nil, err
		}
		return decoded, nil
	})

	input := json.RawMessage(`{"transaction_id":"zc-1"}`)
	output, err := reg.Decode(enums.EventBookingConfirmed, 1, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outMap, ok := output.(map[string]string); !ok || outMap["transaction_id"] != "zc-1" {
		t.Fatalf("unexpected output %+v", output)
	}
}
