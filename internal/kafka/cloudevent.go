package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CloudEvent is the envelope every event on the wire is wrapped in.
type CloudEvent struct {
	SpecVersion string          `json:"specversion"`
	ID          string          `json:"id"`
	Source      string          `json:"source"`
	Type        string          `json:"type"`
	Time        time.Time       `json:"time"`
	Data        json.RawMessage `json:"data"`
}

// NewCloudEvent wraps the data payload in a CloudEvent envelope.
func NewCloudEvent(source, eventType string, data interface{}) (CloudEvent, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return CloudEvent{}, fmt.Errorf("failed to marshal event data: %w", err)
	}
	return CloudEvent{
		SpecVersion: "1.0",
		ID:          uuid.NewString(),
		Source:      source,
		Type:        eventType,
		Time:        time.Now().UTC(),
		Data:        payload,
	}, nil
}

// ParseCloudEvent decodes a CloudEvent from its wire form.
func ParseCloudEvent(raw []byte) (CloudEvent, error) {
	var ce CloudEvent
	if err := json.Unmarshal(raw, &ce); err != nil {
		return CloudEvent{}, fmt.Errorf("failed to parse cloud event: %w", err)
	}
	return ce, nil
}

// ParseData decodes the event payload into v.
func (ce CloudEvent) ParseData(v interface{}) error {
	return json.Unmarshal(ce.Data, v)
}
