package nats

import (
	"encoding/json"

	"github.com/beelight/beelight/pkg/model"
)

// Subject constants
const (
	SubjectObservationWrite = "beelight.observations.write"
	SubjectPredictRequest   = "beelight.predict.request"
	SubjectPredictResponse  = "beelight.predict.response"
)

// ObservationMsg represents a single observation write request. IsActive
// carries the publisher's view of user activity at capture time; it feeds
// sample weighting, not the observation record itself.
type ObservationMsg struct {
	Observation *model.Observation `json:"observation"`
	IsActive    bool               `json:"is_active"`
}

// ObservationBatchMsg represents a batch observation write request
type ObservationBatchMsg struct {
	Observations []model.Observation `json:"observations"`
}

// PredictRequestMsg asks the agent for a brightness prediction given the
// current sensor and activity state.
type PredictRequestMsg struct {
	AmbientLight int   `json:"ambient_light"`
	Timestamp    int64 `json:"timestamp"`
	IsActive     bool  `json:"is_active"`
}

// PredictResponseMsg carries the predicted brightness. OK is false when the
// model had no usable data for the request.
type PredictResponseMsg struct {
	Brightness float64 `json:"brightness"`
	OK         bool    `json:"ok"`
}

// Encode serializes a message to JSON bytes
func Encode(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// DecodeObservation deserializes an ObservationMsg from JSON bytes
func DecodeObservation(data []byte) (*ObservationMsg, error) {
	var msg ObservationMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// DecodeObservationBatch deserializes an ObservationBatchMsg from JSON bytes
func DecodeObservationBatch(data []byte) (*ObservationBatchMsg, error) {
	var msg ObservationBatchMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// DecodePredictRequest deserializes a PredictRequestMsg from JSON bytes
func DecodePredictRequest(data []byte) (*PredictRequestMsg, error) {
	var msg PredictRequestMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// DecodePredictResponse deserializes a PredictResponseMsg from JSON bytes
func DecodePredictResponse(data []byte) (*PredictResponseMsg, error) {
	var msg PredictResponseMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
