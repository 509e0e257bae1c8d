package data

import (
	"context"

	"github.com/beelight/beelight/pkg/model"
)

// ObservationProvider supplies batches of historical observations for
// warm-start training and rebinning.
type ObservationProvider interface {
	// FetchObservations retrieves all available observations, ordered by
	// timestamp (oldest first).
	FetchObservations(ctx context.Context) ([]model.Observation, error)
}

// ObservationSink accepts observations for durable appending.
type ObservationSink interface {
	// AppendObservation appends a single observation to the record log.
	AppendObservation(ctx context.Context, obs model.Observation) error
}
