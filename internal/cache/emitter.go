package cache

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mirrorlabs/nft-mirror/internal/adapter"
	"github.com/mirrorlabs/nft-mirror/internal/domain"
	"github.com/mirrorlabs/nft-mirror/internal/logger"
)

// SubjectCollectionRefreshed is the JetStream subject for refresh completion events
const SubjectCollectionRefreshed = "events.collection.refreshed"

// Emitter publishes cache events to downstream consumers
//
//go:generate mockgen -source=emitter.go -destination=../mocks/emitter.go -package=mocks -mock_names=Emitter=MockEmitter
type Emitter interface {
	Emit(ctx context.Context, event domain.CacheEvent) error
}

type jetStreamEmitter struct {
	js   adapter.JetStream
	json adapter.JSON
}

// NewEmitter creates a JetStream-backed event emitter
func NewEmitter(js adapter.JetStream, json adapter.JSON) Emitter {
	return &jetStreamEmitter{js: js, json: json}
}

// Emit publishes the event on the refresh subject. Failures are reported to
// the caller but a refresh that already persisted its data is never rolled
// back for a lost event.
func (e *jetStreamEmitter) Emit(ctx context.Context, event domain.CacheEvent) error {
	payload, err := e.json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal cache event: %w", err)
	}

	if _, err := e.js.Publish(ctx, SubjectCollectionRefreshed, payload); err != nil {
		return fmt.Errorf("failed to publish cache event: %w", err)
	}

	logger.DebugCtx(ctx, "cache event published",
		zap.String("subject", SubjectCollectionRefreshed),
		zap.String("event_id", event.ID),
		zap.String("contract_address", event.ContractAddress))

	return nil
}
