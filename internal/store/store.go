package store

import (
	"context"
	"time"

	"github.com/mirrorlabs/nft-mirror/internal/domain"
	"github.com/mirrorlabs/nft-mirror/internal/store/schema"
)

// UpsertCollectionInput holds the fields for creating or updating a collection
type UpsertCollectionInput struct {
	ContractAddress string
	Name            string
	TokenType       domain.TokenType
	TotalSupply     *int64
}

// UpsertNFTsResult reports how many records in a batch were written versus failed
type UpsertNFTsResult struct {
	Written int
	Failed  int
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// GetCollectionByAddress retrieves a collection by its lowercase contract address
	GetCollectionByAddress(ctx context.Context, contractAddress string) (*schema.Collection, error)
	// GetCollectionByID retrieves a collection by its primary key
	GetCollectionByID(ctx context.Context, collectionID int64) (*schema.Collection, error)
	// UpsertCollection creates or updates a collection keyed by contract address
	UpsertCollection(ctx context.Context, input UpsertCollectionInput) (*schema.Collection, error)
	// TouchLastRefresh updates the collection's last_refresh_at timestamp
	TouchLastRefresh(ctx context.Context, collectionID int64, at time.Time) error
	// SetRefreshCooldown sets the collection's refresh_cooldown_until timestamp
	SetRefreshCooldown(ctx context.Context, collectionID int64, until time.Time) error

	// UpsertNFTs upserts token records keyed by (collection_id, token_id),
	// reporting partial failures as counts
	UpsertNFTs(ctx context.Context, collectionID int64, records []*domain.NFTRecord) (UpsertNFTsResult, error)
	// CountNFTs returns the number of mirrored tokens in a collection
	CountNFTs(ctx context.Context, collectionID int64) (int64, error)
	// ListNFTs returns mirrored tokens for a collection, ordered by token_id
	ListNFTs(ctx context.Context, collectionID int64, limit, offset int) ([]*schema.NFT, error)

	// UpsertFetchError records a failed fetch, incrementing retry_count on repeat
	UpsertFetchError(ctx context.Context, collectionID int64, tokenID string, errType domain.FetchErrorType, message string) error
	// DeleteFetchError removes a ledger row after a successful retry
	DeleteFetchError(ctx context.Context, collectionID int64, tokenID string, errType domain.FetchErrorType) error
	// ClearFetchErrors removes every ledger row for a token once a fetch succeeds
	ClearFetchErrors(ctx context.Context, collectionID int64, tokenID string) error
	// ListFetchErrors returns all outstanding ledger rows for a collection
	ListFetchErrors(ctx context.Context, collectionID int64) ([]*schema.NFTFetchError, error)
	// ListRetryableFetchErrors returns ledger rows below the retry ceiling
	ListRetryableFetchErrors(ctx context.Context, limit int, maxRetryCount int) ([]*schema.NFTFetchError, error)
}
