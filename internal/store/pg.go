package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mirrorlabs/nft-mirror/internal/domain"
	"github.com/mirrorlabs/nft-mirror/internal/logger"
	"github.com/mirrorlabs/nft-mirror/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// Migrate runs schema auto-migration for all mirrored tables
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&schema.Collection{},
		&schema.NFT{},
		&schema.NFTFetchError{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to defaults:
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	// database/sql treats MaxIdleConns above MaxOpenConns as wasted
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// GetCollectionByAddress retrieves a collection by its lowercase contract address
func (s *pgStore) GetCollectionByAddress(ctx context.Context, contractAddress string) (*schema.Collection, error) {
	var collection schema.Collection
	err := s.db.WithContext(ctx).
		Where("contract_address = ?", domain.NormalizeContractAddress(contractAddress)).
		First(&collection).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}
	return &collection, nil
}

// GetCollectionByID retrieves a collection by its primary key
func (s *pgStore) GetCollectionByID(ctx context.Context, collectionID int64) (*schema.Collection, error) {
	var collection schema.Collection
	err := s.db.WithContext(ctx).First(&collection, collectionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}
	return &collection, nil
}

// UpsertCollection creates or updates a collection keyed by contract address.
// Mutable fields are overwritten; the contract address never changes.
func (s *pgStore) UpsertCollection(ctx context.Context, input UpsertCollectionInput) (*schema.Collection, error) {
	collection := schema.Collection{
		ContractAddress: domain.NormalizeContractAddress(input.ContractAddress),
		Name:            input.Name,
		TokenType:       input.TokenType,
		TotalSupply:     input.TotalSupply,
	}
	if collection.TokenType == "" {
		collection.TokenType = domain.TokenTypeUnknown
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "contract_address"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "token_type", "total_supply", "updated_at"}),
	}).Create(&collection).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert collection: %w", err)
	}

	// ON CONFLICT DO UPDATE does not reliably populate the ID on all paths,
	// so re-read by the natural key
	if collection.ID == 0 {
		return s.GetCollectionByAddress(ctx, input.ContractAddress)
	}

	return &collection, nil
}

// TouchLastRefresh updates the collection's last_refresh_at timestamp
func (s *pgStore) TouchLastRefresh(ctx context.Context, collectionID int64, at time.Time) error {
	err := s.db.WithContext(ctx).
		Model(&schema.Collection{}).
		Where("id = ?", collectionID).
		Updates(map[string]interface{}{
			"last_refresh_at": at,
			"updated_at":      at,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to touch last refresh: %w", err)
	}
	return nil
}

// SetRefreshCooldown sets the collection's refresh_cooldown_until timestamp
func (s *pgStore) SetRefreshCooldown(ctx context.Context, collectionID int64, until time.Time) error {
	err := s.db.WithContext(ctx).
		Model(&schema.Collection{}).
		Where("id = ?", collectionID).
		Update("refresh_cooldown_until", until).Error
	if err != nil {
		return fmt.Errorf("failed to set refresh cooldown: %w", err)
	}
	return nil
}

// UpsertNFTs upserts token records keyed by (collection_id, token_id).
// Records are written one by one so that a failing record surfaces as a count
// instead of aborting its siblings.
func (s *pgStore) UpsertNFTs(ctx context.Context, collectionID int64, records []*domain.NFTRecord) (UpsertNFTsResult, error) {
	var result UpsertNFTsResult

	for _, record := range records {
		row, err := nftRow(collectionID, record)
		if err != nil {
			logger.WarnCtx(ctx, "failed to encode nft record",
				zap.Int64("collection_id", collectionID),
				zap.String("token_id", record.TokenID),
				zap.Error(err))
			result.Failed++
			continue
		}

		// Ownership is only resolved by owner-aware flows; a record without an
		// owner must not wipe one a previous population stored
		assignments := clause.AssignmentColumns([]string{
			"title", "description", "image_url", "thumbnail_url",
			"metadata", "attributes", "media", "updated_at",
		})
		assignments = append(assignments,
			clause.Assignment{
				Column: clause.Column{Name: "owner_address"},
				Value:  gorm.Expr("COALESCE(excluded.owner_address, nfts.owner_address)"),
			},
			clause.Assignment{
				Column: clause.Column{Name: "last_owner_check_at"},
				Value:  gorm.Expr("COALESCE(excluded.last_owner_check_at, nfts.last_owner_check_at)"),
			},
		)

		err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "collection_id"}, {Name: "token_id"}},
			DoUpdates: assignments,
		}).Create(row).Error
		if err != nil {
			logger.WarnCtx(ctx, "failed to upsert nft",
				zap.Int64("collection_id", collectionID),
				zap.String("token_id", record.TokenID),
				zap.Error(err))
			result.Failed++
			continue
		}

		result.Written++
	}

	return result, nil
}

// nftRow converts a normalized record into a schema row
func nftRow(collectionID int64, record *domain.NFTRecord) (*schema.NFT, error) {
	attributes := record.Attributes
	if attributes == nil {
		attributes = []domain.TokenAttribute{}
	}
	attributesJSON, err := json.Marshal(attributes)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal attributes: %w", err)
	}

	media := record.Media
	if media == nil {
		media = []domain.TokenMedia{}
	}
	mediaJSON, err := json.Marshal(media)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal media: %w", err)
	}

	return &schema.NFT{
		CollectionID:     collectionID,
		TokenID:          record.TokenID,
		Title:            record.Title,
		Description:      record.Description,
		ImageURL:         record.ImageURL,
		ThumbnailURL:     record.ThumbnailURL,
		Metadata:         record.Metadata,
		Attributes:       attributesJSON,
		Media:            mediaJSON,
		OwnerAddress:     record.OwnerAddress,
		LastOwnerCheckAt: record.LastOwnerCheckAt,
	}, nil
}

// CountNFTs returns the number of mirrored tokens in a collection
func (s *pgStore) CountNFTs(ctx context.Context, collectionID int64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&schema.NFT{}).
		Where("collection_id = ?", collectionID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count nfts: %w", err)
	}
	return count, nil
}

// ListNFTs returns mirrored tokens for a collection, ordered by token_id
func (s *pgStore) ListNFTs(ctx context.Context, collectionID int64, limit, offset int) ([]*schema.NFT, error) {
	var nfts []*schema.NFT
	err := s.db.WithContext(ctx).
		Where("collection_id = ?", collectionID).
		Order("token_id").
		Limit(limit).
		Offset(offset).
		Find(&nfts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list nfts: %w", err)
	}
	return nfts, nil
}

// UpsertFetchError records a failed fetch on the natural key
// (collection_id, token_id, error_type), incrementing retry_count and
// replacing the message on a repeated failure
func (s *pgStore) UpsertFetchError(ctx context.Context, collectionID int64, tokenID string, errType domain.FetchErrorType, message string) error {
	row := schema.NFTFetchError{
		CollectionID: collectionID,
		TokenID:      tokenID,
		ErrorType:    errType,
		ErrorMessage: message,
		RetryCount:   1,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "collection_id"}, {Name: "token_id"}, {Name: "error_type"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"retry_count":   gorm.Expr("nft_fetch_errors.retry_count + 1"),
			"error_message": message,
			"updated_at":    gorm.Expr("now()"),
		}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to upsert fetch error: %w", err)
	}
	return nil
}

// DeleteFetchError removes a ledger row after a successful retry. The ledger
// only ever contains outstanding problems.
func (s *pgStore) DeleteFetchError(ctx context.Context, collectionID int64, tokenID string, errType domain.FetchErrorType) error {
	err := s.db.WithContext(ctx).
		Where("collection_id = ? AND token_id = ? AND error_type = ?", collectionID, tokenID, errType).
		Delete(&schema.NFTFetchError{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete fetch error: %w", err)
	}
	return nil
}

// ClearFetchErrors removes every ledger row for a token once a fetch succeeds,
// whatever the recorded error types were
func (s *pgStore) ClearFetchErrors(ctx context.Context, collectionID int64, tokenID string) error {
	err := s.db.WithContext(ctx).
		Where("collection_id = ? AND token_id = ?", collectionID, tokenID).
		Delete(&schema.NFTFetchError{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear fetch errors: %w", err)
	}
	return nil
}

// ListFetchErrors returns all outstanding ledger rows for a collection
func (s *pgStore) ListFetchErrors(ctx context.Context, collectionID int64) ([]*schema.NFTFetchError, error) {
	var rows []*schema.NFTFetchError
	err := s.db.WithContext(ctx).
		Where("collection_id = ?", collectionID).
		Order("updated_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list fetch errors: %w", err)
	}
	return rows, nil
}

// ListRetryableFetchErrors returns ledger rows whose retry_count is below the
// ceiling, oldest first, preventing retry storms on permanently-broken tokens
func (s *pgStore) ListRetryableFetchErrors(ctx context.Context, limit int, maxRetryCount int) ([]*schema.NFTFetchError, error) {
	var rows []*schema.NFTFetchError
	err := s.db.WithContext(ctx).
		Where("retry_count < ?", maxRetryCount).
		Order("updated_at ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list retryable fetch errors: %w", err)
	}
	return rows, nil
}
