package schema

import (
	"time"

	"github.com/mirrorlabs/nft-mirror/internal/domain"
)

// NFTFetchError represents the nft_fetch_errors table - the durable ledger of
// outstanding per-token fetch failures. A row's presence means "still broken";
// a successful retry deletes the row instead of flagging it resolved.
type NFTFetchError struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// CollectionID references the owning collection
	CollectionID int64 `gorm:"column:collection_id;not null;uniqueIndex:idx_fetch_errors_natural,priority:1"`
	// TokenID is the contract-native token identifier
	TokenID string `gorm:"column:token_id;not null;type:text;uniqueIndex:idx_fetch_errors_natural,priority:2"`
	// ErrorType classifies the failure
	ErrorType domain.FetchErrorType `gorm:"column:error_type;not null;type:text;uniqueIndex:idx_fetch_errors_natural,priority:3"`
	// ErrorMessage is the most recent failure message
	ErrorMessage string `gorm:"column:error_message;type:text"`
	// RetryCount is incremented on every repeated failure for the same key
	RetryCount int `gorm:"column:retry_count;not null;default:1"`
	// CreatedAt is the timestamp of the first failure
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
	// UpdatedAt is the timestamp of the most recent failure
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the NFTFetchError model
func (NFTFetchError) TableName() string {
	return "nft_fetch_errors"
}
