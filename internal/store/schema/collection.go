package schema

import (
	"time"

	"github.com/mirrorlabs/nft-mirror/internal/domain"
)

// Collection represents the collections table - one mirrored on-chain contract
type Collection struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ContractAddress is the contract's blockchain address, always stored lowercase
	ContractAddress string `gorm:"column:contract_address;not null;uniqueIndex;type:text"`
	// Name is the collection display name from the indexer or on-chain lookup
	Name string `gorm:"column:name;type:text"`
	// TokenType is the contract standard (erc721, erc1155, unknown)
	TokenType domain.TokenType `gorm:"column:token_type;not null;default:'unknown';type:text"`
	// TotalSupply is the reported token supply (nil when the contract does not expose it)
	TotalSupply *int64 `gorm:"column:total_supply"`
	// LastRefreshAt is the timestamp of the last successful refresh
	LastRefreshAt *time.Time `gorm:"column:last_refresh_at"`
	// RefreshCooldownUntil blocks new full refreshes while set and in the future
	RefreshCooldownUntil *time.Time `gorm:"column:refresh_cooldown_until"`
	// CreatedAt is the timestamp when this collection was first mirrored
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
	// UpdatedAt is the timestamp of the last mutation
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`

	// Associations
	NFTs        []NFT           `gorm:"foreignKey:CollectionID;constraint:OnDelete:CASCADE"`
	FetchErrors []NFTFetchError `gorm:"foreignKey:CollectionID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Collection model
func (Collection) TableName() string {
	return "collections"
}
