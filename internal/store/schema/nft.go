package schema

import (
	"time"

	"gorm.io/datatypes"
)

// NFT represents the nfts table - one token within a mirrored collection.
// The (collection_id, token_id) pair is unique and is the sole upsert key,
// so rediscovering a token never creates a duplicate row.
type NFT struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// CollectionID references the owning collection
	CollectionID int64 `gorm:"column:collection_id;not null;uniqueIndex:idx_nfts_collection_token,priority:1"`
	// TokenID is the contract-native token identifier (string to support very large numbers)
	TokenID string `gorm:"column:token_id;not null;type:text;uniqueIndex:idx_nfts_collection_token,priority:2"`
	// Title is the token display title, falling back to "NFT #<tokenId>" when absent upstream
	Title string `gorm:"column:title;type:text"`
	// Description is the token description
	Description string `gorm:"column:description;type:text"`
	// ImageURL is the preferred image URL (cached, then original, then raw metadata)
	ImageURL string `gorm:"column:image_url;type:text"`
	// ThumbnailURL is the preferred thumbnail URL
	ThumbnailURL string `gorm:"column:thumbnail_url;type:text"`
	// Metadata is the opaque raw metadata blob as returned by the indexer
	Metadata datatypes.JSON `gorm:"column:metadata;type:jsonb"`
	// Attributes is the normalized trait list
	Attributes datatypes.JSON `gorm:"column:attributes;type:jsonb"`
	// Media is the normalized media entry list
	Media datatypes.JSON `gorm:"column:media;type:jsonb"`
	// OwnerAddress is the current owner (nil for multi-owner ERC1155 tokens)
	OwnerAddress *string `gorm:"column:owner_address;type:text"`
	// LastOwnerCheckAt records when ownership was last resolved
	LastOwnerCheckAt *time.Time `gorm:"column:last_owner_check_at"`
	// CreatedAt is the timestamp when this token was first mirrored
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
	// UpdatedAt is the timestamp of the last refresh that touched this token
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the NFT model
func (NFT) TableName() string {
	return "nfts"
}
