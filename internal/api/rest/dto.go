package rest

import (
	"encoding/json"
	"time"

	"github.com/mirrorlabs/nft-mirror/internal/store/schema"
)

// CollectionDTO is the public representation of a mirrored collection
type CollectionDTO struct {
	ContractAddress string     `json:"contractAddress"`
	Name            string     `json:"name"`
	TokenType       string     `json:"tokenType"`
	TotalSupply     *int64     `json:"totalSupply,omitempty"`
	NFTCount        int64      `json:"nftCount"`
	LastRefreshAt   *time.Time `json:"lastRefreshAt,omitempty"`
	CooldownUntil   *time.Time `json:"cooldownUntil,omitempty"`
}

// NFTDTO is the public representation of a mirrored token
type NFTDTO struct {
	TokenID      string          `json:"tokenId"`
	Title        string          `json:"title"`
	Description  string          `json:"description,omitempty"`
	ImageURL     string          `json:"imageUrl,omitempty"`
	ThumbnailURL string          `json:"thumbnailUrl,omitempty"`
	Metadata     json.RawMessage `json:"metadata,omitempty"`
	Attributes   json.RawMessage `json:"attributes,omitempty"`
	Media        json.RawMessage `json:"media,omitempty"`
	OwnerAddress *string         `json:"ownerAddress,omitempty"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// NFTListDTO is a page of tokens
type NFTListDTO struct {
	ContractAddress string   `json:"contractAddress"`
	Total           int64    `json:"total"`
	Limit           int      `json:"limit"`
	Offset          int      `json:"offset"`
	NFTs            []NFTDTO `json:"nfts"`
}

// FetchErrorDTO is the public representation of one error ledger row
type FetchErrorDTO struct {
	TokenID      string    `json:"tokenId"`
	ErrorType    string    `json:"errorType"`
	ErrorMessage string    `json:"errorMessage"`
	RetryCount   int       `json:"retryCount"`
	FirstFailed  time.Time `json:"firstFailedAt"`
	LastFailed   time.Time `json:"lastFailedAt"`
}

func collectionDTO(collection *schema.Collection, nftCount int64) CollectionDTO {
	return CollectionDTO{
		ContractAddress: collection.ContractAddress,
		Name:            collection.Name,
		TokenType:       string(collection.TokenType),
		TotalSupply:     collection.TotalSupply,
		NFTCount:        nftCount,
		LastRefreshAt:   collection.LastRefreshAt,
		CooldownUntil:   collection.RefreshCooldownUntil,
	}
}

func nftDTO(nft *schema.NFT) NFTDTO {
	return NFTDTO{
		TokenID:      nft.TokenID,
		Title:        nft.Title,
		Description:  nft.Description,
		ImageURL:     nft.ImageURL,
		ThumbnailURL: nft.ThumbnailURL,
		Metadata:     json.RawMessage(nft.Metadata),
		Attributes:   json.RawMessage(nft.Attributes),
		Media:        json.RawMessage(nft.Media),
		OwnerAddress: nft.OwnerAddress,
		UpdatedAt:    nft.UpdatedAt,
	}
}

func fetchErrorDTO(row *schema.NFTFetchError) FetchErrorDTO {
	return FetchErrorDTO{
		TokenID:      row.TokenID,
		ErrorType:    string(row.ErrorType),
		ErrorMessage: row.ErrorMessage,
		RetryCount:   row.RetryCount,
		FirstFailed:  row.CreatedAt,
		LastFailed:   row.UpdatedAt,
	}
}
