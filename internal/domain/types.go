package domain

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TokenType represents the token contract type of a collection
type TokenType string

const (
	TokenTypeERC721  TokenType = "erc721"
	TokenTypeERC1155 TokenType = "erc1155"
	TokenTypeUnknown TokenType = "unknown"
)

// RefreshKind distinguishes the two refresh flows, which differ in lock TTL,
// cooldown handling and discovery depth
type RefreshKind string

const (
	// RefreshKindLight is the synchronous, indexer-only refresh
	RefreshKindLight RefreshKind = "refresh"
	// RefreshKindPopulate is the comprehensive background population
	RefreshKindPopulate RefreshKind = "populate"
)

// LockTTL returns the discovery-lock TTL for this refresh kind.
// The TTL doubles as the authority window for background work: a crashed
// process self-heals once the lock expires.
func (k RefreshKind) LockTTL() time.Duration {
	if k == RefreshKindPopulate {
		return 30 * time.Minute
	}
	return 5 * time.Minute
}

var contractAddressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// ValidContractAddress reports whether s is a 0x-prefixed 40-hex-char address
func ValidContractAddress(s string) bool {
	return contractAddressPattern.MatchString(s)
}

// NormalizeContractAddress lowercases a contract address for storage and keying.
// Addresses are case-insensitive on input and always stored lowercase.
func NormalizeContractAddress(s string) string {
	return strings.ToLower(s)
}

// TokenAttribute is a single trait key/value pair from token metadata
type TokenAttribute struct {
	TraitType string      `json:"trait_type"`
	Value     interface{} `json:"value"`
}

// TokenMedia describes one media entry attached to a token
type TokenMedia struct {
	Gateway   string `json:"gateway,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Raw       string `json:"raw,omitempty"`
	Format    string `json:"format,omitempty"`
	Bytes     int64  `json:"bytes,omitempty"`
}

// NFTRecord is a normalized token record produced by the fetch pipeline,
// ready to be upserted by the store
type NFTRecord struct {
	TokenID      string
	Title        string
	Description  string
	ImageURL     string
	ThumbnailURL string
	Metadata     datatypes.JSON
	Attributes   []TokenAttribute
	Media        []TokenMedia
	// OwnerAddress is only resolved by owner-aware flows; nil means "owner
	// unknown" and must not overwrite a previously stored owner
	OwnerAddress     *string
	LastOwnerCheckAt *time.Time
}

// FetchErrorType classifies a failed metadata fetch for the error ledger
type FetchErrorType string

const (
	FetchErrorTypeMetadata FetchErrorType = "metadata_fetch"
	FetchErrorTypeTimeout  FetchErrorType = "timeout"
	FetchErrorTypeDecode   FetchErrorType = "decode"
)

// FetchFailure describes a single token's failed fetch
type FetchFailure struct {
	Type    FetchErrorType
	Message string
}

// CacheEventType identifies the event kind on the cache bus
type CacheEventType string

const (
	// CacheEventCollectionRefreshed is broadcast after a successful refresh
	CacheEventCollectionRefreshed CacheEventType = "collection_refreshed"
)

// CacheEvent is the message broadcast after a successful refresh so that
// dependent subsystems can react. It is fire-and-forget and never persisted.
type CacheEvent struct {
	ID              string         `json:"id"`
	Type            CacheEventType `json:"type"`
	ContractAddress string         `json:"contract_address"`
	Timestamp       time.Time      `json:"timestamp"`
}

// NewCollectionRefreshedEvent builds a CacheEvent for a refreshed collection
func NewCollectionRefreshedEvent(contractAddress string, at time.Time) *CacheEvent {
	return &CacheEvent{
		ID:              uuid.NewString(),
		Type:            CacheEventCollectionRefreshed,
		ContractAddress: NormalizeContractAddress(contractAddress),
		Timestamp:       at,
	}
}
