package indexer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/mirrorlabs/nft-mirror/internal/adapter"
	"github.com/mirrorlabs/nft-mirror/internal/domain"
	"github.com/mirrorlabs/nft-mirror/internal/logger"
)

const PROVIDER_NAME = "indexer"

// MediaEntry represents one media item in an indexer token response
type MediaEntry struct {
	Gateway   string `json:"gateway"`
	Thumbnail string `json:"thumbnail"`
	Raw       string `json:"raw"`
	Format    string `json:"format"`
	Bytes     int64  `json:"bytes"`
}

// TokenAttribute represents a trait entry in the raw metadata
type TokenAttribute struct {
	TraitType string      `json:"trait_type"`
	Value     interface{} `json:"value"`
}

// RawMetadata is the parsed portion of the token's raw metadata document
type RawMetadata struct {
	Name       string           `json:"name"`
	Image      string           `json:"image"`
	Attributes []TokenAttribute `json:"attributes"`
}

// TokenMetadata represents one token in an indexer response
type TokenMetadata struct {
	ID struct {
		TokenID       string `json:"tokenId"`
		TokenMetadata struct {
			TokenType string `json:"tokenType"`
		} `json:"tokenMetadata"`
	} `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Media       []MediaEntry    `json:"media"`
	Metadata    json.RawMessage `json:"metadata"`
	Error       string          `json:"error,omitempty"`
}

// ContractNFTsPage is one page of the indexer's "list NFTs for contract" listing
type ContractNFTsPage struct {
	NFTs []TokenMetadata `json:"nfts"`
	// PageKey is the cursor for the next page; empty means the listing is exhausted
	PageKey string `json:"pageKey,omitempty"`
}

// ContractMetadata describes a contract as known to the indexer
type ContractMetadata struct {
	Address          string `json:"address"`
	ContractMetadata struct {
		Name        string `json:"name"`
		Symbol      string `json:"symbol"`
		TokenType   string `json:"tokenType"`
		TotalSupply string `json:"totalSupply"`
	} `json:"contractMetadata"`
}

// Client defines the interface for indexer API operations to enable mocking
//
//go:generate mockgen -source=client.go -destination=../mocks/indexer_client.go -package=mocks -mock_names=Client=MockIndexerClient
type Client interface {
	// GetContractMetadata fetches contract-level metadata (name, token type, supply)
	GetContractMetadata(ctx context.Context, contractAddress string) (*ContractMetadata, error)

	// GetNFTsForContract fetches one page of the contract's token listing.
	// An empty pageKey starts from the beginning.
	GetNFTsForContract(ctx context.Context, contractAddress, pageKey string, pageSize int) (*ContractNFTsPage, error)

	// GetNFTMetadata fetches metadata for a single token
	GetNFTMetadata(ctx context.Context, contractAddress, tokenID string) (*TokenMetadata, error)
}

// HTTPIndexerClient implements Client against an Alchemy-style NFT API
type HTTPIndexerClient struct {
	httpClient adapter.HTTPClient
	limiter    *rate.Limiter
	apiURL     string
	apiKey     string
	json       adapter.JSON
}

// NewClient creates a new indexer client. requestsPerSecond caps the client-side
// call rate against the paid upstream API.
func NewClient(httpClient adapter.HTTPClient, apiURL, apiKey string, requestsPerSecond float64, jsonAdapter adapter.JSON) Client {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 5
	}
	return &HTTPIndexerClient{
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		apiURL:     apiURL,
		apiKey:     apiKey,
		json:       jsonAdapter,
	}
}

// get performs a paced GET against the indexer API and unmarshals the response
func (c *HTTPIndexerClient) get(ctx context.Context, endpoint string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("failed to acquire rate limit token: %w", err)
	}

	logger.DebugCtx(ctx, "calling metadata provider",
		zap.String("provider", PROVIDER_NAME),
		zap.String("endpoint", endpoint))

	u := fmt.Sprintf("%s/%s/%s?%s", c.apiURL, c.apiKey, endpoint, params.Encode())

	respBody, err := c.httpClient.GetBytes(ctx, u, nil)
	if err != nil {
		return fmt.Errorf("failed to call indexer API: %w", err)
	}

	if err := c.json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to unmarshal indexer response: %w", err)
	}

	return nil
}

// GetContractMetadata fetches contract-level metadata from the indexer
func (c *HTTPIndexerClient) GetContractMetadata(ctx context.Context, contractAddress string) (*ContractMetadata, error) {
	params := url.Values{}
	params.Set("contractAddress", domain.NormalizeContractAddress(contractAddress))

	var response ContractMetadata
	if err := c.get(ctx, "getContractMetadata", params, &response); err != nil {
		return nil, err
	}

	return &response, nil
}

// GetNFTsForContract fetches one page of the contract's token listing
func (c *HTTPIndexerClient) GetNFTsForContract(ctx context.Context, contractAddress, pageKey string, pageSize int) (*ContractNFTsPage, error) {
	params := url.Values{}
	params.Set("contractAddress", domain.NormalizeContractAddress(contractAddress))
	params.Set("withMetadata", "true")
	if pageSize > 0 {
		params.Set("limit", strconv.Itoa(pageSize))
	}
	if pageKey != "" {
		params.Set("pageKey", pageKey)
	}

	var response ContractNFTsPage
	if err := c.get(ctx, "getNFTsForContract", params, &response); err != nil {
		return nil, err
	}

	return &response, nil
}

// GetNFTMetadata fetches metadata for a single token
func (c *HTTPIndexerClient) GetNFTMetadata(ctx context.Context, contractAddress, tokenID string) (*TokenMetadata, error) {
	params := url.Values{}
	params.Set("contractAddress", domain.NormalizeContractAddress(contractAddress))
	params.Set("tokenId", tokenID)

	var response TokenMetadata
	if err := c.get(ctx, "getNFTMetadata", params, &response); err != nil {
		return nil, err
	}

	// The indexer reports per-token problems in-band rather than via HTTP status
	if response.Error != "" {
		return nil, fmt.Errorf("indexer metadata error for token %s: %s", tokenID, response.Error)
	}

	return &response, nil
}
