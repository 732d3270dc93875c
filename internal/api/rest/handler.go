package rest

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mirrorlabs/nft-mirror/internal/adapter"
	"github.com/mirrorlabs/nft-mirror/internal/cache"
	"github.com/mirrorlabs/nft-mirror/internal/domain"
	"github.com/mirrorlabs/nft-mirror/internal/engine"
	"github.com/mirrorlabs/nft-mirror/internal/logger"
	"github.com/mirrorlabs/nft-mirror/internal/store"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// RefreshCollection runs a synchronous refresh of a collection
	// POST /api/v1/collections/:address/refresh
	RefreshCollection(c *gin.Context)

	// GetRefreshStatus reports whether a refresh would be accepted right now
	// GET /api/v1/collections/:address/refresh
	GetRefreshStatus(c *gin.Context)

	// PopulateCollection starts a comprehensive background population
	// POST /api/v1/collections/:address/populate
	PopulateCollection(c *gin.Context)

	// GetPopulateStatus reports the state of a background population
	// GET /api/v1/collections/:address/populate
	GetPopulateStatus(c *gin.Context)

	// GetCollection retrieves a mirrored collection with its token count
	// GET /api/v1/collections/:address
	GetCollection(c *gin.Context)

	// ListCollectionNFTs retrieves a page of mirrored tokens
	// GET /api/v1/collections/:address/nfts?limit=<limit>&offset=<offset>
	ListCollectionNFTs(c *gin.Context)

	// ListFetchErrors retrieves the outstanding error ledger of a collection
	// GET /api/v1/collections/:address/errors
	ListFetchErrors(c *gin.Context)

	// RetryCollection re-fetches every outstanding ledger entry of a collection
	// POST /api/v1/collections/:address/retry
	RetryCollection(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	engine engine.Engine
	store  store.Store
	cache  cache.Cache
	json   adapter.JSON
}

// NewHandler creates a new REST API handler
func NewHandler(eng engine.Engine, st store.Store, ch cache.Cache, jsonAdapter adapter.JSON) Handler {
	return &handler{
		engine: eng,
		store:  st,
		cache:  ch,
		json:   jsonAdapter,
	}
}

// contractAddress extracts and validates the :address path parameter
func contractAddress(c *gin.Context) (string, bool) {
	address := c.Param("address")
	if !domain.ValidContractAddress(address) {
		respondBadRequest(c, "Invalid contract address")
		return "", false
	}
	return domain.NormalizeContractAddress(address), true
}

// RefreshCollection runs a synchronous refresh of a collection
func (h *handler) RefreshCollection(c *gin.Context) {
	address, ok := contractAddress(c)
	if !ok {
		return
	}

	outcome, err := h.engine.Refresh(c.Request.Context(), address)
	if err != nil {
		if errors.Is(err, domain.ErrRefreshInProgress) {
			respondRefreshInProgress(c)
			return
		}
		if ce, isCooldown := domain.IsCooldown(err); isCooldown {
			respondCooldown(c, ce.Until, ce.Remaining)
			return
		}
		if errors.Is(err, domain.ErrCollectionNotFound) {
			respondNotFound(c, "Collection not found and could not be fetched")
			return
		}
		respondInternalError(c, err, "Failed to refresh collection",
			zap.String("contract_address", address))
		return
	}

	c.JSON(http.StatusOK, outcome)
}

// GetRefreshStatus reports whether a refresh would be accepted right now
func (h *handler) GetRefreshStatus(c *gin.Context) {
	address, ok := contractAddress(c)
	if !ok {
		return
	}

	status, err := h.engine.RefreshStatus(c.Request.Context(), address)
	if err != nil {
		respondInternalError(c, err, "Failed to get refresh status",
			zap.String("contract_address", address))
		return
	}

	c.JSON(http.StatusOK, status)
}

// PopulateCollection starts a comprehensive background population
func (h *handler) PopulateCollection(c *gin.Context) {
	address, ok := contractAddress(c)
	if !ok {
		return
	}

	ack, err := h.engine.Populate(c.Request.Context(), address)
	if err != nil {
		if errors.Is(err, domain.ErrRefreshInProgress) {
			respondRefreshInProgress(c)
			return
		}
		if errors.Is(err, domain.ErrCollectionNotFound) {
			respondNotFound(c, "Collection not found and could not be fetched")
			return
		}
		respondInternalError(c, err, "Failed to start population",
			zap.String("contract_address", address))
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":          "accepted",
		"contractAddress": ack.ContractAddress,
		"collectionId":    ack.CollectionID,
		"collectionName":  ack.CollectionName,
	})
}

// GetPopulateStatus reports the state of a background population
func (h *handler) GetPopulateStatus(c *gin.Context) {
	address, ok := contractAddress(c)
	if !ok {
		return
	}

	status, err := h.engine.PopulateStatus(c.Request.Context(), address)
	if err != nil {
		respondInternalError(c, err, "Failed to get population status",
			zap.String("contract_address", address))
		return
	}

	c.JSON(http.StatusOK, status)
}

// GetCollection retrieves a mirrored collection with its token count
func (h *handler) GetCollection(c *gin.Context) {
	address, ok := contractAddress(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	const cacheName = "summary"

	if payload, err := h.cache.GetPage(ctx, address, cacheName); err == nil && payload != nil {
		c.Data(http.StatusOK, "application/json", payload)
		return
	}

	collection, err := h.store.GetCollectionByAddress(ctx, address)
	if err != nil {
		respondInternalError(c, err, "Failed to get collection",
			zap.String("contract_address", address))
		return
	}
	if collection == nil {
		respondNotFound(c, "Collection not found")
		return
	}

	count, err := h.store.CountNFTs(ctx, collection.ID)
	if err != nil {
		respondInternalError(c, err, "Failed to count tokens",
			zap.String("contract_address", address))
		return
	}

	dto := collectionDTO(collection, count)
	h.respondCached(c, address, cacheName, dto)
}

// ListCollectionNFTs retrieves a page of mirrored tokens
func (h *handler) ListCollectionNFTs(c *gin.Context) {
	address, ok := contractAddress(c)
	if !ok {
		return
	}

	limit, offset, ok := pageParams(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	cacheName := fmt.Sprintf("page:nfts:%d:%d", limit, offset)

	if payload, err := h.cache.GetPage(ctx, address, cacheName); err == nil && payload != nil {
		c.Data(http.StatusOK, "application/json", payload)
		return
	}

	collection, err := h.store.GetCollectionByAddress(ctx, address)
	if err != nil {
		respondInternalError(c, err, "Failed to get collection",
			zap.String("contract_address", address))
		return
	}
	if collection == nil {
		respondNotFound(c, "Collection not found")
		return
	}

	nfts, err := h.store.ListNFTs(ctx, collection.ID, limit, offset)
	if err != nil {
		respondInternalError(c, err, "Failed to list tokens",
			zap.String("contract_address", address))
		return
	}

	total, err := h.store.CountNFTs(ctx, collection.ID)
	if err != nil {
		respondInternalError(c, err, "Failed to count tokens",
			zap.String("contract_address", address))
		return
	}

	dto := NFTListDTO{
		ContractAddress: address,
		Total:           total,
		Limit:           limit,
		Offset:          offset,
		NFTs:            make([]NFTDTO, 0, len(nfts)),
	}
	for _, nft := range nfts {
		dto.NFTs = append(dto.NFTs, nftDTO(nft))
	}

	h.respondCached(c, address, cacheName, dto)
}

// ListFetchErrors retrieves the outstanding error ledger of a collection
func (h *handler) ListFetchErrors(c *gin.Context) {
	address, ok := contractAddress(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	collection, err := h.store.GetCollectionByAddress(ctx, address)
	if err != nil {
		respondInternalError(c, err, "Failed to get collection",
			zap.String("contract_address", address))
		return
	}
	if collection == nil {
		respondNotFound(c, "Collection not found")
		return
	}

	rows, err := h.store.ListFetchErrors(ctx, collection.ID)
	if err != nil {
		respondInternalError(c, err, "Failed to list fetch errors",
			zap.String("contract_address", address))
		return
	}

	dtos := make([]FetchErrorDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, fetchErrorDTO(row))
	}

	c.JSON(http.StatusOK, gin.H{
		"contractAddress": address,
		"errors":          dtos,
	})
}

// RetryCollection re-fetches every outstanding ledger entry of a collection
func (h *handler) RetryCollection(c *gin.Context) {
	address, ok := contractAddress(c)
	if !ok {
		return
	}

	outcome, err := h.engine.RetryCollection(c.Request.Context(), address)
	if err != nil {
		if errors.Is(err, domain.ErrCollectionNotFound) {
			respondNotFound(c, "Collection not found")
			return
		}
		respondInternalError(c, err, "Failed to retry fetch errors",
			zap.String("contract_address", address))
		return
	}

	c.JSON(http.StatusOK, outcome)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondCached serializes the response once, stores it as a cached page, and
// writes it. A cache write failure is logged and does not affect the response.
func (h *handler) respondCached(c *gin.Context, address, name string, body interface{}) {
	payload, err := h.json.Marshal(body)
	if err != nil {
		respondInternalError(c, err, "Failed to encode response")
		return
	}

	if err := h.cache.SetPage(c.Request.Context(), address, name, payload); err != nil {
		logger.WarnCtx(c.Request.Context(), "failed to cache response page",
			zap.String("contract_address", address),
			zap.String("page", name),
			zap.Error(err))
	}

	c.Data(http.StatusOK, "application/json", payload)
}

// pageParams parses limit and offset query parameters with bounds
func pageParams(c *gin.Context) (limit, offset int, ok bool) {
	limit = defaultPageLimit
	offset = 0

	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondBadRequest(c, "Invalid limit parameter")
			return 0, 0, false
		}
		if parsed > maxPageLimit {
			parsed = maxPageLimit
		}
		limit = parsed
	}

	if raw := c.Query("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondBadRequest(c, "Invalid offset parameter")
			return 0, 0, false
		}
		offset = parsed
	}

	return limit, offset, true
}
