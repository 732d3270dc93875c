// Package engine orchestrates collection synchronization: locking, cooldown,
// token discovery, metadata fetching, persistence and cache invalidation.
package engine

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/mirrorlabs/nft-mirror/internal/adapter"
	"github.com/mirrorlabs/nft-mirror/internal/cache"
	"github.com/mirrorlabs/nft-mirror/internal/discovery"
	"github.com/mirrorlabs/nft-mirror/internal/domain"
	"github.com/mirrorlabs/nft-mirror/internal/ethereum"
	"github.com/mirrorlabs/nft-mirror/internal/indexer"
	"github.com/mirrorlabs/nft-mirror/internal/lock"
	"github.com/mirrorlabs/nft-mirror/internal/logger"
	"github.com/mirrorlabs/nft-mirror/internal/pipeline"
	"github.com/mirrorlabs/nft-mirror/internal/store"
	"github.com/mirrorlabs/nft-mirror/internal/store/schema"
)

const (
	// maxRetryCount is the ledger retry ceiling; rows at or above it are
	// considered permanently broken and left for manual inspection
	maxRetryCount = 3
)

// RefreshOutcome summarizes a completed synchronous refresh
type RefreshOutcome struct {
	ContractAddress string     `json:"contractAddress"`
	Discovered      int        `json:"discovered"`
	Written         int        `json:"written"`
	Failed          int        `json:"failed"`
	CooldownUntil   *time.Time `json:"cooldownUntil,omitempty"`
}

// RefreshStatus reports whether a new refresh would be accepted right now.
// RemainingTime is expressed in whole minutes, matching the 429 body.
type RefreshStatus struct {
	CanRefresh      bool       `json:"canRefresh"`
	InProgress      bool       `json:"inProgress"`
	NextRefreshTime *time.Time `json:"nextRefreshTime,omitempty"`
	RemainingTime   int        `json:"remainingTime,omitempty"`
}

// PopulateAck acknowledges an accepted population request. The collection row
// is ensured before the background work starts so the ack can identify it.
type PopulateAck struct {
	ContractAddress string `json:"contractAddress"`
	CollectionID    int64  `json:"collectionId"`
	CollectionName  string `json:"collectionName"`
}

// PopulateStatus reports the state of a background population
type PopulateStatus struct {
	InProgress    bool   `json:"inProgress"`
	RemainingTime string `json:"remainingTime,omitempty"`
	TokenCount    int64  `json:"tokenCount"`
	ErrorCount    int    `json:"errorCount"`
}

// RetryOutcome summarizes one retry-worker pass over the error ledger
type RetryOutcome struct {
	Attempted    int `json:"attempted"`
	Recovered    int `json:"recovered"`
	StillFailing int `json:"stillFailing"`
}

// Engine runs collection refreshes and ledger retries
//
//go:generate mockgen -source=engine.go -destination=../mocks/engine.go -package=mocks -mock_names=Engine=MockEngine
type Engine interface {
	// Refresh runs a synchronous indexer-backed refresh of a collection.
	// Returns domain.ErrRefreshInProgress when another refresh holds the lock
	// and *domain.CooldownError while the cooldown window is active.
	Refresh(ctx context.Context, contractAddress string) (*RefreshOutcome, error)

	// RefreshStatus reports whether a refresh would be accepted right now
	RefreshStatus(ctx context.Context, contractAddress string) (*RefreshStatus, error)

	// Populate ensures the collection row, starts a comprehensive background
	// population and returns as soon as the lock is held. The background work
	// is bounded by the lock TTL.
	Populate(ctx context.Context, contractAddress string) (*PopulateAck, error)

	// PopulateStatus reports whether a population is running and current counts
	PopulateStatus(ctx context.Context, contractAddress string) (*PopulateStatus, error)

	// RetryFailed re-fetches up to limit outstanding ledger entries
	RetryFailed(ctx context.Context, limit int) (*RetryOutcome, error)

	// RetryCollection re-fetches every outstanding ledger entry of one collection
	RetryCollection(ctx context.Context, contractAddress string) (*RetryOutcome, error)
}

type syncEngine struct {
	store    store.Store
	locks    lock.Manager
	indexer  indexer.Client
	eth      ethereum.Client
	fullScan discovery.Strategy
	probe    discovery.Strategy
	pipeline pipeline.Pipeline
	cache    cache.Cache
	emitter  cache.Emitter
	clock    adapter.Clock

	cooldown time.Duration
}

// New creates the synchronization engine. A zero cooldown falls back to the
// default window.
func New(
	st store.Store,
	locks lock.Manager,
	idx indexer.Client,
	eth ethereum.Client,
	fullScan discovery.Strategy,
	probe discovery.Strategy,
	pl pipeline.Pipeline,
	ch cache.Cache,
	emitter cache.Emitter,
	clock adapter.Clock,
	cooldown time.Duration,
) Engine {
	if cooldown == 0 {
		cooldown = DefaultCooldown
	}
	return &syncEngine{
		store:    st,
		locks:    locks,
		indexer:  idx,
		eth:      eth,
		fullScan: fullScan,
		probe:    probe,
		pipeline: pl,
		cache:    ch,
		emitter:  emitter,
		clock:    clock,
		cooldown: cooldown,
	}
}

// Refresh runs the synchronous refresh flow: acquire the lock, honor the
// cooldown, discover via the indexer listing, fetch metadata, persist, then
// invalidate caches and announce the refresh.
func (e *syncEngine) Refresh(ctx context.Context, contractAddress string) (*RefreshOutcome, error) {
	if !domain.ValidContractAddress(contractAddress) {
		return nil, domain.ErrInvalidContractAddress
	}
	contractAddress = domain.NormalizeContractAddress(contractAddress)

	acquired, err := e.locks.TryAcquire(ctx, contractAddress, domain.RefreshKindLight)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, domain.ErrRefreshInProgress
	}
	defer e.locks.Release(ctx, contractAddress, domain.RefreshKindLight)

	existing, err := e.store.GetCollectionByAddress(ctx, contractAddress)
	if err != nil {
		return nil, err
	}
	if ce := e.cooldownFor(existing); ce != nil {
		return nil, ce
	}

	collection, err := e.ensureCollection(ctx, contractAddress)
	if err != nil {
		return nil, err
	}

	tokenIDs, err := e.fullScan.Discover(ctx, contractAddress, discovery.Hint{
		TokenType:   collection.TokenType,
		TotalSupply: collection.TotalSupply,
	})
	if err != nil {
		return nil, err
	}

	// Interactive flow: one unbounded fetch batch, no inter-batch pacing
	results := e.pipeline.FetchBatch(ctx, contractAddress, tokenIDs.Sorted(), pipeline.Options{})

	written, failed, err := e.persistResults(ctx, collection.ID, results)
	if err != nil {
		return nil, err
	}

	// The NFT writes are already committed; timestamp bookkeeping failures
	// must not discard the refresh result
	now := e.clock.Now().UTC()
	if err := e.store.TouchLastRefresh(ctx, collection.ID, now); err != nil {
		logger.WarnCtx(ctx, "failed to touch last refresh",
			zap.String("contract_address", contractAddress),
			zap.Error(err))
	}
	outcome := &RefreshOutcome{
		ContractAddress: contractAddress,
		Discovered:      len(tokenIDs),
		Written:         written,
		Failed:          failed,
	}
	cooldownUntil := now.Add(e.cooldown)
	if err := e.store.SetRefreshCooldown(ctx, collection.ID, cooldownUntil); err != nil {
		logger.WarnCtx(ctx, "failed to set refresh cooldown",
			zap.String("contract_address", contractAddress),
			zap.Error(err))
	} else {
		outcome.CooldownUntil = &cooldownUntil
	}

	e.finishRefresh(ctx, contractAddress, now)

	return outcome, nil
}

// RefreshStatus reports whether a refresh would be accepted right now
func (e *syncEngine) RefreshStatus(ctx context.Context, contractAddress string) (*RefreshStatus, error) {
	if !domain.ValidContractAddress(contractAddress) {
		return nil, domain.ErrInvalidContractAddress
	}
	contractAddress = domain.NormalizeContractAddress(contractAddress)

	held, ttl, err := e.locks.Status(ctx, contractAddress, domain.RefreshKindLight)
	if err != nil {
		return nil, err
	}
	if held {
		return &RefreshStatus{
			InProgress:    true,
			RemainingTime: remainingMinutes(ttl),
		}, nil
	}

	collection, err := e.store.GetCollectionByAddress(ctx, contractAddress)
	if err != nil {
		return nil, err
	}
	if ce := e.cooldownFor(collection); ce != nil {
		return &RefreshStatus{
			NextRefreshTime: &ce.Until,
			RemainingTime:   remainingMinutes(ce.Remaining),
		}, nil
	}

	return &RefreshStatus{CanRefresh: true}, nil
}

// remainingMinutes reports a wait duration in whole minutes, never reporting
// zero while any wait remains
func remainingMinutes(d time.Duration) int {
	minutes := int(d.Minutes())
	if d > 0 && minutes == 0 {
		minutes = 1
	}
	return minutes
}

// Populate acquires the population lock and starts the comprehensive flow in
// the background. The caller gets an immediate acknowledgement; the work is
// bounded by the lock TTL so a crash cannot wedge the collection.
func (e *syncEngine) Populate(ctx context.Context, contractAddress string) (*PopulateAck, error) {
	if !domain.ValidContractAddress(contractAddress) {
		return nil, domain.ErrInvalidContractAddress
	}
	contractAddress = domain.NormalizeContractAddress(contractAddress)

	acquired, err := e.locks.TryAcquire(ctx, contractAddress, domain.RefreshKindPopulate)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, domain.ErrRefreshInProgress
	}

	// Resolve the collection before acknowledging so the ack can carry its
	// identity and an unfetchable contract is rejected up front
	collection, err := e.ensureCollection(ctx, contractAddress)
	if err != nil {
		e.locks.Release(ctx, contractAddress, domain.RefreshKindPopulate)
		return nil, err
	}

	go func() {
		// Detached from the request context so the HTTP response does not
		// cancel the work; bounded by the lock TTL instead
		bgCtx, cancel := context.WithTimeout(context.Background(), domain.RefreshKindPopulate.LockTTL())
		defer cancel()
		defer e.locks.Release(bgCtx, contractAddress, domain.RefreshKindPopulate)

		if err := e.runPopulate(bgCtx, contractAddress, collection); err != nil {
			logger.ErrorCtx(bgCtx, fmt.Errorf("collection population failed: %w", err),
				zap.String("contract_address", contractAddress))
		}
	}()

	return &PopulateAck{
		ContractAddress: contractAddress,
		CollectionID:    collection.ID,
		CollectionName:  collection.Name,
	}, nil
}

// runPopulate is the background half of Populate: union both discovery
// strategies, fetch in paced batches, persist, resolve ERC721 owners, then
// invalidate.
func (e *syncEngine) runPopulate(ctx context.Context, contractAddress string, collection *schema.Collection) error {
	started := e.clock.Now()

	hint := discovery.Hint{
		TokenType:   collection.TokenType,
		TotalSupply: collection.TotalSupply,
	}

	scanned, err := e.fullScan.Discover(ctx, contractAddress, hint)
	if err != nil {
		return err
	}
	probed, err := e.probe.Discover(ctx, contractAddress, hint)
	if err != nil {
		return err
	}
	tokenIDs := discovery.Union(scanned, probed)

	results := e.pipeline.FetchBatch(ctx, contractAddress, tokenIDs.Sorted(), pipeline.Options{
		BatchSize: pipeline.DefaultBatchSize,
	})

	if collection.TokenType == domain.TokenTypeERC721 {
		e.resolveOwners(ctx, contractAddress, results)
	}

	written, failed, err := e.persistResults(ctx, collection.ID, results)
	if err != nil {
		return err
	}

	now := e.clock.Now().UTC()
	if err := e.store.TouchLastRefresh(ctx, collection.ID, now); err != nil {
		logger.WarnCtx(ctx, "failed to touch last refresh",
			zap.String("contract_address", contractAddress),
			zap.Error(err))
	}

	e.finishRefresh(ctx, contractAddress, now)

	logger.InfoCtx(ctx, "collection population finished",
		zap.String("contract_address", contractAddress),
		zap.Int("discovered", len(tokenIDs)),
		zap.Int("written", written),
		zap.Int("failed", failed),
		zap.Duration("elapsed", e.clock.Since(started)))

	return nil
}

// PopulateStatus reports whether a population is running and current counts
func (e *syncEngine) PopulateStatus(ctx context.Context, contractAddress string) (*PopulateStatus, error) {
	if !domain.ValidContractAddress(contractAddress) {
		return nil, domain.ErrInvalidContractAddress
	}
	contractAddress = domain.NormalizeContractAddress(contractAddress)

	held, ttl, err := e.locks.Status(ctx, contractAddress, domain.RefreshKindPopulate)
	if err != nil {
		return nil, err
	}

	status := &PopulateStatus{InProgress: held}
	if held {
		status.RemainingTime = ttl.Round(time.Second).String()
	}

	collection, err := e.store.GetCollectionByAddress(ctx, contractAddress)
	if err != nil {
		return nil, err
	}
	if collection != nil {
		count, err := e.store.CountNFTs(ctx, collection.ID)
		if err != nil {
			return nil, err
		}
		status.TokenCount = count

		ledger, err := e.store.ListFetchErrors(ctx, collection.ID)
		if err != nil {
			return nil, err
		}
		status.ErrorCount = len(ledger)
	}

	return status, nil
}

// RetryFailed re-fetches up to limit outstanding ledger entries, oldest first.
// A success writes the record and clears the token's ledger rows; a repeated
// failure bumps retry_count via the upsert.
func (e *syncEngine) RetryFailed(ctx context.Context, limit int) (*RetryOutcome, error) {
	rows, err := e.store.ListRetryableFetchErrors(ctx, limit, maxRetryCount)
	if err != nil {
		return nil, err
	}

	outcome := &RetryOutcome{}
	collections := make(map[int64]*schema.Collection)

	for _, row := range rows {
		if ctx.Err() != nil {
			break
		}

		collection, ok := collections[row.CollectionID]
		if !ok {
			collection, err = e.store.GetCollectionByID(ctx, row.CollectionID)
			if err != nil {
				return outcome, err
			}
			collections[row.CollectionID] = collection
		}
		if collection == nil {
			continue
		}

		e.retryOne(ctx, collection.ContractAddress, row.CollectionID, row.TokenID, outcome)
	}

	return outcome, nil
}

// RetryCollection re-fetches every outstanding ledger entry of one collection.
// Returns domain.ErrCollectionNotFound when the collection was never mirrored.
func (e *syncEngine) RetryCollection(ctx context.Context, contractAddress string) (*RetryOutcome, error) {
	if !domain.ValidContractAddress(contractAddress) {
		return nil, domain.ErrInvalidContractAddress
	}
	contractAddress = domain.NormalizeContractAddress(contractAddress)

	collection, err := e.store.GetCollectionByAddress(ctx, contractAddress)
	if err != nil {
		return nil, err
	}
	if collection == nil {
		return nil, domain.ErrCollectionNotFound
	}

	rows, err := e.store.ListFetchErrors(ctx, collection.ID)
	if err != nil {
		return nil, err
	}

	outcome := &RetryOutcome{}
	// A token can hold ledger rows of several error types; fetch it once
	seen := make(map[string]struct{})
	for _, row := range rows {
		if ctx.Err() != nil {
			break
		}
		if _, ok := seen[row.TokenID]; ok {
			continue
		}
		seen[row.TokenID] = struct{}{}
		e.retryOne(ctx, contractAddress, collection.ID, row.TokenID, outcome)
	}

	return outcome, nil
}

// retryOne re-fetches a single ledgered token and reconciles the ledger with
// the result
func (e *syncEngine) retryOne(ctx context.Context, contractAddress string, collectionID int64, tokenID string, outcome *RetryOutcome) {
	outcome.Attempted++
	result := e.pipeline.FetchOne(ctx, contractAddress, tokenID)

	if result.Failure != nil {
		outcome.StillFailing++
		if err := e.store.UpsertFetchError(ctx, collectionID, tokenID, result.Failure.Type, result.Failure.Message); err != nil {
			logger.WarnCtx(ctx, "failed to record retry failure",
				zap.Int64("collection_id", collectionID),
				zap.String("token_id", tokenID),
				zap.Error(err))
		}
		return
	}

	upserted, err := e.store.UpsertNFTs(ctx, collectionID, []*domain.NFTRecord{result.Record})
	if err != nil || upserted.Written == 0 {
		outcome.StillFailing++
		return
	}
	if err := e.store.ClearFetchErrors(ctx, collectionID, tokenID); err != nil {
		logger.WarnCtx(ctx, "failed to clear ledger after retry",
			zap.Int64("collection_id", collectionID),
			zap.String("token_id", tokenID),
			zap.Error(err))
	}
	outcome.Recovered++
}

// ensureCollection makes sure a collection row exists and is current, asking
// the indexer first and falling back to direct on-chain reads. When neither
// source yields any metadata, an already-mirrored row is returned untouched
// and an unknown contract surfaces as domain.ErrCollectionNotFound.
func (e *syncEngine) ensureCollection(ctx context.Context, contractAddress string) (*schema.Collection, error) {
	input := store.UpsertCollectionInput{ContractAddress: contractAddress}
	fetched := false

	meta, err := e.indexer.GetContractMetadata(ctx, contractAddress)
	if err == nil && meta != nil {
		fetched = true
		input.Name = meta.ContractMetadata.Name
		input.TokenType = tokenTypeFromIndexer(meta.ContractMetadata.TokenType)
		if supply, perr := strconv.ParseInt(meta.ContractMetadata.TotalSupply, 10, 64); perr == nil {
			input.TotalSupply = &supply
		}
	} else {
		logger.WarnCtx(ctx, "indexer contract metadata unavailable, reading on-chain",
			zap.String("contract_address", contractAddress),
			zap.Error(err))

		if name, nerr := e.eth.Name(ctx, contractAddress); nerr == nil {
			fetched = true
			input.Name = name
		}
		if tokenType, terr := e.eth.DetectTokenType(ctx, contractAddress); terr == nil {
			fetched = true
			input.TokenType = tokenType
		}
		if supply, serr := e.eth.TotalSupply(ctx, contractAddress); serr == nil && supply != nil && supply.IsInt64() {
			fetched = true
			v := supply.Int64()
			input.TotalSupply = &v
		}
	}

	if !fetched {
		existing, gerr := e.store.GetCollectionByAddress(ctx, contractAddress)
		if gerr != nil {
			return nil, gerr
		}
		if existing == nil {
			return nil, domain.ErrCollectionNotFound
		}
		return existing, nil
	}

	return e.store.UpsertCollection(ctx, input)
}

// persistResults writes successful records and ledgers failures, clearing
// stale ledger rows for tokens that just succeeded
func (e *syncEngine) persistResults(ctx context.Context, collectionID int64, results []pipeline.Result) (written, failed int, err error) {
	records := make([]*domain.NFTRecord, 0, len(results))
	for _, result := range results {
		if result.Record != nil {
			records = append(records, result.Record)
		}
	}

	upserted, err := e.store.UpsertNFTs(ctx, collectionID, records)
	if err != nil {
		return 0, 0, err
	}
	written = upserted.Written
	failed = upserted.Failed

	for _, result := range results {
		if result.Failure != nil {
			failed++
			if lerr := e.store.UpsertFetchError(ctx, collectionID, result.TokenID, result.Failure.Type, result.Failure.Message); lerr != nil {
				logger.WarnCtx(ctx, "failed to record fetch error",
					zap.Int64("collection_id", collectionID),
					zap.String("token_id", result.TokenID),
					zap.Error(lerr))
			}
			continue
		}
		if cerr := e.store.ClearFetchErrors(ctx, collectionID, result.TokenID); cerr != nil {
			logger.WarnCtx(ctx, "failed to clear fetch errors",
				zap.Int64("collection_id", collectionID),
				zap.String("token_id", result.TokenID),
				zap.Error(cerr))
		}
	}

	return written, failed, nil
}

// resolveOwners fills OwnerAddress on ERC721 records via on-chain ownerOf.
// Best-effort: a failed lookup leaves the owner unset, never fails the run.
func (e *syncEngine) resolveOwners(ctx context.Context, contractAddress string, results []pipeline.Result) {
	for i := range results {
		if results[i].Record == nil {
			continue
		}
		if ctx.Err() != nil {
			return
		}
		owner, err := e.eth.ERC721OwnerOf(ctx, contractAddress, results[i].Record.TokenID)
		if err != nil {
			logger.DebugCtx(ctx, "owner lookup failed",
				zap.String("contract_address", contractAddress),
				zap.String("token_id", results[i].Record.TokenID),
				zap.Error(err))
			continue
		}
		checkedAt := e.clock.Now().UTC()
		results[i].Record.OwnerAddress = &owner
		results[i].Record.LastOwnerCheckAt = &checkedAt
	}
}

// finishRefresh invalidates cached pages and announces the refresh. Both are
// best-effort: the persisted data is already authoritative.
func (e *syncEngine) finishRefresh(ctx context.Context, contractAddress string, at time.Time) {
	if _, err := e.cache.Invalidate(ctx, contractAddress); err != nil {
		logger.WarnCtx(ctx, "cache invalidation failed",
			zap.String("contract_address", contractAddress),
			zap.Error(err))
	}
	if err := e.emitter.Emit(ctx, *domain.NewCollectionRefreshedEvent(contractAddress, at)); err != nil {
		logger.WarnCtx(ctx, "refresh event publish failed",
			zap.String("contract_address", contractAddress),
			zap.Error(err))
	}
}

// tokenTypeFromIndexer maps the indexer's token type labels to ours
func tokenTypeFromIndexer(s string) domain.TokenType {
	switch s {
	case "ERC721", "erc721":
		return domain.TokenTypeERC721
	case "ERC1155", "erc1155":
		return domain.TokenTypeERC1155
	default:
		return domain.TokenTypeUnknown
	}
}
