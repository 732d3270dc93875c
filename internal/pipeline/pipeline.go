// Package pipeline turns discovered token IDs into normalized NFT records.
//
// Fetches within a batch run concurrently; batches are spaced out to avoid
// bursting the paid upstream API. A single token's failure is isolated into a
// typed Result so it never aborts its siblings.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/mirrorlabs/nft-mirror/internal/adapter"
	"github.com/mirrorlabs/nft-mirror/internal/domain"
	"github.com/mirrorlabs/nft-mirror/internal/indexer"
	"github.com/mirrorlabs/nft-mirror/internal/logger"
)

const (
	// DefaultBatchSize is used for background population
	DefaultBatchSize = 10
	// interBatchDelay spaces out batches against the upstream API
	interBatchDelay = 1 * time.Second
)

// Options controls batching behavior for one FetchBatch invocation
type Options struct {
	// BatchSize is the number of tokens fetched concurrently before the
	// inter-batch delay; 0 means one unbounded batch (interactive refresh)
	BatchSize int
}

// Result is either a populated record or a typed failure for one token
type Result struct {
	TokenID string
	Record  *domain.NFTRecord
	Failure *domain.FetchFailure
}

// Pipeline fetches and normalizes metadata for sets of tokens
//
//go:generate mockgen -source=pipeline.go -destination=../mocks/pipeline.go -package=mocks -mock_names=Pipeline=MockPipeline
type Pipeline interface {
	// FetchBatch fetches metadata for the given token IDs. Output ordering is
	// not guaranteed; callers must key results by TokenID.
	FetchBatch(ctx context.Context, contractAddress string, tokenIDs []string, opts Options) []Result

	// FetchOne fetches and normalizes a single token
	FetchOne(ctx context.Context, contractAddress, tokenID string) Result
}

type fetchPipeline struct {
	client indexer.Client
	clock  adapter.Clock
	json   adapter.JSON
	pool   pond.ResultPool[Result]
}

// New creates a fetch pipeline backed by a shared worker pool
func New(client indexer.Client, clock adapter.Clock, jsonAdapter adapter.JSON, maxWorkers int) Pipeline {
	if maxWorkers <= 0 {
		maxWorkers = 32
	}
	return &fetchPipeline{
		client: client,
		clock:  clock,
		json:   jsonAdapter,
		pool:   pond.NewResultPool[Result](maxWorkers),
	}
}

// FetchBatch partitions token IDs into batches, fetching each batch
// concurrently with a fixed delay between batches
func (p *fetchPipeline) FetchBatch(ctx context.Context, contractAddress string, tokenIDs []string, opts Options) []Result {
	batchSize := opts.BatchSize
	if batchSize <= 0 || batchSize > len(tokenIDs) {
		batchSize = len(tokenIDs)
	}

	results := make([]Result, 0, len(tokenIDs))

	for start := 0; start < len(tokenIDs); start += batchSize {
		if err := ctx.Err(); err != nil {
			// Authority window expired; abandon the rest rather than writing
			// past it. Tokens not attempted carry no failure record.
			logger.WarnCtx(ctx, "fetch batch canceled",
				zap.String("contract_address", contractAddress),
				zap.Int("fetched", len(results)),
				zap.Int("remaining", len(tokenIDs)-start))
			return results
		}

		if start > 0 {
			p.clock.Sleep(interBatchDelay)
		}

		end := min(start+batchSize, len(tokenIDs))
		batch := tokenIDs[start:end]

		tasks := make([]pond.Result[Result], 0, len(batch))
		for _, tokenID := range batch {
			id := tokenID
			tasks = append(tasks, p.pool.Submit(func() Result {
				return p.FetchOne(ctx, contractAddress, id)
			}))
		}

		for i, task := range tasks {
			result, err := task.Wait()
			if err != nil {
				// Pool-level failure (canceled task); synthesize a typed failure
				// keyed on the token so the ledger row is addressable
				result = Result{
					TokenID: batch[i],
					Failure: &domain.FetchFailure{
						Type:    domain.FetchErrorTypeMetadata,
						Message: err.Error(),
					},
				}
			}
			results = append(results, result)
		}
	}

	return results
}

// FetchOne fetches and normalizes a single token, converting any error into a
// typed failure
func (p *fetchPipeline) FetchOne(ctx context.Context, contractAddress, tokenID string) Result {
	meta, err := p.client.GetNFTMetadata(ctx, contractAddress, tokenID)
	if err != nil {
		return Result{
			TokenID: tokenID,
			Failure: &domain.FetchFailure{
				Type:    classifyFetchError(err),
				Message: err.Error(),
			},
		}
	}

	return Result{TokenID: tokenID, Record: p.normalize(tokenID, meta)}
}

// normalize maps the heterogeneous indexer response shape onto an NFTRecord
func (p *fetchPipeline) normalize(tokenID string, meta *indexer.TokenMetadata) *domain.NFTRecord {
	var raw indexer.RawMetadata
	if len(meta.Metadata) > 0 {
		// Raw metadata is untrusted; a malformed document only loses the
		// fallback fields, not the token
		if err := p.json.Unmarshal(meta.Metadata, &raw); err != nil {
			raw = indexer.RawMetadata{}
		}
	}

	title := meta.Title
	if title == "" {
		title = raw.Name
	}
	if title == "" {
		title = fmt.Sprintf("NFT #%s", tokenID)
	}

	// Prefer a cached URL, then the original, then the raw metadata image
	var imageURL, thumbnailURL string
	if len(meta.Media) > 0 {
		first := meta.Media[0]
		switch {
		case first.Gateway != "":
			imageURL = first.Gateway
		case first.Raw != "":
			imageURL = first.Raw
		}
		thumbnailURL = first.Thumbnail
	}
	if imageURL == "" {
		imageURL = raw.Image
	}
	if thumbnailURL == "" {
		thumbnailURL = imageURL
	}

	attributes := make([]domain.TokenAttribute, 0, len(raw.Attributes))
	for _, attr := range raw.Attributes {
		attributes = append(attributes, domain.TokenAttribute{
			TraitType: attr.TraitType,
			Value:     attr.Value,
		})
	}

	media := make([]domain.TokenMedia, 0, len(meta.Media))
	for _, m := range meta.Media {
		media = append(media, domain.TokenMedia{
			Gateway:   m.Gateway,
			Thumbnail: m.Thumbnail,
			Raw:       m.Raw,
			Format:    m.Format,
			Bytes:     m.Bytes,
		})
	}

	return &domain.NFTRecord{
		TokenID:      tokenID,
		Title:        title,
		Description:  meta.Description,
		ImageURL:     imageURL,
		ThumbnailURL: thumbnailURL,
		Metadata:     datatypes.JSON(meta.Metadata),
		Attributes:   attributes,
		Media:        media,
	}
}

// classifyFetchError maps an error to a ledger error type
func classifyFetchError(err error) domain.FetchErrorType {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.FetchErrorTypeTimeout
	}
	if strings.Contains(err.Error(), "unmarshal") {
		return domain.FetchErrorTypeDecode
	}
	return domain.FetchErrorTypeMetadata
}
