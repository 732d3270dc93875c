package discovery

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mirrorlabs/nft-mirror/internal/adapter"
	"github.com/mirrorlabs/nft-mirror/internal/indexer"
	"github.com/mirrorlabs/nft-mirror/internal/logger"
)

const (
	// defaultPageSize is the number of tokens requested per listing page
	defaultPageSize = 100
	// pageDelay spaces out listing calls to respect upstream rate limits
	pageDelay = 200 * time.Millisecond
)

// FullScan walks the indexer's contract-NFT listing to exhaustion using the
// page-key cursor. On a page error it stops early and returns what it has.
type FullScan struct {
	client   indexer.Client
	clock    adapter.Clock
	pageSize int
}

// NewFullScan creates the paginated full-scan strategy
func NewFullScan(client indexer.Client, clock adapter.Clock) *FullScan {
	return &FullScan{
		client:   client,
		clock:    clock,
		pageSize: defaultPageSize,
	}
}

// Discover pages through the indexer listing until no next cursor is returned
func (f *FullScan) Discover(ctx context.Context, contractAddress string, _ Hint) (TokenIDSet, error) {
	found := make(TokenIDSet)
	pageKey := ""
	pages := 0

	for {
		if err := ctx.Err(); err != nil {
			return found, err
		}

		page, err := f.client.GetNFTsForContract(ctx, contractAddress, pageKey, f.pageSize)
		if err != nil {
			// Best-effort: keep whatever earlier pages produced
			logger.WarnCtx(ctx, "full-scan page fetch failed, stopping early",
				zap.String("contract_address", contractAddress),
				zap.Int("pages_fetched", pages),
				zap.Int("tokens_found", len(found)),
				zap.Error(err))
			return found, nil
		}

		for _, nft := range page.NFTs {
			if nft.ID.TokenID != "" {
				found.Add(nft.ID.TokenID)
			}
		}
		pages++

		if page.PageKey == "" {
			break
		}
		pageKey = page.PageKey

		f.clock.Sleep(pageDelay)
	}

	logger.DebugCtx(ctx, "full-scan discovery complete",
		zap.String("contract_address", contractAddress),
		zap.Int("pages", pages),
		zap.Int("tokens_found", len(found)))

	return found, nil
}
