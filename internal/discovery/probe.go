package discovery

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/mirrorlabs/nft-mirror/internal/adapter"
	"github.com/mirrorlabs/nft-mirror/internal/indexer"
	"github.com/mirrorlabs/nft-mirror/internal/logger"
)

const (
	// MaxProbeSupply is the supply ceiling above which brute-force probing is
	// too expensive to run
	MaxProbeSupply = 10_000
	// probeDelay throttles per-ID lookups against the external API
	probeDelay = 100 * time.Millisecond
)

// SequentialProbe brute-force checks token IDs 0..totalSupply-1 with
// single-token metadata lookups. It exists because indexers are sometimes
// incomplete for contracts with non-standard event emission; it is a
// deliberate redundancy, not an optimization.
type SequentialProbe struct {
	client indexer.Client
	clock  adapter.Clock
}

// NewSequentialProbe creates the sequential probe strategy
func NewSequentialProbe(client indexer.Client, clock adapter.Clock) *SequentialProbe {
	return &SequentialProbe{client: client, clock: clock}
}

// Discover probes each integer ID below the known supply. A lookup failure
// (token absent, contract revert) is treated as "does not exist" and skipped.
// The strategy is a no-op when the supply is unknown or above MaxProbeSupply.
func (p *SequentialProbe) Discover(ctx context.Context, contractAddress string, hint Hint) (TokenIDSet, error) {
	found := make(TokenIDSet)

	if hint.TotalSupply == nil || *hint.TotalSupply <= 0 || *hint.TotalSupply >= MaxProbeSupply {
		return found, nil
	}
	supply := *hint.TotalSupply

	for i := int64(0); i < supply; i++ {
		if err := ctx.Err(); err != nil {
			return found, err
		}

		tokenID := strconv.FormatInt(i, 10)
		if _, err := p.client.GetNFTMetadata(ctx, contractAddress, tokenID); err != nil {
			logger.DebugCtx(ctx, "probe miss",
				zap.String("contract_address", contractAddress),
				zap.String("token_id", tokenID),
				zap.Error(err))
		} else {
			found.Add(tokenID)
		}

		p.clock.Sleep(probeDelay)
	}

	logger.DebugCtx(ctx, "sequential probe complete",
		zap.String("contract_address", contractAddress),
		zap.Int64("supply", supply),
		zap.Int("tokens_found", len(found)))

	return found, nil
}
