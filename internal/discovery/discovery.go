// Package discovery enumerates the token IDs a contract has minted.
//
// Two complementary strategies exist because neither is complete on its own:
// the paginated full-scan trusts the external indexer, which misses tokens for
// contracts with non-standard event emission, while the sequential probe
// brute-forces small ID ranges directly. Their outputs are unioned so recall
// monotonically improves at the cost of extra calls.
package discovery

import (
	"context"

	"github.com/mirrorlabs/nft-mirror/internal/domain"
)

// Hint carries what is already known about a collection so a strategy can
// decide whether and how to run
type Hint struct {
	TokenType   domain.TokenType
	TotalSupply *int64
}

// Strategy enumerates token IDs for a contract. Implementations are
// best-effort: a partial set with a nil error is a valid outcome.
//
//go:generate mockgen -source=discovery.go -destination=../mocks/discovery.go -package=mocks -mock_names=Strategy=MockDiscoveryStrategy
type Strategy interface {
	Discover(ctx context.Context, contractAddress string, hint Hint) (TokenIDSet, error)
}
