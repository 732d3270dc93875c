package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/mirrorlabs/nft-mirror/internal/domain"
)

const testContract = "0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d"

// RunStoreTests runs the shared store test suite against any Store
// implementation. initDB must return a clean store per test; cleanupDB is
// called after each test.
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s Store)
	}{
		{"UpsertCollection", testUpsertCollection},
		{"UpsertCollectionIdempotent", testUpsertCollectionIdempotent},
		{"GetCollectionByAddress", testGetCollectionByAddress},
		{"GetCollectionByID", testGetCollectionByID},
		{"RefreshTimestamps", testRefreshTimestamps},
		{"UpsertNFTs", testUpsertNFTs},
		{"UpsertNFTsIdempotent", testUpsertNFTsIdempotent},
		{"UpsertNFTsKeepsStoredOwner", testUpsertNFTsKeepsStoredOwner},
		{"ListNFTs", testListNFTs},
		{"FetchErrorRetryCount", testFetchErrorRetryCount},
		{"FetchErrorTypesAreSeparateRows", testFetchErrorTypesAreSeparateRows},
		{"ClearFetchErrors", testClearFetchErrors},
		{"ListRetryableFetchErrors", testListRetryableFetchErrors},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, s)
		})
	}
}

func mustCreateCollection(t *testing.T, s Store, contractAddress string) int64 {
	t.Helper()
	collection, err := s.UpsertCollection(context.Background(), UpsertCollectionInput{
		ContractAddress: contractAddress,
		Name:            "Test Collection",
		TokenType:       domain.TokenTypeERC721,
	})
	require.NoError(t, err)
	require.NotNil(t, collection)
	require.NotZero(t, collection.ID)
	return collection.ID
}

func testRecord(tokenID, title string) *domain.NFTRecord {
	return &domain.NFTRecord{
		TokenID:      tokenID,
		Title:        title,
		Description:  "a token",
		ImageURL:     "https://cdn.example/" + tokenID + ".png",
		ThumbnailURL: "https://cdn.example/" + tokenID + "-thumb.png",
		Metadata:     datatypes.JSON(`{"name":"` + title + `"}`),
	}
}

func testUpsertCollection(t *testing.T, s Store) {
	ctx := context.Background()

	supply := int64(10000)
	collection, err := s.UpsertCollection(ctx, UpsertCollectionInput{
		ContractAddress: "0xBC4CA0EdA7647A8aB7C2061c2E118A18a936f13D",
		Name:            "Bored Apes",
		TokenType:       domain.TokenTypeERC721,
		TotalSupply:     &supply,
	})
	require.NoError(t, err)

	// The contract address is stored lowercase
	assert.Equal(t, testContract, collection.ContractAddress)
	assert.Equal(t, "Bored Apes", collection.Name)
	assert.Equal(t, domain.TokenTypeERC721, collection.TokenType)
	require.NotNil(t, collection.TotalSupply)
	assert.Equal(t, int64(10000), *collection.TotalSupply)

	// An empty token type defaults to unknown
	other, err := s.UpsertCollection(ctx, UpsertCollectionInput{
		ContractAddress: "0x0000000000000000000000000000000000000001",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TokenTypeUnknown, other.TokenType)
}

func testUpsertCollectionIdempotent(t *testing.T, s Store) {
	ctx := context.Background()

	first, err := s.UpsertCollection(ctx, UpsertCollectionInput{
		ContractAddress: testContract,
		Name:            "Old Name",
		TokenType:       domain.TokenTypeUnknown,
	})
	require.NoError(t, err)

	supply := int64(3)
	second, err := s.UpsertCollection(ctx, UpsertCollectionInput{
		ContractAddress: testContract,
		Name:            "New Name",
		TokenType:       domain.TokenTypeERC721,
		TotalSupply:     &supply,
	})
	require.NoError(t, err)

	// Same row, refreshed fields
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "New Name", second.Name)
	assert.Equal(t, domain.TokenTypeERC721, second.TokenType)
}

func testGetCollectionByAddress(t *testing.T, s Store) {
	ctx := context.Background()
	mustCreateCollection(t, s, testContract)

	collection, err := s.GetCollectionByAddress(ctx, "0xBC4CA0EdA7647A8aB7C2061c2E118A18a936f13D")
	require.NoError(t, err)
	require.NotNil(t, collection)
	assert.Equal(t, testContract, collection.ContractAddress)

	missing, err := s.GetCollectionByAddress(ctx, "0x0000000000000000000000000000000000000009")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func testGetCollectionByID(t *testing.T, s Store) {
	ctx := context.Background()
	id := mustCreateCollection(t, s, testContract)

	collection, err := s.GetCollectionByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, collection)
	assert.Equal(t, testContract, collection.ContractAddress)

	missing, err := s.GetCollectionByID(ctx, id+100000)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func testRefreshTimestamps(t *testing.T, s Store) {
	ctx := context.Background()
	id := mustCreateCollection(t, s, testContract)

	refreshedAt := time.Now().UTC().Truncate(time.Second)
	cooldownUntil := refreshedAt.Add(5 * time.Minute)

	require.NoError(t, s.TouchLastRefresh(ctx, id, refreshedAt))
	require.NoError(t, s.SetRefreshCooldown(ctx, id, cooldownUntil))

	collection, err := s.GetCollectionByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, collection.LastRefreshAt)
	require.NotNil(t, collection.RefreshCooldownUntil)
	assert.WithinDuration(t, refreshedAt, *collection.LastRefreshAt, time.Second)
	assert.WithinDuration(t, cooldownUntil, *collection.RefreshCooldownUntil, time.Second)
}

func testUpsertNFTs(t *testing.T, s Store) {
	ctx := context.Background()
	id := mustCreateCollection(t, s, testContract)

	owner := "0x0000000000000000000000000000000000000001"
	record := testRecord("1", "Token One")
	record.OwnerAddress = &owner

	result, err := s.UpsertNFTs(ctx, id, []*domain.NFTRecord{record, testRecord("2", "Token Two")})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Written)
	assert.Equal(t, 0, result.Failed)

	count, err := s.CountNFTs(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	nfts, err := s.ListNFTs(ctx, id, 10, 0)
	require.NoError(t, err)
	require.Len(t, nfts, 2)
	assert.Equal(t, "Token One", nfts[0].Title)
	require.NotNil(t, nfts[0].OwnerAddress)
	assert.Equal(t, owner, *nfts[0].OwnerAddress)
	assert.JSONEq(t, `{"name":"Token One"}`, string(nfts[0].Metadata))
}

func testUpsertNFTsIdempotent(t *testing.T, s Store) {
	ctx := context.Background()
	id := mustCreateCollection(t, s, testContract)

	_, err := s.UpsertNFTs(ctx, id, []*domain.NFTRecord{testRecord("1", "Old Title")})
	require.NoError(t, err)

	result, err := s.UpsertNFTs(ctx, id, []*domain.NFTRecord{testRecord("1", "New Title")})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Written)

	// Re-running a refresh converges instead of duplicating
	count, err := s.CountNFTs(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	nfts, err := s.ListNFTs(ctx, id, 10, 0)
	require.NoError(t, err)
	require.Len(t, nfts, 1)
	assert.Equal(t, "New Title", nfts[0].Title)
}

func testUpsertNFTsKeepsStoredOwner(t *testing.T, s Store) {
	ctx := context.Background()
	id := mustCreateCollection(t, s, testContract)

	owner := "0x0000000000000000000000000000000000000001"
	checkedAt := time.Now().UTC().Truncate(time.Second)
	record := testRecord("1", "Token One")
	record.OwnerAddress = &owner
	record.LastOwnerCheckAt = &checkedAt

	_, err := s.UpsertNFTs(ctx, id, []*domain.NFTRecord{record})
	require.NoError(t, err)

	// A refresh without owner resolution carries nil owner fields; the
	// stored owner must survive the metadata update
	_, err = s.UpsertNFTs(ctx, id, []*domain.NFTRecord{testRecord("1", "Renamed")})
	require.NoError(t, err)

	nfts, err := s.ListNFTs(ctx, id, 10, 0)
	require.NoError(t, err)
	require.Len(t, nfts, 1)
	assert.Equal(t, "Renamed", nfts[0].Title)
	require.NotNil(t, nfts[0].OwnerAddress)
	assert.Equal(t, owner, *nfts[0].OwnerAddress)
	require.NotNil(t, nfts[0].LastOwnerCheckAt)
	assert.WithinDuration(t, checkedAt, *nfts[0].LastOwnerCheckAt, time.Second)
}

func testListNFTs(t *testing.T, s Store) {
	ctx := context.Background()
	id := mustCreateCollection(t, s, testContract)

	records := make([]*domain.NFTRecord, 0, 5)
	for i := 0; i < 5; i++ {
		tokenID := fmt.Sprintf("%d", i)
		records = append(records, testRecord(tokenID, "Token "+tokenID))
	}
	_, err := s.UpsertNFTs(ctx, id, records)
	require.NoError(t, err)

	page, err := s.ListNFTs(ctx, id, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "2", page[0].TokenID)
	assert.Equal(t, "3", page[1].TokenID)

	// Tokens of other collections are invisible
	otherID := mustCreateCollection(t, s, "0x0000000000000000000000000000000000000002")
	page, err = s.ListNFTs(ctx, otherID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func testFetchErrorRetryCount(t *testing.T, s Store) {
	ctx := context.Background()
	id := mustCreateCollection(t, s, testContract)

	require.NoError(t, s.UpsertFetchError(ctx, id, "9", domain.FetchErrorTypeTimeout, "deadline exceeded"))
	require.NoError(t, s.UpsertFetchError(ctx, id, "9", domain.FetchErrorTypeTimeout, "deadline exceeded again"))

	rows, err := s.ListFetchErrors(ctx, id)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "9", rows[0].TokenID)
	assert.Equal(t, domain.FetchErrorTypeTimeout, rows[0].ErrorType)
	assert.Equal(t, 2, rows[0].RetryCount)
	assert.Equal(t, "deadline exceeded again", rows[0].ErrorMessage)
}

func testFetchErrorTypesAreSeparateRows(t *testing.T, s Store) {
	ctx := context.Background()
	id := mustCreateCollection(t, s, testContract)

	require.NoError(t, s.UpsertFetchError(ctx, id, "9", domain.FetchErrorTypeTimeout, "deadline"))
	require.NoError(t, s.UpsertFetchError(ctx, id, "9", domain.FetchErrorTypeDecode, "bad json"))

	rows, err := s.ListFetchErrors(ctx, id)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	// Deleting one type leaves the other
	require.NoError(t, s.DeleteFetchError(ctx, id, "9", domain.FetchErrorTypeTimeout))
	rows, err = s.ListFetchErrors(ctx, id)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.FetchErrorTypeDecode, rows[0].ErrorType)
}

func testClearFetchErrors(t *testing.T, s Store) {
	ctx := context.Background()
	id := mustCreateCollection(t, s, testContract)

	require.NoError(t, s.UpsertFetchError(ctx, id, "9", domain.FetchErrorTypeTimeout, "deadline"))
	require.NoError(t, s.UpsertFetchError(ctx, id, "9", domain.FetchErrorTypeDecode, "bad json"))
	require.NoError(t, s.UpsertFetchError(ctx, id, "10", domain.FetchErrorTypeMetadata, "missing"))

	require.NoError(t, s.ClearFetchErrors(ctx, id, "9"))

	rows, err := s.ListFetchErrors(ctx, id)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "10", rows[0].TokenID)
}

func testListRetryableFetchErrors(t *testing.T, s Store) {
	ctx := context.Background()
	id := mustCreateCollection(t, s, testContract)

	// Token 1 has failed three times and is past the ceiling
	for i := 0; i < 3; i++ {
		require.NoError(t, s.UpsertFetchError(ctx, id, "1", domain.FetchErrorTypeMetadata, "broken"))
	}
	require.NoError(t, s.UpsertFetchError(ctx, id, "2", domain.FetchErrorTypeTimeout, "deadline"))

	rows, err := s.ListRetryableFetchErrors(ctx, 10, 3)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2", rows[0].TokenID)

	// The limit caps the batch
	rows, err = s.ListRetryableFetchErrors(ctx, 0, 3)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
