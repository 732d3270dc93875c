package pipeline_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirrorlabs/nft-mirror/internal/adapter"
	"github.com/mirrorlabs/nft-mirror/internal/domain"
	"github.com/mirrorlabs/nft-mirror/internal/indexer"
	"github.com/mirrorlabs/nft-mirror/internal/logger"
	"github.com/mirrorlabs/nft-mirror/internal/mocks"
	"github.com/mirrorlabs/nft-mirror/internal/pipeline"
)

const testContract = "0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d"

func TestMain(m *testing.M) {
	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

func setupPipelineTest(t *testing.T) (*mocks.MockIndexerClient, pipeline.Pipeline) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	client := mocks.NewMockIndexerClient(ctrl)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Sleep(gomock.Any()).AnyTimes()

	return client, pipeline.New(client, clock, adapter.NewJSON(), 4)
}

func tokenWithTitle(title string) *indexer.TokenMetadata {
	return &indexer.TokenMetadata{Title: title}
}

func resultsByTokenID(results []pipeline.Result) map[string]pipeline.Result {
	byID := make(map[string]pipeline.Result, len(results))
	for _, r := range results {
		byID[r.TokenID] = r
	}
	return byID
}

func TestFetchBatch_FailureIsolation(t *testing.T) {
	client, p := setupPipelineTest(t)

	client.EXPECT().GetNFTMetadata(gomock.Any(), testContract, "1").Return(tokenWithTitle("One"), nil)
	client.EXPECT().GetNFTMetadata(gomock.Any(), testContract, "2").Return(nil, errors.New("metadata unavailable"))
	client.EXPECT().GetNFTMetadata(gomock.Any(), testContract, "3").Return(tokenWithTitle("Three"), nil)

	results := p.FetchBatch(context.Background(), testContract, []string{"1", "2", "3"}, pipeline.Options{})
	require.Len(t, results, 3)

	byID := resultsByTokenID(results)
	assert.NotNil(t, byID["1"].Record)
	assert.NotNil(t, byID["3"].Record)

	// Token 2 failed without taking its siblings down
	require.NotNil(t, byID["2"].Failure)
	assert.Nil(t, byID["2"].Record)
	assert.Equal(t, domain.FetchErrorTypeMetadata, byID["2"].Failure.Type)
	assert.Equal(t, "metadata unavailable", byID["2"].Failure.Message)
}

func TestFetchBatch_BatchSizePartitioning(t *testing.T) {
	client, p := setupPipelineTest(t)

	for i := 0; i < 5; i++ {
		client.EXPECT().
			GetNFTMetadata(gomock.Any(), testContract, fmt.Sprintf("%d", i)).
			Return(tokenWithTitle("x"), nil)
	}

	results := p.FetchBatch(context.Background(), testContract,
		[]string{"0", "1", "2", "3", "4"}, pipeline.Options{BatchSize: 2})
	assert.Len(t, results, 5)
}

func TestFetchBatch_CancelledContext(t *testing.T) {
	_, p := setupPipelineTest(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := p.FetchBatch(ctx, testContract, []string{"1", "2"}, pipeline.Options{})
	assert.Empty(t, results)
}

func TestFetchOne_TitleFallback(t *testing.T) {
	tests := []struct {
		name     string
		meta     *indexer.TokenMetadata
		expected string
	}{
		{
			"indexer title wins",
			&indexer.TokenMetadata{
				Title:    "Bored Ape #42",
				Metadata: json.RawMessage(`{"name":"from raw metadata"}`),
			},
			"Bored Ape #42",
		},
		{
			"raw metadata name",
			&indexer.TokenMetadata{Metadata: json.RawMessage(`{"name":"from raw metadata"}`)},
			"from raw metadata",
		},
		{
			"synthesized placeholder",
			&indexer.TokenMetadata{},
			"NFT #42",
		},
		{
			"malformed raw metadata loses only the fallback",
			&indexer.TokenMetadata{Metadata: json.RawMessage(`{not json`)},
			"NFT #42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, p := setupPipelineTest(t)
			client.EXPECT().GetNFTMetadata(gomock.Any(), testContract, "42").Return(tt.meta, nil)

			result := p.FetchOne(context.Background(), testContract, "42")
			require.NotNil(t, result.Record)
			assert.Equal(t, tt.expected, result.Record.Title)
		})
	}
}

func TestFetchOne_MediaAndAttributes(t *testing.T) {
	client, p := setupPipelineTest(t)

	meta := &indexer.TokenMetadata{
		Title:       "Token",
		Description: "desc",
		Media: []indexer.MediaEntry{
			{Gateway: "https://cdn.example/1.png", Thumbnail: "https://cdn.example/1-thumb.png", Raw: "ipfs://raw", Format: "png", Bytes: 1024},
		},
		Metadata: json.RawMessage(`{"image":"ipfs://image","attributes":[{"trait_type":"Fur","value":"Golden"}]}`),
	}
	client.EXPECT().GetNFTMetadata(gomock.Any(), testContract, "1").Return(meta, nil)

	result := p.FetchOne(context.Background(), testContract, "1")
	require.NotNil(t, result.Record)

	record := result.Record
	assert.Equal(t, "https://cdn.example/1.png", record.ImageURL)
	assert.Equal(t, "https://cdn.example/1-thumb.png", record.ThumbnailURL)
	require.Len(t, record.Attributes, 1)
	assert.Equal(t, "Fur", record.Attributes[0].TraitType)
	assert.Equal(t, "Golden", record.Attributes[0].Value)
	require.Len(t, record.Media, 1)
	assert.Equal(t, int64(1024), record.Media[0].Bytes)
}

func TestFetchOne_ImageFallsBackToRawMetadata(t *testing.T) {
	client, p := setupPipelineTest(t)

	meta := &indexer.TokenMetadata{
		Title:    "Token",
		Metadata: json.RawMessage(`{"image":"ipfs://image"}`),
	}
	client.EXPECT().GetNFTMetadata(gomock.Any(), testContract, "1").Return(meta, nil)

	result := p.FetchOne(context.Background(), testContract, "1")
	require.NotNil(t, result.Record)
	assert.Equal(t, "ipfs://image", result.Record.ImageURL)
	assert.Equal(t, "ipfs://image", result.Record.ThumbnailURL)
}

func TestFetchBatch_PanickedTaskKeepsTokenID(t *testing.T) {
	client, p := setupPipelineTest(t)

	client.EXPECT().GetNFTMetadata(gomock.Any(), testContract, "1").Return(tokenWithTitle("One"), nil)
	client.EXPECT().GetNFTMetadata(gomock.Any(), testContract, "2").
		DoAndReturn(func(context.Context, string, string) (*indexer.TokenMetadata, error) {
			panic("metadata handler blew up")
		})

	results := p.FetchBatch(context.Background(), testContract, []string{"1", "2"}, pipeline.Options{})
	require.Len(t, results, 2)

	byID := resultsByTokenID(results)
	assert.NotNil(t, byID["1"].Record)

	// The synthesized failure must stay addressable in the error ledger
	require.Contains(t, byID, "2")
	require.NotNil(t, byID["2"].Failure)
	assert.Equal(t, domain.FetchErrorTypeMetadata, byID["2"].Failure.Type)
}
