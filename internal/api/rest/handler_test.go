package rest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirrorlabs/nft-mirror/internal/adapter"
	"github.com/mirrorlabs/nft-mirror/internal/domain"
	"github.com/mirrorlabs/nft-mirror/internal/engine"
	"github.com/mirrorlabs/nft-mirror/internal/logger"
	"github.com/mirrorlabs/nft-mirror/internal/mocks"
	"github.com/mirrorlabs/nft-mirror/internal/store/schema"
)

const testContract = "0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

type handlerMocks struct {
	ctrl   *gomock.Controller
	engine *mocks.MockEngine
	store  *mocks.MockStore
	cache  *mocks.MockCache

	router *gin.Engine
}

func setupHandlerTest(t *testing.T) *handlerMocks {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := &handlerMocks{
		ctrl:   ctrl,
		engine: mocks.NewMockEngine(ctrl),
		store:  mocks.NewMockStore(ctrl),
		cache:  mocks.NewMockCache(ctrl),
	}

	m.router = gin.New()
	SetupRoutes(m.router, NewHandler(m.engine, m.store, m.cache, adapter.NewJSON()))

	return m
}

func (m *handlerMocks) request(t *testing.T, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	m.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealthCheck(t *testing.T) {
	m := setupHandlerTest(t)

	w := m.request(t, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeBody(t, w)["status"])
}

func TestRefreshCollection(t *testing.T) {
	m := setupHandlerTest(t)

	until := time.Date(2025, 6, 1, 12, 5, 0, 0, time.UTC)
	m.engine.EXPECT().Refresh(gomock.Any(), testContract).
		Return(&engine.RefreshOutcome{
			ContractAddress: testContract,
			Discovered:      10,
			Written:         9,
			Failed:          1,
			CooldownUntil:   &until,
		}, nil)

	w := m.request(t, http.MethodPost, "/api/v1/collections/"+testContract+"/refresh")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, testContract, body["contractAddress"])
	assert.Equal(t, float64(10), body["discovered"])
	assert.Equal(t, float64(9), body["written"])
	assert.Equal(t, float64(1), body["failed"])
}

func TestRefreshCollection_InvalidAddress(t *testing.T) {
	m := setupHandlerTest(t)

	w := m.request(t, http.MethodPost, "/api/v1/collections/not-an-address/refresh")
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, errCodeBadRequest, body.Error.Code)
	assert.Equal(t, "Invalid contract address", body.Error.Message)
}

func TestRefreshCollection_InProgress(t *testing.T) {
	m := setupHandlerTest(t)

	m.engine.EXPECT().Refresh(gomock.Any(), testContract).
		Return(nil, domain.ErrRefreshInProgress)

	w := m.request(t, http.MethodPost, "/api/v1/collections/"+testContract+"/refresh")
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	// Flat contention body, not the errorResponse envelope
	body := decodeBody(t, w)
	assert.Equal(t, "Refresh already in progress", body["error"])
	assert.NotContains(t, body, "cooldownUntil")
}

func TestRefreshCollection_Cooldown(t *testing.T) {
	m := setupHandlerTest(t)

	until := time.Date(2025, 6, 1, 12, 5, 0, 0, time.UTC)
	m.engine.EXPECT().Refresh(gomock.Any(), testContract).
		Return(nil, &domain.CooldownError{Until: until, Remaining: 3*time.Minute + 20*time.Second})

	w := m.request(t, http.MethodPost, "/api/v1/collections/"+testContract+"/refresh")
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Collection refresh in cooldown", body["error"])
	assert.Equal(t, "2025-06-01T12:05:00Z", body["cooldownUntil"])
	assert.Equal(t, float64(3), body["remainingMinutes"])
}

func TestRefreshCollection_CooldownRoundsUpToAMinute(t *testing.T) {
	m := setupHandlerTest(t)

	until := time.Date(2025, 6, 1, 12, 0, 30, 0, time.UTC)
	m.engine.EXPECT().Refresh(gomock.Any(), testContract).
		Return(nil, &domain.CooldownError{Until: until, Remaining: 30 * time.Second})

	w := m.request(t, http.MethodPost, "/api/v1/collections/"+testContract+"/refresh")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["remainingMinutes"])
}

func TestRefreshCollection_UnfetchableIsNotFound(t *testing.T) {
	m := setupHandlerTest(t)

	m.engine.EXPECT().Refresh(gomock.Any(), testContract).
		Return(nil, domain.ErrCollectionNotFound)

	w := m.request(t, http.MethodPost, "/api/v1/collections/"+testContract+"/refresh")
	require.Equal(t, http.StatusNotFound, w.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, errCodeNotFound, body.Error.Code)
}

func TestGetRefreshStatus(t *testing.T) {
	m := setupHandlerTest(t)

	m.engine.EXPECT().RefreshStatus(gomock.Any(), testContract).
		Return(&engine.RefreshStatus{CanRefresh: true}, nil)

	w := m.request(t, http.MethodGet, "/api/v1/collections/"+testContract+"/refresh")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["canRefresh"])
}

func TestPopulateCollection(t *testing.T) {
	m := setupHandlerTest(t)

	m.engine.EXPECT().Populate(gomock.Any(), testContract).
		Return(&engine.PopulateAck{
			ContractAddress: testContract,
			CollectionID:    7,
			CollectionName:  "Test Collection",
		}, nil)

	w := m.request(t, http.MethodPost, "/api/v1/collections/"+testContract+"/populate")
	require.Equal(t, http.StatusAccepted, w.Code)

	// The ack identifies the collection the background work will fill
	body := decodeBody(t, w)
	assert.Equal(t, "accepted", body["status"])
	assert.Equal(t, testContract, body["contractAddress"])
	assert.Equal(t, float64(7), body["collectionId"])
	assert.Equal(t, "Test Collection", body["collectionName"])
}

func TestPopulateCollection_InProgress(t *testing.T) {
	m := setupHandlerTest(t)

	m.engine.EXPECT().Populate(gomock.Any(), testContract).
		Return(nil, domain.ErrRefreshInProgress)

	w := m.request(t, http.MethodPost, "/api/v1/collections/"+testContract+"/populate")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "Refresh already in progress", decodeBody(t, w)["error"])
}

func TestPopulateCollection_UnfetchableIsNotFound(t *testing.T) {
	m := setupHandlerTest(t)

	m.engine.EXPECT().Populate(gomock.Any(), testContract).
		Return(nil, domain.ErrCollectionNotFound)

	w := m.request(t, http.MethodPost, "/api/v1/collections/"+testContract+"/populate")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetPopulateStatus(t *testing.T) {
	m := setupHandlerTest(t)

	m.engine.EXPECT().PopulateStatus(gomock.Any(), testContract).
		Return(&engine.PopulateStatus{InProgress: true, RemainingTime: "25m0s", TokenCount: 42}, nil)

	w := m.request(t, http.MethodGet, "/api/v1/collections/"+testContract+"/populate")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["inProgress"])
	assert.Equal(t, float64(42), body["tokenCount"])
}

func TestGetCollection(t *testing.T) {
	m := setupHandlerTest(t)

	supply := int64(100)
	collection := &schema.Collection{
		ID:              7,
		ContractAddress: testContract,
		Name:            "Test Collection",
		TokenType:       domain.TokenTypeERC721,
		TotalSupply:     &supply,
	}

	m.cache.EXPECT().GetPage(gomock.Any(), testContract, "summary").Return(nil, nil)
	m.store.EXPECT().GetCollectionByAddress(gomock.Any(), testContract).Return(collection, nil)
	m.store.EXPECT().CountNFTs(gomock.Any(), int64(7)).Return(int64(42), nil)
	m.cache.EXPECT().SetPage(gomock.Any(), testContract, "summary", gomock.Any()).Return(nil)

	w := m.request(t, http.MethodGet, "/api/v1/collections/"+testContract)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Test Collection", body["name"])
	assert.Equal(t, "erc721", body["tokenType"])
	assert.Equal(t, float64(42), body["nftCount"])
}

func TestGetCollection_CacheHit(t *testing.T) {
	m := setupHandlerTest(t)

	cached := []byte(`{"contractAddress":"` + testContract + `","name":"Cached"}`)
	m.cache.EXPECT().GetPage(gomock.Any(), testContract, "summary").Return(cached, nil)

	// No store calls on a cache hit
	w := m.request(t, http.MethodGet, "/api/v1/collections/"+testContract)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, cached, w.Body.Bytes())
	assert.Equal(t, "Cached", decodeBody(t, w)["name"])
}

func TestGetCollection_NotFound(t *testing.T) {
	m := setupHandlerTest(t)

	m.cache.EXPECT().GetPage(gomock.Any(), testContract, "summary").Return(nil, nil)
	m.store.EXPECT().GetCollectionByAddress(gomock.Any(), testContract).Return(nil, nil)

	w := m.request(t, http.MethodGet, "/api/v1/collections/"+testContract)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListCollectionNFTs(t *testing.T) {
	m := setupHandlerTest(t)

	collection := &schema.Collection{ID: 7, ContractAddress: testContract}
	nfts := []*schema.NFT{
		{CollectionID: 7, TokenID: "1", Title: "One"},
		{CollectionID: 7, TokenID: "2", Title: "Two"},
	}

	m.cache.EXPECT().GetPage(gomock.Any(), testContract, "page:nfts:10:20").Return(nil, nil)
	m.store.EXPECT().GetCollectionByAddress(gomock.Any(), testContract).Return(collection, nil)
	m.store.EXPECT().ListNFTs(gomock.Any(), int64(7), 10, 20).Return(nfts, nil)
	m.store.EXPECT().CountNFTs(gomock.Any(), int64(7)).Return(int64(100), nil)
	m.cache.EXPECT().SetPage(gomock.Any(), testContract, "page:nfts:10:20", gomock.Any()).Return(nil)

	w := m.request(t, http.MethodGet, "/api/v1/collections/"+testContract+"/nfts?limit=10&offset=20")
	require.Equal(t, http.StatusOK, w.Code)

	var body NFTListDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(100), body.Total)
	assert.Equal(t, 10, body.Limit)
	assert.Equal(t, 20, body.Offset)
	require.Len(t, body.NFTs, 2)
	assert.Equal(t, "1", body.NFTs[0].TokenID)
}

func TestListCollectionNFTs_PageParamBounds(t *testing.T) {
	t.Run("invalid limit", func(t *testing.T) {
		m := setupHandlerTest(t)
		w := m.request(t, http.MethodGet, "/api/v1/collections/"+testContract+"/nfts?limit=abc")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("negative offset", func(t *testing.T) {
		m := setupHandlerTest(t)
		w := m.request(t, http.MethodGet, "/api/v1/collections/"+testContract+"/nfts?offset=-1")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("limit clamped to maximum", func(t *testing.T) {
		m := setupHandlerTest(t)

		m.cache.EXPECT().GetPage(gomock.Any(), testContract, "page:nfts:200:0").Return(nil, nil)
		m.store.EXPECT().GetCollectionByAddress(gomock.Any(), testContract).
			Return(&schema.Collection{ID: 7, ContractAddress: testContract}, nil)
		m.store.EXPECT().ListNFTs(gomock.Any(), int64(7), 200, 0).Return(nil, nil)
		m.store.EXPECT().CountNFTs(gomock.Any(), int64(7)).Return(int64(0), nil)
		m.cache.EXPECT().SetPage(gomock.Any(), testContract, "page:nfts:200:0", gomock.Any()).Return(nil)

		w := m.request(t, http.MethodGet, "/api/v1/collections/"+testContract+"/nfts?limit=9999")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestListFetchErrors(t *testing.T) {
	m := setupHandlerTest(t)

	collection := &schema.Collection{ID: 7, ContractAddress: testContract}
	rows := []*schema.NFTFetchError{
		{CollectionID: 7, TokenID: "9", ErrorType: domain.FetchErrorTypeTimeout, ErrorMessage: "deadline", RetryCount: 2},
	}

	m.store.EXPECT().GetCollectionByAddress(gomock.Any(), testContract).Return(collection, nil)
	m.store.EXPECT().ListFetchErrors(gomock.Any(), int64(7)).Return(rows, nil)

	w := m.request(t, http.MethodGet, "/api/v1/collections/"+testContract+"/errors")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, testContract, body["contractAddress"])
	ledger, ok := body["errors"].([]interface{})
	require.True(t, ok)
	require.Len(t, ledger, 1)
	entry := ledger[0].(map[string]interface{})
	assert.Equal(t, "9", entry["tokenId"])
	assert.Equal(t, "timeout", entry["errorType"])
	assert.Equal(t, float64(2), entry["retryCount"])
}

func TestRetryCollection(t *testing.T) {
	m := setupHandlerTest(t)

	m.engine.EXPECT().RetryCollection(gomock.Any(), testContract).
		Return(&engine.RetryOutcome{Attempted: 3, Recovered: 2, StillFailing: 1}, nil)

	w := m.request(t, http.MethodPost, "/api/v1/collections/"+testContract+"/retry")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, float64(3), body["attempted"])
	assert.Equal(t, float64(2), body["recovered"])
	assert.Equal(t, float64(1), body["stillFailing"])
}

func TestRetryCollection_NotFound(t *testing.T) {
	m := setupHandlerTest(t)

	m.engine.EXPECT().RetryCollection(gomock.Any(), testContract).
		Return(nil, domain.ErrCollectionNotFound)

	w := m.request(t, http.MethodPost, "/api/v1/collections/"+testContract+"/retry")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
