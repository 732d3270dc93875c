package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidContractAddress(t *testing.T) {
	tests := []struct {
		name    string
		address string
		valid   bool
	}{
		{"lowercase", "0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d", true},
		{"mixed case", "0xBC4CA0EdA7647A8aB7C2061c2E118A18a936f13D", true},
		{"missing prefix", "bc4ca0eda7647a8ab7c2061c2e118a18a936f13d", false},
		{"too short", "0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13", false},
		{"too long", "0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d0", false},
		{"non-hex", "0xzc4ca0eda7647a8ab7c2061c2e118a18a936f13d", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidContractAddress(tt.address))
		})
	}
}

func TestNormalizeContractAddress(t *testing.T) {
	assert.Equal(t,
		"0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d",
		NormalizeContractAddress("0xBC4CA0EdA7647A8aB7C2061c2E118A18a936f13D"))
}

func TestRefreshKindLockTTL(t *testing.T) {
	assert.Equal(t, 5*time.Minute, RefreshKindLight.LockTTL())
	assert.Equal(t, 30*time.Minute, RefreshKindPopulate.LockTTL())
}

func TestIsCooldown(t *testing.T) {
	until := time.Now().Add(3 * time.Minute)
	var err error = &CooldownError{Until: until, Remaining: 3 * time.Minute}

	ce, ok := IsCooldown(err)
	require.True(t, ok)
	assert.Equal(t, until, ce.Until)

	// Wrapped errors still match
	wrapped := fmt.Errorf("refresh rejected: %w", err)
	_, ok = IsCooldown(wrapped)
	assert.True(t, ok)

	_, ok = IsCooldown(errors.New("something else"))
	assert.False(t, ok)
}

func TestNewCollectionRefreshedEvent(t *testing.T) {
	at := time.Now().UTC()
	event := NewCollectionRefreshedEvent("0xBC4CA0EdA7647A8aB7C2061c2E118A18a936f13D", at)

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, CacheEventCollectionRefreshed, event.Type)
	assert.Equal(t, "0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d", event.ContractAddress)
	assert.Equal(t, at, event.Timestamp)
}
