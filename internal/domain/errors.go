package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrRefreshInProgress is returned when another refresh holds the discovery lock
	ErrRefreshInProgress = errors.New("refresh already in progress")

	// ErrCollectionNotFound is returned when a collection is unknown and cannot be fetched
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrInvalidContractAddress is returned for malformed contract addresses
	ErrInvalidContractAddress = errors.New("invalid contract address")
)

// CooldownError is returned when a refresh is rejected because the collection's
// cooldown window has not elapsed yet
type CooldownError struct {
	Until     time.Time
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("collection refresh in cooldown for %s", e.Remaining.Round(time.Second))
}

// IsCooldown reports whether err is a CooldownError and returns it if so
func IsCooldown(err error) (*CooldownError, bool) {
	var ce *CooldownError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
