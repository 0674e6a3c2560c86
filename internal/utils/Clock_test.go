package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSystemClock_Now(t *testing.T) {
	saigon := time.FixedZone("Asia/Ho_Chi_Minh", 7*60*60)

	now := SystemClock{Location: saigon}.Now()

	assert.Equal(t, saigon, now.Location())
	assert.WithinDuration(t, time.Now(), now, time.Minute)
}

func TestMockClock(t *testing.T) {
	start := time.Date(2025, 10, 19, 23, 0, 0, 0, time.UTC)
	clock := &MockClock{FixedNow: start}

	clock.Advance(2 * time.Hour)
	assert.True(t, start.Add(2*time.Hour).Equal(clock.Now()))

	clock.SetNow(start)
	assert.True(t, start.Equal(clock.Now()))
}
