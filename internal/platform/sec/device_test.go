// Copyright (c) 2026 Lootforge. All rights reserved.
// Author: contact@lootforge.dev

package sec_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haneulkim/lootforge/internal/platform/sec"
)

func TestNewDeviceID(t *testing.T) {
	id, err := sec.NewDeviceID()
	require.NoError(t, err)

	assert.Len(t, id, 32, "16 random bytes hex-encoded")
	_, err = hex.DecodeString(id)
	assert.NoError(t, err)
}

func TestNewDeviceID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := sec.NewDeviceID()
		require.NoError(t, err)
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := sec.HashPassword("pw123456")
	require.NoError(t, err)
	require.NotEqual(t, "pw123456", hash)

	assert.True(t, sec.CheckPasswordHash("pw123456", hash))
	assert.False(t, sec.CheckPasswordHash("pw1234567", hash))
}
