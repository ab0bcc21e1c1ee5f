// Copyright (c) 2026 Lootforge. All rights reserved.
// Author: contact@lootforge.dev

package sec

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// deviceIDBytes is the entropy of a device identifier. 16 bytes = 128 bits,
// enough that collisions between independently minted ids are negligible.
const deviceIDBytes = 16

// NewDeviceID mints an opaque per-login device identifier.
//
// # Role
//
// The id is NOT a credential; it carries no claims and is never verified.
// It only namespaces the client-side credential slots so one account can hold
// independent sessions on multiple browsers/devices without them colliding.
func NewDeviceID() (string, error) {
	buffer := make([]byte, deviceIDBytes)
	if _, err := rand.Read(buffer); err != nil {
		return "", fmt.Errorf("sec: failed to generate device id: %w", err)
	}
	return hex.EncodeToString(buffer), nil
}
