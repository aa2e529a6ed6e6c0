// File: utils/constants.go
package utils

import "time"

// IdemKeyPrefix is the prefix used for idempotency record keys in the store.
const IdemKeyPrefix = "idem:"

// AnalyticsKeyPrefix is the prefix used for persisted analytics records.
const AnalyticsKeyPrefix = "analytics:"

// DefaultIdempotencyTTL is the retention window for idempotency records.
const DefaultIdempotencyTTL = 24 * time.Hour

// DefaultHoldTTL is the supplier-side expiry applied to inventory holds.
const DefaultHoldTTL = 30 * time.Minute

// DefaultAuthTTL is the expiry window of a payment authorization.
const DefaultAuthTTL = time.Hour
