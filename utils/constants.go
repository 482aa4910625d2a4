// File: utils/constants.go
package utils

import "time"

// SessionKeyPrefix is the prefix used for Redis call-session keys.
const SessionKeyPrefix = "call:sess:"

// SessionTTL is how long an abandoned call session survives before Redis
// evicts it. Completion deletes the session explicitly.
const SessionTTL = 30 * time.Minute

// PromptCachePrefix is the prefix used for rendered prompt audio URL keys.
const PromptCachePrefix = "prompt:audio:"

// PromptCacheTTL is the time-to-live for cached prompt audio URLs.
const PromptCacheTTL = 24 * time.Hour
