package consts

import "time"

// Redis key prefixes. Each key carries the owning userId as suffix.
const (
	// SessionKey holds the access token of a logged-in user.
	SessionKey = "corrigo:session:"

	// SubmitCooldownKey marks the cooldown started by a free-tier
	// word-limit violation.
	SubmitCooldownKey = "corrigo:cooldown:submit:"

	// BlacklistCacheKey caches the active blacklist word set.
	BlacklistCacheKey = "corrigo:blacklist:active"
)

const (
	// FreeLoginCooldown is measured from the last successful login.
	FreeLoginCooldown = 3 * time.Minute

	// FreeSubmitCooldown follows a word-limit rejection.
	FreeSubmitCooldown = 3 * time.Minute

	// BlacklistCacheTTL bounds staleness of the cached word set; a
	// cron job refreshes it ahead of expiry.
	BlacklistCacheTTL = 10 * time.Minute
)
