package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	promptKeyPrefix = "prompt:%d"

	// Aggregate stats keys
	PromptCountKey = "stats:prompts:count"
	TotalLikesKey  = "stats:prompts:total_likes"
)

const (
	// PromptTTL bounds staleness of anonymous prompt detail reads.
	PromptTTL = 5 * time.Minute
	// StatsTTL bounds staleness of the public aggregate counters.
	StatsTTL = 30 * time.Second
)

// PromptKey returns the cache key for a prompt's anonymous detail view.
func PromptKey(promptID uint) string {
	return fmt.Sprintf(promptKeyPrefix, promptID)
}

// Invalidate removes a single key. Best effort; a nil client is a no-op.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidatePrompt drops the cached detail for a prompt after any counter or
// lifecycle mutation.
func InvalidatePrompt(ctx context.Context, promptID uint) {
	Invalidate(ctx, PromptKey(promptID))
}

// InvalidateStats drops the cached aggregate counters.
func InvalidateStats(ctx context.Context) {
	Invalidate(ctx, PromptCountKey)
	Invalidate(ctx, TotalLikesKey)
}
