// ABOUTME: Per-call options and the layered configuration cascade
// ABOUTME: Resolves overrides against environment defaults into one immutable config

package bluesky

import (
	"fmt"

	"bluesky-feed-api/pkg/config"
)

// Options carries per-call overrides for one feed invocation. A nil
// pointer (or empty Handle) falls back to the environment default.
type Options struct {
	Handle    string
	Limit     *int
	Cache     *bool
	Replies   *bool
	Images    *bool
	External  *bool
	OnlyPosts *bool
	Boost     *bool
}

// EffectiveConfig is the fully resolved configuration for one
// invocation, computed once at entry and never mutated afterward.
type EffectiveConfig struct {
	Handle        string
	Limit         int
	CacheEnabled  bool
	AllowReplies  bool
	AllowImages   bool
	AllowExternal bool
	OnlyPosts     bool
	Boost         bool
}

// ResolveConfig merges per-call overrides with environment defaults.
// Missing or invalid inputs silently fall back down the default chain;
// resolution never fails.
func ResolveConfig(defaults config.BlueskyConfig, opts Options) EffectiveConfig {
	cfg := EffectiveConfig{
		Handle:        defaults.Handle,
		Limit:         defaults.Limit,
		CacheEnabled:  defaults.Cache,
		AllowReplies:  defaults.Replies,
		AllowImages:   defaults.Images,
		AllowExternal: defaults.External,
		OnlyPosts:     defaults.OnlyPosts,
		Boost:         defaults.Boost,
	}

	if opts.Handle != "" {
		cfg.Handle = opts.Handle
	}
	if opts.Limit != nil && *opts.Limit >= 0 {
		cfg.Limit = *opts.Limit
	}
	if opts.Cache != nil {
		cfg.CacheEnabled = *opts.Cache
	}
	if opts.Replies != nil {
		cfg.AllowReplies = *opts.Replies
	}
	if opts.Images != nil {
		cfg.AllowImages = *opts.Images
	}
	if opts.External != nil {
		cfg.AllowExternal = *opts.External
	}
	if opts.OnlyPosts != nil {
		cfg.OnlyPosts = *opts.OnlyPosts
	}
	if opts.Boost != nil {
		cfg.Boost = *opts.Boost
	}

	return cfg
}

// FetchLimit derives how many items to request upstream. When replies
// are allowed and all types survive, the requested limit is enough.
// Otherwise filtering discards an unknown fraction of the feed, so a
// wider window is fetched: limit times 10 capped at 100, or times 50
// capped at 500 with boost. Best effort, not a guarantee of reaching
// limit surviving items.
func (c EffectiveConfig) FetchLimit() int {
	if c.AllowReplies && !c.OnlyPosts {
		return c.Limit
	}

	factor, ceiling := 10, 100
	if c.Boost {
		factor, ceiling = 50, 500
	}

	fetch := c.Limit * factor
	if fetch > ceiling {
		fetch = ceiling
	}
	return fetch
}

// cacheKey is the memoization key for this configuration. Only the
// parameters that change the cached payload participate.
func (c EffectiveConfig) cacheKey() string {
	mode := "all"
	if c.OnlyPosts {
		mode = "post"
	}
	return fmt.Sprintf("bluesky:feed:%s:%d:%s", c.Handle, c.Limit, mode)
}
