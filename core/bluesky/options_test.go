package bluesky

import (
	"testing"

	"bluesky-feed-api/pkg/config"
)

func defaultsForTest() config.BlueskyConfig {
	return config.BlueskyConfig{
		Handle:   "bsky.app",
		Limit:    7,
		Replies:  true,
		Images:   true,
		External: true,
	}
}

func boolPtr(v bool) *bool { return &v }
func intPtr(v int) *int    { return &v }

func TestResolveConfig_DefaultsOnly(t *testing.T) {
	cfg := ResolveConfig(defaultsForTest(), Options{})

	if cfg.Handle != "bsky.app" {
		t.Errorf("Handle = %q, want bsky.app", cfg.Handle)
	}
	if cfg.Limit != 7 {
		t.Errorf("Limit = %d, want 7", cfg.Limit)
	}
	if !cfg.AllowReplies || !cfg.AllowImages || !cfg.AllowExternal {
		t.Errorf("toggles should default true: %+v", cfg)
	}
	if cfg.CacheEnabled || cfg.OnlyPosts || cfg.Boost {
		t.Errorf("toggles should default false: %+v", cfg)
	}
}

func TestResolveConfig_OverridesWin(t *testing.T) {
	opts := Options{
		Handle:    "alice.bsky.social",
		Limit:     intPtr(3),
		Cache:     boolPtr(true),
		Replies:   boolPtr(false),
		Images:    boolPtr(false),
		External:  boolPtr(false),
		OnlyPosts: boolPtr(true),
		Boost:     boolPtr(true),
	}

	cfg := ResolveConfig(defaultsForTest(), opts)

	if cfg.Handle != "alice.bsky.social" {
		t.Errorf("Handle = %q", cfg.Handle)
	}
	if cfg.Limit != 3 {
		t.Errorf("Limit = %d, want 3", cfg.Limit)
	}
	if !cfg.CacheEnabled || cfg.AllowReplies || cfg.AllowImages || cfg.AllowExternal {
		t.Errorf("bool overrides not applied: %+v", cfg)
	}
	if !cfg.OnlyPosts || !cfg.Boost {
		t.Errorf("bool overrides not applied: %+v", cfg)
	}
}

func TestResolveConfig_NegativeLimitIgnored(t *testing.T) {
	cfg := ResolveConfig(defaultsForTest(), Options{Limit: intPtr(-5)})

	if cfg.Limit != 7 {
		t.Errorf("Limit = %d, want default 7", cfg.Limit)
	}
}

func TestFetchLimit(t *testing.T) {
	cases := []struct {
		name      string
		limit     int
		replies   bool
		onlyPosts bool
		boost     bool
		want      int
	}{
		{"no filtering fetches exactly limit", 7, true, false, false, 7},
		{"replies filtered", 7, false, false, false, 70},
		{"only posts", 7, true, true, false, 70},
		{"filtered hits cap", 15, false, false, false, 100},
		{"boost widens factor", 7, false, false, true, 350},
		{"boost hits cap", 20, false, false, true, 500},
		{"zero limit", 0, false, false, false, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := EffectiveConfig{
				Limit:        tc.limit,
				AllowReplies: tc.replies,
				OnlyPosts:    tc.onlyPosts,
				Boost:        tc.boost,
			}

			if got := cfg.FetchLimit(); got != tc.want {
				t.Errorf("FetchLimit() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestCacheKey(t *testing.T) {
	cfg := EffectiveConfig{Handle: "alice.bsky.social", Limit: 7}

	if got := cfg.cacheKey(); got != "bluesky:feed:alice.bsky.social:7:all" {
		t.Errorf("cacheKey() = %q", got)
	}

	cfg.OnlyPosts = true
	if got := cfg.cacheKey(); got != "bluesky:feed:alice.bsky.social:7:post" {
		t.Errorf("cacheKey() = %q", got)
	}
}
