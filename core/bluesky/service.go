// ABOUTME: Feed service fetching and normalizing a Bluesky author feed
// ABOUTME: Orchestrates cache gate, upstream fetch, classification and filtering

package bluesky

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"bluesky-feed-api/core/domain"
	coreerrors "bluesky-feed-api/core/errors"
	"bluesky-feed-api/core/interfaces"
	"bluesky-feed-api/pkg/config"
)

const (
	defaultAPIBase = "https://public.api.bsky.app/xrpc"
	webBase        = "https://bsky.app"

	authorFeedPath = "/app.bsky.feed.getAuthorFeed"
	profilePath    = "/app.bsky.actor.getProfile"

	// cacheTTL bounds how long a memoized result is reusable.
	cacheTTL = 300 * time.Second
)

// Service fetches an author feed and profile from the public Bluesky
// read API and normalizes them into a FeedResult.
type Service struct {
	deps     interfaces.Dependencies
	defaults config.BlueskyConfig
	apiBase  string
}

// NewService creates a new feed service instance
func NewService(deps interfaces.Dependencies, defaults config.BlueskyConfig) *Service {
	return &Service{
		deps:     deps,
		defaults: defaults,
		apiBase:  defaultAPIBase,
	}
}

// GetFeed resolves the effective configuration for this invocation and
// returns the normalized feed, served from cache when enabled and
// fresh otherwise. It never fails: upstream or cache errors degrade to
// a structurally valid, possibly empty result.
func (s *Service) GetFeed(ctx context.Context, opts Options) *domain.FeedResult {
	cfg := ResolveConfig(s.defaults, opts)

	if !cfg.CacheEnabled || s.deps.Cache == nil {
		return s.fetchAndNormalize(ctx, cfg)
	}

	key := cfg.cacheKey()
	if data, err := s.deps.Cache.Get(ctx, key); err == nil && data != nil {
		var cached domain.FeedResult
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached
		}
	}

	result := s.fetchAndNormalize(ctx, cfg)

	// Cache write failures are not worth failing the request over.
	if data, err := json.Marshal(result); err == nil {
		if err := s.deps.Cache.Set(ctx, key, data, cacheTTL); err != nil && s.deps.Logger != nil {
			s.deps.Logger.Warn("Failed to cache feed result", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}

	return result
}

// fetchAndNormalize performs one full fetch-and-normalize pass. The
// feed and profile requests are independent reads of the same upstream
// and run concurrently.
func (s *Service) fetchAndNormalize(ctx context.Context, cfg EffectiveConfig) *domain.FeedResult {
	var (
		wg      sync.WaitGroup
		entries []FeedEntry
		feedErr error
		profile profileResponse
		profErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		entries, feedErr = s.fetchAuthorFeed(ctx, cfg.Handle, cfg.FetchLimit())
	}()
	go func() {
		defer wg.Done()
		profile, profErr = s.fetchProfile(ctx, cfg.Handle)
	}()
	wg.Wait()

	result := &domain.FeedResult{
		Handle: cfg.Handle,
		Items:  []domain.FeedItem{},
	}

	if feedErr != nil {
		if s.deps.Logger != nil {
			s.deps.Logger.Error("Failed to fetch author feed", map[string]interface{}{
				"handle": cfg.Handle,
				"error":  feedErr.Error(),
			})
		}
		return result
	}

	if profErr != nil {
		// Feed items are still usable without profile metadata.
		if s.deps.Logger != nil {
			s.deps.Logger.Warn("Failed to fetch profile", map[string]interface{}{
				"handle": cfg.Handle,
				"error":  profErr.Error(),
			})
		}
	} else {
		result.Profile = domain.Profile{
			Verified:    profile.Verification != nil && profile.Verification.VerifiedStatus == "valid",
			DisplayName: profile.DisplayName,
			Description: profile.Description,
			Avatar:      profile.Avatar,
		}
	}

	for i := range entries {
		if len(result.Items) >= cfg.Limit {
			break
		}

		item, keep := normalizeEntry(&entries[i], cfg)
		if keep {
			result.Items = append(result.Items, item)
		}
	}

	return result
}

// fetchAuthorFeed requests one page of the author feed.
func (s *Service) fetchAuthorFeed(ctx context.Context, handle string, fetchLimit int) ([]FeedEntry, error) {
	query := url.Values{}
	query.Set("actor", handle)
	query.Set("limit", strconv.Itoa(fetchLimit))

	body, err := s.get(ctx, s.apiBase+authorFeedPath+"?"+query.Encode(), "getAuthorFeed")
	if err != nil {
		return nil, err
	}

	var feed authorFeedResponse
	if err := json.Unmarshal(body, &feed); err != nil {
		return nil, coreerrors.WrapError(err, "failed to decode author feed")
	}

	return feed.Feed, nil
}

// fetchProfile requests the actor's profile.
func (s *Service) fetchProfile(ctx context.Context, handle string) (profileResponse, error) {
	query := url.Values{}
	query.Set("actor", handle)

	var profile profileResponse

	body, err := s.get(ctx, s.apiBase+profilePath+"?"+query.Encode(), "getProfile")
	if err != nil {
		return profile, err
	}

	if err := json.Unmarshal(body, &profile); err != nil {
		return profile, coreerrors.WrapError(err, "failed to decode profile")
	}

	return profile, nil
}

// get performs one upstream GET and reads the body, mapping non-200
// responses to an ExternalAPIError.
func (s *Service) get(ctx context.Context, requestURL, api string) ([]byte, error) {
	resp, err := s.deps.HTTPClient.Get(ctx, requestURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body().Close()

	if resp.StatusCode() != 200 {
		return nil, &coreerrors.ExternalAPIError{
			StatusCode: resp.StatusCode(),
			Message:    "unexpected status",
			API:        api,
		}
	}

	return io.ReadAll(resp.Body())
}

// normalizeEntry converts one raw feed entry into a FeedItem. The
// second return value is false when the entry is dropped by the
// reply or only-posts filters.
func normalizeEntry(entry *FeedEntry, cfg EffectiveConfig) (domain.FeedItem, bool) {
	cls := classify(entry)

	if !cfg.AllowReplies && cls.itemType == domain.ItemTypeReply {
		return domain.FeedItem{}, false
	}
	if cfg.OnlyPosts && cls.itemType != domain.ItemTypePost {
		return domain.FeedItem{}, false
	}

	text := applyFacets(entry.Post.Record.Text, entry.Post.Record.Facets)
	if text == "" && cls.itemType == domain.ItemTypeQuote {
		// A quote with no text of its own displays the quoted text.
		text = cls.originalText
	}

	item := domain.FeedItem{
		Text:           text,
		Type:           cls.itemType,
		URL:            postURL(entry.Post.URI),
		Date:           entry.Post.Record.CreatedAt,
		OriginalPoster: cls.originalPoster,
		OriginalName:   cls.originalName,
		OriginalAvatar: cls.originalAvatar,
		OriginalText:   cls.originalText,
		OriginalDate:   cls.originalDate,
		OriginalImage:  cls.originalImage,
		Images:         []domain.Image{},
		FollowLink:     ProfileURL(cfg.Handle),
	}

	if cfg.AllowImages {
		if images := extractImages(entry.Post.Embed); images != nil {
			item.Images = images
		}
	}
	if cfg.AllowExternal {
		item.External = extractExternal(entry.Post.Embed)
	}

	return item, true
}

// postURL reassembles an AT-URI (at://{repo}/{collection}/{rkey}) into
// the bsky.app web URL of the post. A malformed or empty URI yields the
// same template with empty segments rather than an error.
func postURL(atURI string) string {
	parts := strings.Split(atURI, "/")

	repo := ""
	if len(parts) > 2 {
		repo = parts[2]
	}
	rkey := parts[len(parts)-1]

	return fmt.Sprintf("%s/profile/%s/post/%s", webBase, repo, rkey)
}

// ProfileURL returns the bsky.app profile URL for a handle.
func ProfileURL(handle string) string {
	return webBase + "/profile/" + handle
}
