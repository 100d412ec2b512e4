package bluesky

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"bluesky-feed-api/core/domain"
	"bluesky-feed-api/core/interfaces"
	"bluesky-feed-api/pkg/config"
)

// upstreamMock wires a mock HTTP client that answers the feed and
// profile endpoints with canned JSON bodies.
func upstreamMock(t *testing.T, feedBody, profileBody string, feedStatus, profileStatus int) *mockHTTPClient {
	t.Helper()
	return &mockHTTPClient{
		getFunc: func(ctx context.Context, requestURL string) (interfaces.Response, error) {
			switch {
			case strings.Contains(requestURL, "getAuthorFeed"):
				return &mockResponse{statusCode: feedStatus, body: feedBody}, nil
			case strings.Contains(requestURL, "getProfile"):
				return &mockResponse{statusCode: profileStatus, body: profileBody}, nil
			default:
				t.Errorf("unexpected request URL: %s", requestURL)
				return &mockResponse{statusCode: 404}, nil
			}
		},
	}
}

func newTestService(client *mockHTTPClient, cache interfaces.Cache, defaults config.BlueskyConfig) *Service {
	return NewService(interfaces.Dependencies{
		HTTPClient: client,
		Cache:      cache,
		Logger:     &mockLogger{},
	}, defaults)
}

const plainEntryJSON = `{
	"post": {
		"uri": "at://did:plc:abc/app.bsky.feed.post/xyz",
		"author": {"handle": "alice.bsky.social"},
		"record": {"text": "hi", "createdAt": "2024-01-01T00:00:00Z"}
	}
}`

func feedBody(entries ...string) string {
	return `{"feed":[` + strings.Join(entries, ",") + `]}`
}

func TestGetFeed_PlainPost(t *testing.T) {
	client := upstreamMock(t, feedBody(plainEntryJSON), `{}`, 200, 200)
	svc := newTestService(client, nil, defaultsForTest())

	result := svc.GetFeed(context.Background(), Options{})

	if len(result.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(result.Items))
	}

	item := result.Items[0]
	if item.Type != domain.ItemTypePost {
		t.Errorf("Type = %q, want post", item.Type)
	}
	if item.Text != "hi" {
		t.Errorf("Text = %q, want hi", item.Text)
	}
	if item.URL != "https://bsky.app/profile/did:plc:abc/post/xyz" {
		t.Errorf("URL = %q", item.URL)
	}
	if item.Date != "2024-01-01T00:00:00Z" {
		t.Errorf("Date = %q", item.Date)
	}
	if len(item.Images) != 0 {
		t.Errorf("Images = %v, want empty", item.Images)
	}
	if item.External != nil {
		t.Errorf("External = %v, want nil", item.External)
	}
	if item.FollowLink != "https://bsky.app/profile/bsky.app" {
		t.Errorf("FollowLink = %q", item.FollowLink)
	}
}

func TestGetFeed_FeedRequestFails(t *testing.T) {
	client := upstreamMock(t, `boom`, `{"displayName":"Alice"}`, 500, 200)
	svc := newTestService(client, nil, defaultsForTest())

	result := svc.GetFeed(context.Background(), Options{})

	if len(result.Items) != 0 {
		t.Errorf("len(Items) = %d, want 0", len(result.Items))
	}
	if result.Items == nil {
		t.Error("Items should be an empty slice, not nil")
	}
	if result.Profile.Verified {
		t.Error("Verified should be false on feed failure")
	}
	if result.Profile.DisplayName != "" {
		t.Errorf("DisplayName = %q, want empty", result.Profile.DisplayName)
	}
}

func TestGetFeed_HTTPClientError(t *testing.T) {
	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, requestURL string) (interfaces.Response, error) {
			return nil, errors.New("network down")
		},
	}
	svc := newTestService(client, nil, defaultsForTest())

	result := svc.GetFeed(context.Background(), Options{})

	if len(result.Items) != 0 {
		t.Errorf("len(Items) = %d, want 0", len(result.Items))
	}
}

func TestGetFeed_ProfileFailureKeepsItems(t *testing.T) {
	client := upstreamMock(t, feedBody(plainEntryJSON), ``, 200, 500)
	svc := newTestService(client, nil, defaultsForTest())

	result := svc.GetFeed(context.Background(), Options{})

	if len(result.Items) != 1 {
		t.Errorf("len(Items) = %d, want 1", len(result.Items))
	}
	if result.Profile.Verified || result.Profile.DisplayName != "" {
		t.Errorf("profile should be zero on profile failure: %+v", result.Profile)
	}
}

func TestGetFeed_ProfileSummary(t *testing.T) {
	profile := `{
		"displayName": "Alice",
		"description": "writes posts",
		"avatar": "https://cdn.example/alice.jpg",
		"verification": {"verifiedStatus": "valid"}
	}`
	client := upstreamMock(t, feedBody(), profile, 200, 200)
	svc := newTestService(client, nil, defaultsForTest())

	result := svc.GetFeed(context.Background(), Options{})

	if !result.Profile.Verified {
		t.Error("Verified = false, want true")
	}
	if result.Profile.DisplayName != "Alice" || result.Profile.Avatar != "https://cdn.example/alice.jpg" {
		t.Errorf("profile fields wrong: %+v", result.Profile)
	}
}

func TestGetFeed_VerificationStatusMustBeValid(t *testing.T) {
	profile := `{"verification": {"verifiedStatus": "pending"}}`
	client := upstreamMock(t, feedBody(), profile, 200, 200)
	svc := newTestService(client, nil, defaultsForTest())

	result := svc.GetFeed(context.Background(), Options{})

	if result.Profile.Verified {
		t.Error("Verified = true for non-valid status")
	}
}

func TestGetFeed_RepliesFiltered(t *testing.T) {
	reply := `{
		"post": {
			"uri": "at://did:plc:abc/app.bsky.feed.post/r1",
			"author": {"handle": "alice.bsky.social"},
			"record": {"text": "a reply", "createdAt": "2024-01-02T00:00:00Z"}
		},
		"reply": {"parent": {"author": {"handle": "carol.bsky.social"}}}
	}`
	client := upstreamMock(t, feedBody(reply, plainEntryJSON), `{}`, 200, 200)
	svc := newTestService(client, nil, defaultsForTest())

	result := svc.GetFeed(context.Background(), Options{Replies: boolPtr(false)})

	if len(result.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(result.Items))
	}
	for _, item := range result.Items {
		if item.Type == domain.ItemTypeReply {
			t.Errorf("reply survived filtering: %+v", item)
		}
	}
}

func TestGetFeed_OnlyPosts(t *testing.T) {
	repost := `{
		"post": {
			"uri": "at://did:plc:abc/app.bsky.feed.post/r2",
			"author": {"handle": "bob.bsky.social"},
			"record": {"text": "reposted", "createdAt": "2024-01-03T00:00:00Z"}
		},
		"reason": {"$type": "app.bsky.feed.defs#reasonRepost"}
	}`
	client := upstreamMock(t, feedBody(repost, plainEntryJSON), `{}`, 200, 200)
	svc := newTestService(client, nil, defaultsForTest())

	result := svc.GetFeed(context.Background(), Options{OnlyPosts: boolPtr(true)})

	if len(result.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(result.Items))
	}
	if result.Items[0].Type != domain.ItemTypePost {
		t.Errorf("Type = %q, want post", result.Items[0].Type)
	}
}

func TestGetFeed_TruncatesToLimit(t *testing.T) {
	entries := make([]string, 5)
	for i := range entries {
		entries[i] = plainEntryJSON
	}
	client := upstreamMock(t, feedBody(entries...), `{}`, 200, 200)
	svc := newTestService(client, nil, defaultsForTest())

	result := svc.GetFeed(context.Background(), Options{Limit: intPtr(2)})

	if len(result.Items) != 2 {
		t.Errorf("len(Items) = %d, want 2", len(result.Items))
	}
}

func TestGetFeed_ZeroLimit(t *testing.T) {
	client := upstreamMock(t, feedBody(plainEntryJSON), `{}`, 200, 200)
	svc := newTestService(client, nil, defaultsForTest())

	result := svc.GetFeed(context.Background(), Options{Limit: intPtr(0)})

	if len(result.Items) != 0 {
		t.Errorf("len(Items) = %d, want 0", len(result.Items))
	}
}

func TestGetFeed_RequestsDerivedFetchLimit(t *testing.T) {
	var feedURL string
	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, requestURL string) (interfaces.Response, error) {
			if strings.Contains(requestURL, "getAuthorFeed") {
				feedURL = requestURL
			}
			return &mockResponse{statusCode: 200, body: `{}`}, nil
		},
	}
	svc := newTestService(client, nil, defaultsForTest())

	svc.GetFeed(context.Background(), Options{Replies: boolPtr(false)})

	parsed, err := url.Parse(feedURL)
	if err != nil {
		t.Fatalf("feed URL did not parse: %v", err)
	}
	if got := parsed.Query().Get("limit"); got != "70" {
		t.Errorf("upstream limit = %q, want 70", got)
	}
	if got := parsed.Query().Get("actor"); got != "bsky.app" {
		t.Errorf("upstream actor = %q, want bsky.app", got)
	}
}

func TestGetFeed_FacetsRewritten(t *testing.T) {
	entry := `{
		"post": {
			"uri": "at://did:plc:abc/app.bsky.feed.post/f1",
			"author": {"handle": "alice.bsky.social"},
			"record": {
				"text": "hi there",
				"createdAt": "2024-01-01T00:00:00Z",
				"facets": [{
					"index": {"byteStart": 0, "byteEnd": 2},
					"features": [{"$type": "app.bsky.richtext.facet#link", "uri": "https://x.com"}]
				}]
			}
		}
	}`
	client := upstreamMock(t, feedBody(entry), `{}`, 200, 200)
	svc := newTestService(client, nil, defaultsForTest())

	result := svc.GetFeed(context.Background(), Options{})

	if len(result.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(result.Items))
	}
	if want := "[hi](https://x.com) there"; result.Items[0].Text != want {
		t.Errorf("Text = %q, want %q", result.Items[0].Text, want)
	}
}

func TestGetFeed_QuoteTextFallsBackToQuoted(t *testing.T) {
	entry := `{
		"post": {
			"uri": "at://did:plc:abc/app.bsky.feed.post/q1",
			"author": {"handle": "alice.bsky.social"},
			"record": {"text": "", "createdAt": "2024-01-04T00:00:00Z"},
			"embed": {
				"$type": "app.bsky.embed.record#view",
				"record": {
					"author": {"handle": "dave.bsky.social"},
					"value": {"text": "quoted words", "createdAt": "2024-03-01T00:00:00Z"}
				}
			}
		}
	}`
	client := upstreamMock(t, feedBody(entry), `{}`, 200, 200)
	svc := newTestService(client, nil, defaultsForTest())

	result := svc.GetFeed(context.Background(), Options{})

	if len(result.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(result.Items))
	}
	item := result.Items[0]
	if item.Type != domain.ItemTypeQuote {
		t.Errorf("Type = %q, want quote", item.Type)
	}
	if item.Text != "quoted words" {
		t.Errorf("Text = %q, want quoted fallback", item.Text)
	}
}

func TestGetFeed_ImagesGatedByAllowFlag(t *testing.T) {
	entry := `{
		"post": {
			"uri": "at://did:plc:abc/app.bsky.feed.post/i1",
			"author": {"handle": "alice.bsky.social"},
			"record": {"text": "pic", "createdAt": "2024-01-05T00:00:00Z"},
			"embed": {
				"$type": "app.bsky.embed.images#view",
				"images": [{"thumb": "t", "fullsize": "f", "alt": "a"}]
			}
		}
	}`
	client := upstreamMock(t, feedBody(entry), `{}`, 200, 200)
	svc := newTestService(client, nil, defaultsForTest())

	withImages := svc.GetFeed(context.Background(), Options{})
	if len(withImages.Items[0].Images) != 1 {
		t.Errorf("expected one image, got %v", withImages.Items[0].Images)
	}

	withoutImages := svc.GetFeed(context.Background(), Options{Images: boolPtr(false)})
	if len(withoutImages.Items[0].Images) != 0 {
		t.Errorf("images should be suppressed, got %v", withoutImages.Items[0].Images)
	}
}

func TestGetFeed_MalformedURI(t *testing.T) {
	entry := `{
		"post": {
			"uri": "",
			"author": {"handle": "alice.bsky.social"},
			"record": {"text": "hm", "createdAt": "2024-01-06T00:00:00Z"}
		}
	}`
	client := upstreamMock(t, feedBody(entry), `{}`, 200, 200)
	svc := newTestService(client, nil, defaultsForTest())

	result := svc.GetFeed(context.Background(), Options{})

	if len(result.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(result.Items))
	}
	if want := "https://bsky.app/profile//post/"; result.Items[0].URL != want {
		t.Errorf("URL = %q, want %q", result.Items[0].URL, want)
	}
}

func TestGetFeed_CacheHit(t *testing.T) {
	cached := domain.FeedResult{
		Handle: "bsky.app",
		Items:  []domain.FeedItem{{Text: "from cache", Type: domain.ItemTypePost}},
	}
	data, _ := json.Marshal(&cached)

	cache := &mockCache{
		getFunc: func(ctx context.Context, key string) ([]byte, error) {
			if key != "bluesky:feed:bsky.app:7:all" {
				t.Errorf("cache key = %q", key)
			}
			return data, nil
		},
	}
	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, requestURL string) (interfaces.Response, error) {
			t.Error("upstream should not be called on a cache hit")
			return &mockResponse{statusCode: 500}, nil
		},
	}

	defaults := defaultsForTest()
	defaults.Cache = true
	svc := newTestService(client, cache, defaults)

	result := svc.GetFeed(context.Background(), Options{})

	if len(result.Items) != 1 || result.Items[0].Text != "from cache" {
		t.Errorf("cached result not returned: %+v", result)
	}
}

func TestGetFeed_CacheMissFetchesAndStores(t *testing.T) {
	var storedKey string
	var storedTTL time.Duration
	cache := &mockCache{
		getFunc: func(ctx context.Context, key string) ([]byte, error) {
			return nil, errors.New("cache: key not found")
		},
		setFunc: func(ctx context.Context, key string, value []byte, ttl time.Duration) error {
			storedKey = key
			storedTTL = ttl
			return nil
		},
	}
	client := upstreamMock(t, feedBody(plainEntryJSON), `{}`, 200, 200)

	defaults := defaultsForTest()
	defaults.Cache = true
	svc := newTestService(client, cache, defaults)

	result := svc.GetFeed(context.Background(), Options{})

	if len(result.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(result.Items))
	}
	if storedKey != "bluesky:feed:bsky.app:7:all" {
		t.Errorf("stored key = %q", storedKey)
	}
	if storedTTL != 300*time.Second {
		t.Errorf("stored TTL = %v, want 300s", storedTTL)
	}
}

func TestGetFeed_CacheDisabledSkipsCache(t *testing.T) {
	cache := &mockCache{
		getFunc: func(ctx context.Context, key string) ([]byte, error) {
			t.Error("cache should not be read when disabled")
			return nil, nil
		},
	}
	client := upstreamMock(t, feedBody(plainEntryJSON), `{}`, 200, 200)
	svc := newTestService(client, cache, defaultsForTest())

	svc.GetFeed(context.Background(), Options{})
}

func TestPostURL(t *testing.T) {
	cases := []struct {
		uri  string
		want string
	}{
		{"at://did:plc:abc/app.bsky.feed.post/xyz", "https://bsky.app/profile/did:plc:abc/post/xyz"},
		{"", "https://bsky.app/profile//post/"},
		{"nonsense", "https://bsky.app/profile//post/nonsense"},
	}

	for _, tc := range cases {
		if got := postURL(tc.uri); got != tc.want {
			t.Errorf("postURL(%q) = %q, want %q", tc.uri, got, tc.want)
		}
	}
}
