// ABOUTME: HTTP handler exposing the normalized feed to the rendering layer
// ABOUTME: Parses invocation parameters and writes the JSON response

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"bluesky-feed-api/api/dto/mappers"
	"bluesky-feed-api/core/bluesky"
	"bluesky-feed-api/core/domain"
	"bluesky-feed-api/pkg/config"
)

// FeedService defines the methods needed from the feed service
type FeedService interface {
	GetFeed(ctx context.Context, opts bluesky.Options) *domain.FeedResult
}

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	service FeedService
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(service FeedService) *FeedHandler {
	return &FeedHandler{service: service}
}

// RegisterRoutes registers the feed routes on the mux
func (h *FeedHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /feed", h.GetFeed)
}

// GetFeed handles GET /feed. Every parameter is optional; missing or
// unparsable values fall back to the environment defaults, so the
// endpoint never rejects a request over its query string.
func (h *FeedHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	opts := parseOptions(r.URL.Query())

	result := h.service.GetFeed(r.Context(), opts)
	response := mappers.ToFeedResponse(result)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(response)
}

// parseOptions reads the invocation parameters from the query string.
// Boolean parameters use the same permissive interpretation as the
// environment defaults.
func parseOptions(query url.Values) bluesky.Options {
	opts := bluesky.Options{
		Handle: query.Get("handle"),
	}

	if v := query.Get("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit >= 0 {
			opts.Limit = &limit
		}
	}

	opts.Cache = boolParam(query, "cache")
	opts.Replies = boolParam(query, "replies")
	opts.Images = boolParam(query, "images")
	opts.External = boolParam(query, "external")
	opts.OnlyPosts = boolParam(query, "only_posts")
	opts.Boost = boolParam(query, "boost")

	return opts
}

// boolParam returns the parsed boolean for a present parameter, nil
// when the parameter is absent.
func boolParam(query url.Values, key string) *bool {
	if !query.Has(key) {
		return nil
	}
	value := config.ParseBool(query.Get(key))
	return &value
}
