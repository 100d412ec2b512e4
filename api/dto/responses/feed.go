// ABOUTME: Response DTOs for the feed endpoint
// ABOUTME: Mirrors the field names the template-rendering layer consumes

package responses

import "bluesky-feed-api/core/domain"

// FeedResponse is the body returned by GET /feed.
type FeedResponse struct {
	Items       []FeedItemResponse `json:"items"`
	Handle      string             `json:"handle"`
	Count       int                `json:"count"`
	Verified    bool               `json:"verified"`
	Name        string             `json:"name,omitempty"`
	Description string             `json:"description,omitempty"`
	Avatar      string             `json:"avatar,omitempty"`
	FollowURL   string             `json:"follow_url"`
}

// FeedItemResponse is one normalized feed entry. original_poster and
// original_handle carry the same value; both names are kept for
// template compatibility.
type FeedItemResponse struct {
	Text           string            `json:"text"`
	OriginalText   string            `json:"original_text,omitempty"`
	OriginalName   string            `json:"original_name,omitempty"`
	OriginalAvatar string            `json:"original_avatar,omitempty"`
	OriginalDate   string            `json:"original_date,omitempty"`
	OriginalImage  string            `json:"original_image,omitempty"`
	URL            string            `json:"url"`
	Date           string            `json:"date,omitempty"`
	Type           string            `json:"type"`
	OriginalPoster string            `json:"original_poster,omitempty"`
	OriginalHandle string            `json:"original_handle,omitempty"`
	Images         []domain.Image    `json:"images"`
	External       *ExternalResponse `json:"external"`
	FollowLink     string            `json:"follow_link"`
}

// ExternalResponse is the link-preview card of an item.
type ExternalResponse struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Thumb       string `json:"thumb"`
}
