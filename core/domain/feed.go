// ABOUTME: Domain model for a normalized Bluesky author feed
// ABOUTME: Represents feed items, embedded media and profile metadata

package domain

// ItemType classifies a feed entry. The classifier assigns exactly one
// type per entry, checked in precedence order repost > reply > quote > post.
type ItemType string

const (
	// ItemTypePost is an original post with no repost reason, reply
	// parent or quoted record.
	ItemTypePost ItemType = "post"

	// ItemTypeRepost is an entry surfaced by a repost reason.
	ItemTypeRepost ItemType = "repost"

	// ItemTypeReply is a post written in reply to another post.
	ItemTypeReply ItemType = "reply"

	// ItemTypeQuote is a post that embeds a reference to another post.
	ItemTypeQuote ItemType = "quote"
)

// Image represents one image attached to a post.
type Image struct {
	// Thumb is the thumbnail URL
	Thumb string `json:"thumb"`

	// Full is the full-size image URL
	Full string `json:"full"`

	// Alt is the image's alt text
	Alt string `json:"alt"`

	// Width and Height come from the embed's aspect-ratio metadata,
	// zero when the upstream omits it
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
}

// ExternalLink represents a link-preview card attached to a post.
type ExternalLink struct {
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Thumb       string `json:"thumb,omitempty"`
}

// FeedItem is one normalized entry of an author feed. It is derived
// entirely from a single raw feed entry and immutable once produced.
type FeedItem struct {
	// Text is the entry's display text with link facets rewritten to
	// [label](url) markup
	Text string

	// Type is the classified entry variant
	Type ItemType

	// URL is the bsky.app web URL derived from the post's AT-URI
	URL string

	// Date is the post's createdAt timestamp as delivered upstream
	Date string

	// OriginalPoster is the handle of the account this entry
	// originates from: the reposted author, the reply parent, or the
	// quoted author. Empty for plain posts.
	OriginalPoster string

	// OriginalName, OriginalAvatar, OriginalText, OriginalDate and
	// OriginalImage enrich repost and quote entries from the embedded
	// record. All empty for plain posts and replies.
	OriginalName   string
	OriginalAvatar string
	OriginalText   string
	OriginalDate   string
	OriginalImage  string

	// Images holds the entry's attached images, empty when images are
	// disabled or the entry has none
	Images []Image

	// External holds the entry's link-preview card, nil when external
	// links are disabled or the entry has none
	External *ExternalLink

	// FollowLink is the profile URL of the fetched handle
	FollowLink string
}

// Profile summarizes the fetched account's profile.
type Profile struct {
	// Verified is true iff the profile's verification status is "valid"
	Verified bool

	// DisplayName, Description and Avatar are copied from the profile
	// response when present
	DisplayName string
	Description string
	Avatar      string
}

// FeedResult is the assembled output of one fetch-and-normalize pass.
type FeedResult struct {
	// Handle is the resolved account handle the feed was fetched for
	Handle string

	Items   []FeedItem
	Profile Profile
}
