// ABOUTME: Wire types for the public Bluesky XRPC read API
// ABOUTME: Mirrors the author-feed and profile response shapes, every field optional

package bluesky

// Lexicon type strings the normalizer matches against. Embed types are
// matched by prefix because the upstream appends #view / #viewRecord
// suffixes and a recordWithMedia variant to the same family name.
const (
	reasonRepostType    = "app.bsky.feed.defs#reasonRepost"
	embedRecordPrefix   = "app.bsky.embed.record"
	embedExternalPrefix = "app.bsky.embed.external"
	embedImagesViewType = "app.bsky.embed.images#view"
	facetLinkType       = "app.bsky.richtext.facet#link"
)

// authorFeedResponse is the body of app.bsky.feed.getAuthorFeed.
type authorFeedResponse struct {
	Feed []FeedEntry `json:"feed"`
}

// FeedEntry is one raw entry of an author feed: the post view plus the
// optional reply and repost context that determine its classification.
type FeedEntry struct {
	Post   PostView    `json:"post"`
	Reply  *ReplyRef   `json:"reply,omitempty"`
	Reason *ReasonView `json:"reason,omitempty"`
}

// PostView is the hydrated view of a single post.
type PostView struct {
	URI    string     `json:"uri"`
	Author ActorView  `json:"author"`
	Record PostRecord `json:"record"`
	Embed  *EmbedView `json:"embed,omitempty"`
}

// ActorView identifies an account on a post, reply parent or quoted record.
type ActorView struct {
	Handle      string `json:"handle"`
	DisplayName string `json:"displayName,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
}

// PostRecord carries the post's own text, timestamp and rich-text facets.
type PostRecord struct {
	Text      string  `json:"text"`
	CreatedAt string  `json:"createdAt"`
	Facets    []Facet `json:"facets,omitempty"`
}

// Facet annotates a byte range of the record text with rich semantics.
type Facet struct {
	Index    *ByteSlice     `json:"index,omitempty"`
	Features []FacetFeature `json:"features,omitempty"`
}

// ByteSlice addresses a span of the record text. Offsets are byte
// offsets into the UTF-8 encoding, not character indices.
type ByteSlice struct {
	ByteStart int `json:"byteStart"`
	ByteEnd   int `json:"byteEnd"`
}

// FacetFeature is one semantic attached to a facet span.
type FacetFeature struct {
	Type string `json:"$type"`
	URI  string `json:"uri,omitempty"`
}

// ReplyRef carries the parent of a reply entry.
type ReplyRef struct {
	Parent *ParentView `json:"parent,omitempty"`
}

// ParentView is the (possibly truncated) view of a reply's parent post.
type ParentView struct {
	Author *ActorView `json:"author,omitempty"`
}

// ReasonView explains why an entry appears in the feed, e.g. a repost.
type ReasonView struct {
	Type string `json:"$type"`
}

// EmbedView is a post's structured attachment: images, an external
// link-preview card, or a quoted record.
type EmbedView struct {
	Type     string        `json:"$type"`
	Images   []ImageView   `json:"images,omitempty"`
	External *ExternalView `json:"external,omitempty"`
	Record   *RecordView   `json:"record,omitempty"`
}

// ImageView is one image of an images embed.
type ImageView struct {
	Thumb       string       `json:"thumb"`
	Fullsize    string       `json:"fullsize"`
	Alt         string       `json:"alt"`
	AspectRatio *AspectRatio `json:"aspectRatio,omitempty"`
}

// AspectRatio carries the image dimensions reported upstream.
type AspectRatio struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ExternalView is the payload of an external link-preview embed.
type ExternalView struct {
	URI         string `json:"uri"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Thumb       string `json:"thumb"`
}

// RecordView is the quoted record nested inside a record embed. Bluesky
// bounds quoting to one level, so its own Embeds list never nests further.
type RecordView struct {
	Author *ActorView   `json:"author,omitempty"`
	Value  *RecordValue `json:"value,omitempty"`
	Embeds []EmbedView  `json:"embeds,omitempty"`
}

// RecordValue is the quoted record's own content.
type RecordValue struct {
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
}

// profileResponse is the body of app.bsky.actor.getProfile.
type profileResponse struct {
	DisplayName  string            `json:"displayName"`
	Description  string            `json:"description"`
	Avatar       string            `json:"avatar"`
	Verification *verificationView `json:"verification,omitempty"`
}

// verificationView carries the profile's verification state.
type verificationView struct {
	VerifiedStatus string `json:"verifiedStatus"`
}
