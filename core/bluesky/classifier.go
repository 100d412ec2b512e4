// ABOUTME: Post classifier assigning each raw feed entry a single type variant
// ABOUTME: Checks repost > reply > quote > post, first matching condition wins

package bluesky

import (
	"strings"

	"bluesky-feed-api/core/domain"
)

// classification is the classifier's output for one entry: the type
// variant plus the original-poster context relevant to that variant.
type classification struct {
	itemType       domain.ItemType
	originalPoster string
	originalName   string
	originalAvatar string
	originalText   string
	originalDate   string
	originalImage  string
}

// classify inspects one raw feed entry and assigns its type variant.
// The conditions are checked in precedence order: an entry carrying
// both a repost reason and a reply parent classifies as a repost.
func classify(entry *FeedEntry) classification {
	c := classification{itemType: domain.ItemTypePost}
	embed := entry.Post.Embed

	if entry.Reason != nil && entry.Reason.Type == reasonRepostType {
		// The post author is the account that wrote the reposted
		// content, not the account whose feed this is.
		c.itemType = domain.ItemTypeRepost
		c.originalPoster = entry.Post.Author.Handle
		c.originalName = entry.Post.Author.DisplayName
		c.originalAvatar = entry.Post.Author.Avatar
		c.enrichFromQuotedRecord(embed)
		return c
	}

	if entry.Reply != nil && entry.Reply.Parent != nil &&
		entry.Reply.Parent.Author != nil && entry.Reply.Parent.Author.Handle != "" {
		c.itemType = domain.ItemTypeReply
		c.originalPoster = entry.Reply.Parent.Author.Handle
		return c
	}

	if embed != nil && strings.HasPrefix(embed.Type, embedRecordPrefix) {
		c.itemType = domain.ItemTypeQuote
		if embed.Record != nil && embed.Record.Author != nil {
			c.originalPoster = embed.Record.Author.Handle
			c.originalName = embed.Record.Author.DisplayName
			c.originalAvatar = embed.Record.Author.Avatar
		}
		c.enrichFromQuotedRecord(embed)
		return c
	}

	return c
}

// enrichFromQuotedRecord fills the original text, date and image from
// the embed's nested quoted record when present.
func (c *classification) enrichFromQuotedRecord(embed *EmbedView) {
	if embed == nil || embed.Record == nil {
		return
	}

	if embed.Record.Value != nil {
		c.originalText = embed.Record.Value.Text
		c.originalDate = embed.Record.Value.CreatedAt
	}

	if len(embed.Record.Embeds) > 0 && len(embed.Record.Embeds[0].Images) > 0 {
		c.originalImage = embed.Record.Embeds[0].Images[0].Fullsize
	}
}
