// ABOUTME: Embed resolver extracting images and link-preview payloads
// ABOUTME: Selects one image source among direct and quoted-record embeds

package bluesky

import (
	"strings"

	"bluesky-feed-api/core/domain"
)

// extractImages returns the images attached to a post's embed. Images
// directly on the top-level embed win; when the embed is a quoted
// record, the record's own embeds list is scanned for the first
// images view instead. Only one source is ever used, never both.
func extractImages(embed *EmbedView) []domain.Image {
	source := embed

	if embed != nil && embed.Record != nil {
		for i := range embed.Record.Embeds {
			if embed.Record.Embeds[i].Type == embedImagesViewType {
				source = &embed.Record.Embeds[i]
				break
			}
		}
	}

	if source == nil || source.Type != embedImagesViewType {
		return nil
	}

	images := make([]domain.Image, 0, len(source.Images))
	for _, img := range source.Images {
		image := domain.Image{
			Thumb: img.Thumb,
			Full:  img.Fullsize,
			Alt:   img.Alt,
		}
		if img.AspectRatio != nil {
			image.Width = img.AspectRatio.Width
			image.Height = img.AspectRatio.Height
		}
		images = append(images, image)
	}

	return images
}

// extractExternal returns the link-preview card of an external embed,
// or nil when the embed is not of the external family. Missing payload
// fields default to empty.
func extractExternal(embed *EmbedView) *domain.ExternalLink {
	if embed == nil || !strings.HasPrefix(embed.Type, embedExternalPrefix) {
		return nil
	}

	link := &domain.ExternalLink{}
	if embed.External != nil {
		link.URL = embed.External.URI
		link.Title = embed.External.Title
		link.Description = embed.External.Description
		link.Thumb = embed.External.Thumb
	}

	return link
}
