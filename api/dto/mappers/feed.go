// ABOUTME: Mappers converting domain feed results to response DTOs
// ABOUTME: Keeps JSON shape concerns out of the core service

package mappers

import (
	"bluesky-feed-api/api/dto/responses"
	"bluesky-feed-api/core/bluesky"
	"bluesky-feed-api/core/domain"
)

// ToFeedResponse maps a normalized feed result to the response DTO.
func ToFeedResponse(result *domain.FeedResult) responses.FeedResponse {
	items := make([]responses.FeedItemResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, toFeedItemResponse(&result.Items[i]))
	}

	return responses.FeedResponse{
		Items:       items,
		Handle:      result.Handle,
		Count:       len(items),
		Verified:    result.Profile.Verified,
		Name:        result.Profile.DisplayName,
		Description: result.Profile.Description,
		Avatar:      result.Profile.Avatar,
		FollowURL:   bluesky.ProfileURL(result.Handle),
	}
}

// toFeedItemResponse maps one feed item.
func toFeedItemResponse(item *domain.FeedItem) responses.FeedItemResponse {
	resp := responses.FeedItemResponse{
		Text:           item.Text,
		OriginalText:   item.OriginalText,
		OriginalName:   item.OriginalName,
		OriginalAvatar: item.OriginalAvatar,
		OriginalDate:   item.OriginalDate,
		OriginalImage:  item.OriginalImage,
		URL:            item.URL,
		Date:           item.Date,
		Type:           string(item.Type),
		OriginalPoster: item.OriginalPoster,
		OriginalHandle: item.OriginalPoster,
		Images:         item.Images,
		FollowLink:     item.FollowLink,
	}

	if resp.Images == nil {
		resp.Images = []domain.Image{}
	}

	if item.External != nil {
		resp.External = &responses.ExternalResponse{
			URL:         item.External.URL,
			Title:       item.External.Title,
			Description: item.External.Description,
			Thumb:       item.External.Thumb,
		}
	}

	return resp
}
