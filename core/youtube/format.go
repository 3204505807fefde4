// ABOUTME: Formatting of raw provider resources into the served response shapes
// ABOUTME: Includes email extraction, topic category cleanup and video type detection

package youtube

import (
	"regexp"
	"strconv"
	"strings"
)

var emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

// extractEmail returns the first email address found in free text, or "".
func extractEmail(text string) string {
	return emailPattern.FindString(text)
}

// parseCategories turns topic category wiki URLs into readable names.
func parseCategories(topicCategories []string) []string {
	categories := make([]string, 0, len(topicCategories))
	for _, url := range topicCategories {
		idx := strings.LastIndex(url, "/wiki/")
		if idx < 0 {
			continue
		}
		name := url[idx+len("/wiki/"):]
		name = strings.ReplaceAll(name, "_", " ")
		name = strings.ReplaceAll(name, "(", "")
		name = strings.ReplaceAll(name, ")", "")
		categories = append(categories, name)
	}
	return categories
}

// VideoTypeFromURL classifies a feed entry URL as "shorts", "long" or
// "unknown".
func VideoTypeFromURL(url string) string {
	switch {
	case url == "":
		return "unknown"
	case strings.Contains(url, "/shorts/"):
		return "shorts"
	case strings.Contains(url, "/watch?v="):
		return "long"
	default:
		return "unknown"
	}
}

// VideoIDFromURL extracts the video identifier from a watch or shorts URL.
func VideoIDFromURL(url string) string {
	if idx := strings.Index(url, "/watch?v="); idx >= 0 {
		id := url[idx+len("/watch?v="):]
		if amp := strings.IndexByte(id, '&'); amp >= 0 {
			id = id[:amp]
		}
		return id
	}
	if idx := strings.Index(url, "/shorts/"); idx >= 0 {
		id := url[idx+len("/shorts/"):]
		if q := strings.IndexByte(id, '?'); q >= 0 {
			id = id[:q]
		}
		return id
	}
	return ""
}

// parseCount converts a provider numeric string to int64, treating missing
// or malformed values as zero.
func parseCount(s string) int64 {
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// formatChannel shapes a raw channel resource. languageAnalysis is optional
// and only present for the recent-videos report.
func formatChannel(raw *apiChannel, analysis *LanguageAnalysis) *Channel {
	email := extractEmail(raw.Snippet.Description)
	viewCount := parseCount(raw.Statistics.ViewCount)
	subscriberCount := parseCount(raw.Statistics.SubscriberCount)
	videoCount := parseCount(raw.Statistics.VideoCount)

	divisor := videoCount
	if divisor < 1 {
		divisor = 1
	}

	ch := &Channel{
		ID:              raw.ID,
		Title:           raw.Snippet.Title,
		Description:     raw.Snippet.Description,
		CustomURL:       raw.Snippet.CustomURL,
		Handle:          raw.Snippet.CustomURL,
		PublishedAt:     raw.Snippet.PublishedAt,
		Thumbnails:      raw.Snippet.Thumbnails,
		Country:         raw.Snippet.Country,
		DefaultLanguage: languageOrNil(raw.Snippet.DefaultLanguage),
		ViewCount:       viewCount,
		SubscriberCount: subscriberCount,
		VideoCount:      videoCount,
		PrivacyStatus:   raw.Status.PrivacyStatus,
		Categories:      parseCategories(raw.TopicDetails.TopicCategories),
		TopicCategories: raw.TopicDetails.TopicCategories,
		UploadsPlaylist: raw.ContentDetails.RelatedPlaylists.Uploads,
		Email:           email,
		Verification: Verification{
			HasEmail:       email != "",
			HasCustomURL:   raw.Snippet.CustomURL != "",
			HasDescription: len(raw.Snippet.Description) > 0,
			IsVerified:     raw.Status.IsLinked,
		},
		Engagement: Engagement{
			AvgViewsPerVideo:       viewCount / divisor,
			SubscriberToVideoRatio: subscriberCount / divisor,
		},
	}

	if analysis != nil {
		ch.PrimaryAudioLanguage = languageOrNil(analysis.PrimaryLanguage)
		ch.LanguageConfidence = analysis.LanguageConfidence
	}

	return ch
}

// formatVideo shapes a raw video resource.
func formatVideo(raw *apiVideo) *Video {
	return &Video{
		ID:              raw.ID,
		Title:           raw.Snippet.Title,
		Description:     raw.Snippet.Description,
		ChannelID:       raw.Snippet.ChannelID,
		ChannelTitle:    raw.Snippet.ChannelTitle,
		PublishedAt:     raw.Snippet.PublishedAt,
		Thumbnails:      raw.Snippet.Thumbnails,
		CategoryID:      raw.Snippet.CategoryID,
		AudioLanguage:   languageOrNil(raw.Snippet.DefaultAudioLanguage),
		Duration:        raw.ContentDetails.Duration,
		ViewCount:       parseCount(raw.Statistics.ViewCount),
		LikeCount:       parseCount(raw.Statistics.LikeCount),
		CommentCount:    parseCount(raw.Statistics.CommentCount),
		PrivacyStatus:   raw.Status.PrivacyStatus,
		Embeddable:      raw.Status.Embeddable,
		MadeForKids:     raw.Status.MadeForKids,
		TopicCategories: raw.TopicDetails.TopicCategories,
		EmbedHTML:       raw.Player.EmbedHTML,
	}
}
