// ABOUTME: Domain types for channels, videos and feed entries
// ABOUTME: Raw provider payload shapes stay unexported; handlers only see the formatted types

package youtube

import "encoding/json"

// apiChannel mirrors the provider's channel resource shape.
type apiChannel struct {
	ID      string `json:"id"`
	Snippet struct {
		Title           string                     `json:"title"`
		Description     string                     `json:"description"`
		CustomURL       string                     `json:"customUrl"`
		PublishedAt     string                     `json:"publishedAt"`
		Thumbnails      map[string]json.RawMessage `json:"thumbnails"`
		Country         string                     `json:"country"`
		DefaultLanguage string                     `json:"defaultLanguage"`
	} `json:"snippet"`
	Statistics struct {
		ViewCount       string `json:"viewCount"`
		SubscriberCount string `json:"subscriberCount"`
		VideoCount      string `json:"videoCount"`
	} `json:"statistics"`
	Status struct {
		PrivacyStatus string `json:"privacyStatus"`
		IsLinked      bool   `json:"isLinked"`
	} `json:"status"`
	TopicDetails struct {
		TopicCategories []string `json:"topicCategories"`
	} `json:"topicDetails"`
	ContentDetails struct {
		RelatedPlaylists struct {
			Uploads string `json:"uploads"`
		} `json:"relatedPlaylists"`
	} `json:"contentDetails"`
}

// apiVideo mirrors the provider's video resource shape.
type apiVideo struct {
	ID      string `json:"id"`
	Snippet struct {
		Title                string                     `json:"title"`
		Description          string                     `json:"description"`
		ChannelID            string                     `json:"channelId"`
		ChannelTitle         string                     `json:"channelTitle"`
		PublishedAt          string                     `json:"publishedAt"`
		Thumbnails           map[string]json.RawMessage `json:"thumbnails"`
		CategoryID           string                     `json:"categoryId"`
		DefaultAudioLanguage string                     `json:"defaultAudioLanguage"`
	} `json:"snippet"`
	ContentDetails struct {
		Duration string `json:"duration"`
	} `json:"contentDetails"`
	Statistics struct {
		ViewCount    string `json:"viewCount"`
		LikeCount    string `json:"likeCount"`
		CommentCount string `json:"commentCount"`
	} `json:"statistics"`
	Status struct {
		PrivacyStatus string `json:"privacyStatus"`
		Embeddable    bool   `json:"embeddable"`
		MadeForKids   bool   `json:"madeForKids"`
	} `json:"status"`
	TopicDetails struct {
		TopicCategories []string `json:"topicCategories"`
	} `json:"topicDetails"`
	Player struct {
		EmbedHTML string `json:"embedHtml"`
	} `json:"player"`
}

// Language pairs a BCP-47 code with its display name.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Verification summarizes signals about how established a channel is.
type Verification struct {
	HasEmail       bool `json:"has_email"`
	HasCustomURL   bool `json:"has_custom_url"`
	HasDescription bool `json:"has_description"`
	IsVerified     bool `json:"is_verified"`
}

// Engagement holds derived per-channel ratios.
type Engagement struct {
	AvgViewsPerVideo       int64 `json:"avg_views_per_video"`
	SubscriberToVideoRatio int64 `json:"subscriber_to_video_ratio"`
}

// Channel is the formatted channel resource served to clients.
type Channel struct {
	ID                   string                     `json:"id"`
	Title                string                     `json:"title"`
	Description          string                     `json:"description"`
	CustomURL            string                     `json:"custom_url"`
	Handle               string                     `json:"handle"`
	PublishedAt          string                     `json:"published_at"`
	Thumbnails           map[string]json.RawMessage `json:"thumbnails"`
	Country              string                     `json:"country,omitempty"`
	DefaultLanguage      *Language                  `json:"default_language"`
	PrimaryAudioLanguage *Language                  `json:"primary_audio_language"`
	LanguageConfidence   float64                    `json:"language_confidence"`
	ViewCount            int64                      `json:"view_count"`
	SubscriberCount      int64                      `json:"subscriber_count"`
	VideoCount           int64                      `json:"video_count"`
	PrivacyStatus        string                     `json:"privacy_status"`
	Categories           []string                   `json:"categories"`
	TopicCategories      []string                   `json:"topic_categories"`
	UploadsPlaylist      string                     `json:"uploads_playlist"`
	Email                string                     `json:"email,omitempty"`
	Verification         Verification               `json:"verification_status"`
	Engagement           Engagement                 `json:"engagement_data"`
}

// Video is the formatted video resource served to clients.
type Video struct {
	ID              string                     `json:"id"`
	Title           string                     `json:"title"`
	Description     string                     `json:"description"`
	ChannelID       string                     `json:"channel_id"`
	ChannelTitle    string                     `json:"channel_title"`
	PublishedAt     string                     `json:"published_at"`
	Thumbnails      map[string]json.RawMessage `json:"thumbnails"`
	CategoryID      string                     `json:"category_id"`
	AudioLanguage   *Language                  `json:"default_audio_language"`
	Duration        string                     `json:"duration"`
	ViewCount       int64                      `json:"view_count"`
	LikeCount       int64                      `json:"like_count"`
	CommentCount    int64                      `json:"comment_count"`
	PrivacyStatus   string                     `json:"privacy_status"`
	Embeddable      bool                       `json:"embeddable"`
	MadeForKids     bool                       `json:"made_for_kids"`
	TopicCategories []string                   `json:"topic_categories"`
	EmbedHTML       string                     `json:"embed_html,omitempty"`
	VideoType       string                     `json:"video_type,omitempty"`
	FeedURL         string                     `json:"rss_url,omitempty"`
}

// FeedVideo is one entry parsed from a channel's public video feed.
type FeedVideo struct {
	VideoID     string `json:"video_id"`
	Title       string `json:"title"`
	PublishedAt string `json:"published_at"`
	UpdatedAt   string `json:"updated_at"`
	URL         string `json:"url"`
	VideoType   string `json:"video_type"`
	FeedViews   int64  `json:"views_from_rss"`
}
