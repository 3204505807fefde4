// ABOUTME: Channel analytics derived from recent videos
// ABOUTME: Per-format metrics, engagement rates, content distribution and language analysis

package youtube

import (
	"math"
	"sort"
)

// VideoMetrics aggregates counters over a window of recent videos.
type VideoMetrics struct {
	VideoCount    int   `json:"video_count"`
	AvgViews      int64 `json:"avg_views"`
	AvgLikes      int64 `json:"avg_likes"`
	AvgComments   int64 `json:"avg_comments"`
	TotalViews    int64 `json:"total_views"`
	TotalLikes    int64 `json:"total_likes"`
	TotalComments int64 `json:"total_comments"`
}

// calculateMetrics aggregates the first windowSize videos of the slice.
func calculateMetrics(videos []*Video, windowSize int) VideoMetrics {
	if len(videos) == 0 || windowSize <= 0 {
		return VideoMetrics{}
	}

	if windowSize > len(videos) {
		windowSize = len(videos)
	}
	recent := videos[:windowSize]

	var m VideoMetrics
	m.VideoCount = len(recent)
	for _, v := range recent {
		m.TotalViews += v.ViewCount
		m.TotalLikes += v.LikeCount
		m.TotalComments += v.CommentCount
	}
	n := int64(m.VideoCount)
	m.AvgViews = m.TotalViews / n
	m.AvgLikes = m.TotalLikes / n
	m.AvgComments = m.TotalComments / n
	return m
}

// engagementRate is (likes + comments) over subscribers for the first
// windowSize videos, as a percentage rounded to 4 decimal places.
func engagementRate(videos []*Video, subscriberCount int64, windowSize int) float64 {
	if len(videos) == 0 || subscriberCount <= 0 || windowSize <= 0 {
		return 0
	}

	if windowSize > len(videos) {
		windowSize = len(videos)
	}

	var total int64
	for _, v := range videos[:windowSize] {
		total += v.LikeCount + v.CommentCount
	}

	rate := float64(total) / float64(subscriberCount) * 100
	return math.Round(rate*10000) / 10000
}

// distribution splits videos by format and carries the split percentages.
type distribution struct {
	shorts []*Video
	long   []*Video

	shortsPercentage float64
	longPercentage   float64
}

func categorizeVideos(videos []*Video) distribution {
	var d distribution
	for _, v := range videos {
		switch v.VideoType {
		case "shorts":
			d.shorts = append(d.shorts, v)
		case "long":
			d.long = append(d.long, v)
		}
	}
	if len(videos) > 0 {
		d.shortsPercentage = float64(len(d.shorts)) / float64(len(videos)) * 100
		d.longPercentage = float64(len(d.long)) / float64(len(videos)) * 100
	}
	return d
}

// primaryFormat classifies a channel's content mix. A format dominating at
// 70% or more of recent uploads wins; otherwise the channel counts as mixed.
func primaryFormat(d distribution) string {
	switch {
	case d.shortsPercentage >= 70:
		return "shorts"
	case d.longPercentage >= 70:
		return "long"
	default:
		return "mixed"
	}
}

// LanguageUsage describes one language's share across analyzed videos.
type LanguageUsage struct {
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// LanguageAnalysis summarizes the audio languages of a channel's recent
// videos.
type LanguageAnalysis struct {
	PrimaryLanguage     string                   `json:"primary_language"`
	PrimaryLanguageName string                   `json:"primary_language_name"`
	LanguageConfidence  float64                  `json:"language_confidence"`
	TotalVideosAnalyzed int                      `json:"total_videos_analyzed"`
	Distribution        map[string]LanguageUsage `json:"language_distribution"`
	LanguagesDetected   []string                 `json:"languages_detected"`
}

// analyzeLanguages tallies audio language codes across videos. The primary
// language is the most frequent; ties break alphabetically for determinism.
func analyzeLanguages(videos []*Video) *LanguageAnalysis {
	counts := make(map[string]int)
	for _, v := range videos {
		if v.AudioLanguage != nil && v.AudioLanguage.Code != "" {
			counts[v.AudioLanguage.Code]++
		}
	}

	total := 0
	codes := make([]string, 0, len(counts))
	for code, n := range counts {
		total += n
		codes = append(codes, code)
	}
	sort.Strings(codes)

	analysis := &LanguageAnalysis{
		TotalVideosAnalyzed: total,
		Distribution:        make(map[string]LanguageUsage, len(counts)),
		LanguagesDetected:   codes,
	}

	maxCount := 0
	for _, code := range codes {
		n := counts[code]
		pct := 0.0
		if total > 0 {
			pct = math.Round(float64(n)/float64(total)*1000) / 10
		}
		analysis.Distribution[code] = LanguageUsage{
			Code:       code,
			Name:       LanguageName(code),
			Count:      n,
			Percentage: pct,
		}
		if n > maxCount {
			maxCount = n
			analysis.PrimaryLanguage = code
		}
	}

	if analysis.PrimaryLanguage != "" {
		analysis.PrimaryLanguageName = LanguageName(analysis.PrimaryLanguage)
		analysis.LanguageConfidence = math.Round(float64(maxCount)/float64(total)*1000) / 10
	}

	return analysis
}

// WindowMetrics is one format's averages and engagement rate for a window.
type WindowMetrics struct {
	AvgViews    int64   `json:"avg_views"`
	AvgLikes    int64   `json:"avg_likes"`
	AvgComments int64   `json:"avg_comments"`
	ER          float64 `json:"er"`
}

// FormatMetrics carries both analysis windows for one video format.
type FormatMetrics struct {
	Last6Videos  WindowMetrics `json:"last_6_videos"`
	Last15Videos WindowMetrics `json:"last_15_videos"`
}

// ContentDistribution summarizes the shorts/long split.
type ContentDistribution struct {
	ShortCount   int     `json:"short_count"`
	LongCount    int     `json:"long_count"`
	ShortPercent float64 `json:"short_percent"`
	LongPercent  float64 `json:"long_percent"`
}

// FinalMetrics is the condensed analytics block served by default.
type FinalMetrics struct {
	ChannelType         string              `json:"channel_type"`
	Short               FormatMetrics       `json:"short"`
	Long                FormatMetrics       `json:"long"`
	ContentDistribution ContentDistribution `json:"content_distribution"`
}

// DetailedBreakdown is the full analytics block, included on request.
type DetailedBreakdown struct {
	OverallMetrics struct {
		Last6Videos  VideoMetrics `json:"last_6_videos"`
		Last15Videos VideoMetrics `json:"last_15_videos"`
	} `json:"overall_metrics"`
	ShortsMetrics struct {
		Last6Videos  VideoMetrics `json:"last_6_videos"`
		Last15Videos VideoMetrics `json:"last_15_videos"`
		ERLast6      float64      `json:"er_last_6"`
		ERLast15     float64      `json:"er_last_15"`
	} `json:"shorts_metrics"`
	LongFormMetrics struct {
		Last6Videos  VideoMetrics `json:"last_6_videos"`
		Last15Videos VideoMetrics `json:"last_15_videos"`
		ERLast6      float64      `json:"er_last_6"`
		ERLast15     float64      `json:"er_last_15"`
	} `json:"long_form_metrics"`
	ContentDistribution ContentDistribution `json:"video_distribution"`
	LanguageAnalysis    *LanguageAnalysis   `json:"language_analysis"`
}

// Analytics is the analytics section of a recent-videos report.
type Analytics struct {
	FinalMetrics      FinalMetrics       `json:"final_metrics"`
	DetailedBreakdown *DetailedBreakdown `json:"detailed_breakdown,omitempty"`
}

// buildAnalytics derives the full analytics block from recent videos.
func buildAnalytics(videos []*Video, subscriberCount int64, analysis *LanguageAnalysis, includeDetailed bool) Analytics {
	dist := categorizeVideos(videos)

	shortsER6 := engagementRate(dist.shorts, subscriberCount, 6)
	shortsER15 := engagementRate(dist.shorts, subscriberCount, 15)
	longER6 := engagementRate(dist.long, subscriberCount, 6)
	longER15 := engagementRate(dist.long, subscriberCount, 15)

	shortsMetrics6 := calculateMetrics(dist.shorts, 6)
	shortsMetrics15 := calculateMetrics(dist.shorts, 15)
	longMetrics6 := calculateMetrics(dist.long, 6)
	longMetrics15 := calculateMetrics(dist.long, 15)

	channelType := primaryFormat(dist)
	switch channelType {
	case "shorts":
		channelType = "short"
	case "long":
	default:
		// For a mixed channel the dominant format is the one with the
		// higher average engagement rate.
		if (shortsER6+shortsER15)/2 > (longER6+longER15)/2 {
			channelType = "short"
		} else {
			channelType = "long"
		}
	}

	contentDist := ContentDistribution{
		ShortCount:   len(dist.shorts),
		LongCount:    len(dist.long),
		ShortPercent: math.Round(dist.shortsPercentage*10) / 10,
		LongPercent:  math.Round(dist.longPercentage*10) / 10,
	}

	a := Analytics{
		FinalMetrics: FinalMetrics{
			ChannelType: channelType,
			Short: FormatMetrics{
				Last6Videos:  windowMetrics(shortsMetrics6, shortsER6),
				Last15Videos: windowMetrics(shortsMetrics15, shortsER15),
			},
			Long: FormatMetrics{
				Last6Videos:  windowMetrics(longMetrics6, longER6),
				Last15Videos: windowMetrics(longMetrics15, longER15),
			},
			ContentDistribution: contentDist,
		},
	}

	if includeDetailed {
		detail := &DetailedBreakdown{
			ContentDistribution: contentDist,
			LanguageAnalysis:    analysis,
		}
		detail.OverallMetrics.Last6Videos = calculateMetrics(videos, 6)
		detail.OverallMetrics.Last15Videos = calculateMetrics(videos, 15)
		detail.ShortsMetrics.Last6Videos = shortsMetrics6
		detail.ShortsMetrics.Last15Videos = shortsMetrics15
		detail.ShortsMetrics.ERLast6 = shortsER6
		detail.ShortsMetrics.ERLast15 = shortsER15
		detail.LongFormMetrics.Last6Videos = longMetrics6
		detail.LongFormMetrics.Last15Videos = longMetrics15
		detail.LongFormMetrics.ERLast6 = longER6
		detail.LongFormMetrics.ERLast15 = longER15
		a.DetailedBreakdown = detail
	}

	return a
}

func windowMetrics(m VideoMetrics, er float64) WindowMetrics {
	return WindowMetrics{
		AvgViews:    m.AvgViews,
		AvgLikes:    m.AvgLikes,
		AvgComments: m.AvgComments,
		ER:          er,
	}
}
