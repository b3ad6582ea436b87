package apify

import (
	"time"

	"github.com/buger/jsonparser"
	"github.com/orgball2608/insta-competitor-bot/internal/domain"
	"github.com/orgball2608/insta-competitor-bot/pkg/logger"
)

// MapItems converts a raw Apify dataset (a JSON array) into scraped posts.
// Actor output shapes drift between versions, so each field is probed under
// its known aliases and items without a URL are dropped rather than failing
// the whole batch.
func MapItems(data []byte, log logger.Logger) []domain.ScrapedPost {
	posts := make([]domain.ScrapedPost, 0)

	_, err := jsonparser.ArrayEach(data, func(item []byte, _ jsonparser.ValueType, _ int, _ error) {
		post, ok := mapItem(item)
		if !ok {
			log.Warn("Skipping dataset item without url")
			return
		}
		posts = append(posts, post)
	})
	if err != nil {
		log.Error("Failed to iterate dataset items", "error", err)
	}

	return posts
}

func mapItem(item []byte) (domain.ScrapedPost, bool) {
	url := firstString(item, "url", "postUrl", "webVideoUrl")
	if url == "" {
		return domain.ScrapedPost{}, false
	}

	post := domain.ScrapedPost{
		URL:           url,
		Caption:       firstString(item, "caption", "text"),
		OwnerUsername: firstString(item, "ownerUsername", "username"),
		ViewCount:     firstInt(item, "videoViewCount", "videoPlayCount", "viewCount"),
		LikeCount:     firstInt(item, "likesCount", "likeCount"),
		CommentCount:  firstInt(item, "commentsCount", "commentCount"),
	}

	if ts := firstString(item, "timestamp", "takenAt"); ts != "" {
		if parsed, err := time.Parse(time.RFC3339, ts); err == nil {
			post.TakenAt = parsed
		}
	}
	if post.TakenAt.IsZero() {
		if unix := firstInt(item, "takenAtTimestamp"); unix > 0 {
			post.TakenAt = time.Unix(int64(unix), 0)
		}
	}

	return post, true
}

func firstString(item []byte, keys ...string) string {
	for _, key := range keys {
		if v, err := jsonparser.GetString(item, key); err == nil && v != "" {
			return v
		}
	}
	return ""
}

func firstInt(item []byte, keys ...string) int {
	for _, key := range keys {
		if v, err := jsonparser.GetInt(item, key); err == nil {
			return int(v)
		}
	}
	return 0
}
