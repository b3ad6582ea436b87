package apify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orgball2608/insta-competitor-bot/pkg/logger"
)

func TestMapItems(t *testing.T) {
	log := logger.New(logger.Opts{})

	t.Run("reel actor shape", func(t *testing.T) {
		data := []byte(`[{
			"url": "https://www.instagram.com/reel/abc/",
			"caption": "big news",
			"ownerUsername": "clinic",
			"videoViewCount": 15000,
			"likesCount": 320,
			"commentsCount": 18,
			"timestamp": "2025-06-01T10:30:00Z"
		}]`)

		posts := MapItems(data, log)
		require.Len(t, posts, 1)

		p := posts[0]
		assert.Equal(t, "https://www.instagram.com/reel/abc/", p.URL)
		assert.Equal(t, "big news", p.Caption)
		assert.Equal(t, "clinic", p.OwnerUsername)
		assert.Equal(t, 15000, p.ViewCount)
		assert.Equal(t, 320, p.LikeCount)
		assert.Equal(t, 18, p.CommentCount)
		assert.Equal(t, time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC), p.TakenAt.UTC())
	})

	t.Run("hashtag actor aliases", func(t *testing.T) {
		data := []byte(`[{
			"webVideoUrl": "https://www.instagram.com/reel/xyz/",
			"text": "caption under another key",
			"username": "someone",
			"videoPlayCount": 777,
			"likeCount": 5,
			"takenAtTimestamp": 1748771400
		}]`)

		posts := MapItems(data, log)
		require.Len(t, posts, 1)

		p := posts[0]
		assert.Equal(t, "https://www.instagram.com/reel/xyz/", p.URL)
		assert.Equal(t, "caption under another key", p.Caption)
		assert.Equal(t, "someone", p.OwnerUsername)
		assert.Equal(t, 777, p.ViewCount)
		assert.Equal(t, 5, p.LikeCount)
		assert.Equal(t, int64(1748771400), p.TakenAt.Unix())
	})

	t.Run("items without url are dropped", func(t *testing.T) {
		data := []byte(`[
			{"caption": "no link here", "videoViewCount": 10},
			{"url": "https://www.instagram.com/reel/kept/"}
		]`)

		posts := MapItems(data, log)
		require.Len(t, posts, 1)
		assert.Equal(t, "https://www.instagram.com/reel/kept/", posts[0].URL)
	})

	t.Run("empty and invalid payloads yield an empty non-nil slice", func(t *testing.T) {
		posts := MapItems([]byte(`[]`), log)
		require.NotNil(t, posts)
		assert.Len(t, posts, 0)

		posts = MapItems([]byte(`not json`), log)
		require.NotNil(t, posts)
		assert.Len(t, posts, 0)
	})
}
