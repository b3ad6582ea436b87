package domain

import "time"

// SourceType says which kind of tracked source produced a reel.
type SourceType string

const (
	SourceCompetitor SourceType = "competitor"
	SourceHashtag    SourceType = "hashtag"
)

// Source identifies one tracked competitor account or hashtag.
type Source struct {
	Type SourceType
	ID   int64
}

type Reel struct {
	ID            int64
	ProjectID     int64
	SourceType    SourceType
	SourceID      int64
	URL           string
	Caption       string
	OwnerUsername string
	ViewCount     int
	LikeCount     int
	CommentCount  int
	PublishedAt   time.Time
	FetchedAt     time.Time
	IsProcessed   bool
}

// ScrapedPost is the raw record returned by the scraping service before it
// is attributed to a project and source.
type ScrapedPost struct {
	URL           string
	Caption       string
	OwnerUsername string
	ViewCount     int
	LikeCount     int
	CommentCount  int
	TakenAt       time.Time
}

// ToReel maps a raw scraped record into the persisted reel shape. Pure data
// transformation; attribution comes from the run that fetched it.
func (p ScrapedPost) ToReel(projectID int64, source Source) Reel {
	return Reel{
		ProjectID:     projectID,
		SourceType:    source.Type,
		SourceID:      source.ID,
		URL:           p.URL,
		Caption:       p.Caption,
		OwnerUsername: p.OwnerUsername,
		ViewCount:     p.ViewCount,
		LikeCount:     p.LikeCount,
		CommentCount:  p.CommentCount,
		PublishedAt:   p.TakenAt,
		FetchedAt:     time.Now(),
	}
}
