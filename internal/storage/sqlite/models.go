package sqlite

import (
	"time"

	"github.com/orgball2608/insta-competitor-bot/internal/domain"
)

type UserModel struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	TelegramID int64  `gorm:"uniqueIndex;not null"`
	Username   string
	FirstName  string
	LastName   string
	IsActive   bool      `gorm:"default:true"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (UserModel) TableName() string { return "users" }

type ProjectModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	UserID    int64  `gorm:"index;not null"`
	Name      string `gorm:"not null"`
	IsActive  bool   `gorm:"default:true"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (ProjectModel) TableName() string { return "projects" }

type CompetitorModel struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	ProjectID  int64  `gorm:"index;not null"`
	Username   string `gorm:"not null"`
	ProfileURL string
	IsActive   bool      `gorm:"default:true"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (CompetitorModel) TableName() string { return "competitors" }

type HashtagModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	ProjectID int64  `gorm:"index;not null"`
	Tag       string `gorm:"not null"`
	IsActive  bool      `gorm:"default:true"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (HashtagModel) TableName() string { return "hashtags" }

type ReelModel struct {
	ID            int64  `gorm:"primaryKey;autoIncrement"`
	ProjectID     int64  `gorm:"uniqueIndex:idx_reels_project_url;not null"`
	SourceType    string `gorm:"index:idx_reels_source"`
	SourceID      int64  `gorm:"index:idx_reels_source"`
	URL           string `gorm:"uniqueIndex:idx_reels_project_url;not null"`
	Caption       string
	OwnerUsername string
	ViewCount     int
	LikeCount     int
	CommentCount  int
	PublishedAt   time.Time
	FetchedAt     time.Time
	IsProcessed   bool `gorm:"default:false"`
}

func (ReelModel) TableName() string { return "reels" }

type ParsingRunLogModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	RunID        string `gorm:"uniqueIndex;not null"`
	ProjectID    int64  `gorm:"index"`
	SourceType   string `gorm:"index:idx_run_logs_source"`
	SourceID     int64  `gorm:"index:idx_run_logs_source"`
	Status       string
	PostsFound   int
	PostsAdded   int
	ErrorMessage string
	StartedAt    time.Time
	EndedAt      *time.Time
}

func (ParsingRunLogModel) TableName() string { return "parsing_run_logs" }

func (m UserModel) toDomain() domain.User {
	return domain.User{
		ID:         m.ID,
		TelegramID: m.TelegramID,
		Username:   m.Username,
		FirstName:  m.FirstName,
		LastName:   m.LastName,
		IsActive:   m.IsActive,
		CreatedAt:  m.CreatedAt,
	}
}

func (m ProjectModel) toDomain() domain.Project {
	return domain.Project{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
	}
}

func (m CompetitorModel) toDomain() domain.Competitor {
	return domain.Competitor{
		ID:         m.ID,
		ProjectID:  m.ProjectID,
		Username:   m.Username,
		ProfileURL: m.ProfileURL,
		IsActive:   m.IsActive,
		CreatedAt:  m.CreatedAt,
	}
}

func (m HashtagModel) toDomain() domain.Hashtag {
	return domain.Hashtag{
		ID:        m.ID,
		ProjectID: m.ProjectID,
		Tag:       m.Tag,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
	}
}

func (m ReelModel) toDomain() domain.Reel {
	return domain.Reel{
		ID:            m.ID,
		ProjectID:     m.ProjectID,
		SourceType:    domain.SourceType(m.SourceType),
		SourceID:      m.SourceID,
		URL:           m.URL,
		Caption:       m.Caption,
		OwnerUsername: m.OwnerUsername,
		ViewCount:     m.ViewCount,
		LikeCount:     m.LikeCount,
		CommentCount:  m.CommentCount,
		PublishedAt:   m.PublishedAt,
		FetchedAt:     m.FetchedAt,
		IsProcessed:   m.IsProcessed,
	}
}

func (m ParsingRunLogModel) toDomain() domain.ParsingRunLog {
	return domain.ParsingRunLog{
		ID:           m.ID,
		RunID:        m.RunID,
		ProjectID:    m.ProjectID,
		SourceType:   domain.SourceType(m.SourceType),
		SourceID:     m.SourceID,
		Status:       domain.RunStatus(m.Status),
		PostsFound:   m.PostsFound,
		PostsAdded:   m.PostsAdded,
		ErrorMessage: m.ErrorMessage,
		StartedAt:    m.StartedAt,
		EndedAt:      m.EndedAt,
	}
}
