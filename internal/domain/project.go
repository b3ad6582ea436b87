package domain

import "time"

type Project struct {
	ID        int64
	UserID    int64
	Name      string
	IsActive  bool
	CreatedAt time.Time
}

type Competitor struct {
	ID         int64
	ProjectID  int64
	Username   string
	ProfileURL string
	IsActive   bool
	CreatedAt  time.Time
}

type Hashtag struct {
	ID        int64
	ProjectID int64
	Tag       string
	IsActive  bool
	CreatedAt time.Time
}
