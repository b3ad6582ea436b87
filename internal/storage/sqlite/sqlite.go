package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/orgball2608/insta-competitor-bot/internal/domain"
	"github.com/orgball2608/insta-competitor-bot/internal/storage"
	"github.com/orgball2608/insta-competitor-bot/pkg/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Sqlite is the embedded-file implementation of the storage contract. It
// mirrors the postgres adapter behavior so scene handlers cannot tell the
// two apart.
type Sqlite struct {
	db     *gorm.DB
	logger logger.Logger
}

func New(path string, log logger.Logger) (*Sqlite, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is empty")
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	s := &Sqlite{
		db:     db,
		logger: log.WithComponent("SqliteStorage"),
	}

	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run sqlite migrations: %w", err)
	}

	return s, nil
}

var _ storage.Adapter = (*Sqlite)(nil)

func (s *Sqlite) migrate() error {
	return s.db.AutoMigrate(
		&UserModel{},
		&ProjectModel{},
		&CompetitorModel{},
		&HashtagModel{},
		&ReelModel{},
		&ParsingRunLogModel{},
	)
}

func (s *Sqlite) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connection. Idempotent; repeated calls on
// an already closed database are not an error.
func (s *Sqlite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return nil
	}
	_ = sqlDB.Close()
	return nil
}

func (s *Sqlite) GetUserByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	var m UserModel
	err := s.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	u := m.toDomain()
	return &u, nil
}

func (s *Sqlite) FindOrCreateUser(ctx context.Context, telegramID int64, profile domain.UserProfile) (*domain.User, error) {
	m := UserModel{
		TelegramID: telegramID,
		Username:   profile.Username,
		FirstName:  profile.FirstName,
		LastName:   profile.LastName,
		IsActive:   true,
	}
	err := s.db.WithContext(ctx).
		Where(UserModel{TelegramID: telegramID}).
		FirstOrCreate(&m).Error
	if err != nil {
		return nil, err
	}
	u := m.toDomain()
	return &u, nil
}

func (s *Sqlite) GetProjectsByUserID(ctx context.Context, userID int64) ([]domain.Project, error) {
	var models []ProjectModel
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	projects := make([]domain.Project, 0, len(models))
	for _, m := range models {
		projects = append(projects, m.toDomain())
	}
	return projects, nil
}

func (s *Sqlite) GetActiveProjects(ctx context.Context) ([]domain.Project, error) {
	var models []ProjectModel
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	projects := make([]domain.Project, 0, len(models))
	for _, m := range models {
		projects = append(projects, m.toDomain())
	}
	return projects, nil
}

func (s *Sqlite) CreateProject(ctx context.Context, userID int64, name string) (*domain.Project, error) {
	m := ProjectModel{
		UserID:   userID,
		Name:     name,
		IsActive: true,
	}
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, err
	}
	p := m.toDomain()
	return &p, nil
}

func (s *Sqlite) GetProjectByID(ctx context.Context, id int64) (*domain.Project, error) {
	var m ProjectModel
	err := s.db.WithContext(ctx).First(&m, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	p := m.toDomain()
	return &p, nil
}

func (s *Sqlite) GetCompetitorAccounts(ctx context.Context, projectID int64, activeOnly bool) ([]domain.Competitor, error) {
	q := s.db.WithContext(ctx).Where("project_id = ?", projectID)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var models []CompetitorModel
	if err := q.Order("username ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	competitors := make([]domain.Competitor, 0, len(models))
	for _, m := range models {
		competitors = append(competitors, m.toDomain())
	}
	return competitors, nil
}

func (s *Sqlite) AddCompetitorAccount(ctx context.Context, projectID int64, username, profileURL string) (*domain.Competitor, error) {
	project, err := s.GetProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, nil
	}

	m := CompetitorModel{
		ProjectID:  projectID,
		Username:   username,
		ProfileURL: profileURL,
		IsActive:   true,
	}
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, err
	}
	c := m.toDomain()
	return &c, nil
}

func (s *Sqlite) DeleteCompetitorAccount(ctx context.Context, projectID int64, username string) (bool, error) {
	result := s.db.WithContext(ctx).
		Where("project_id = ? AND username = ?", projectID, username).
		Delete(&CompetitorModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *Sqlite) GetHashtagsByProjectID(ctx context.Context, projectID int64) ([]domain.Hashtag, error) {
	var models []HashtagModel
	err := s.db.WithContext(ctx).
		Where("project_id = ? AND is_active = ?", projectID, true).
		Order("tag ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	hashtags := make([]domain.Hashtag, 0, len(models))
	for _, m := range models {
		hashtags = append(hashtags, m.toDomain())
	}
	return hashtags, nil
}

func (s *Sqlite) AddHashtag(ctx context.Context, projectID int64, tag string) (*domain.Hashtag, error) {
	m := HashtagModel{
		ProjectID: projectID,
		Tag:       tag,
		IsActive:  true,
	}
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, err
	}
	h := m.toDomain()
	return &h, nil
}

func (s *Sqlite) RemoveHashtag(ctx context.Context, projectID int64, tag string) (bool, error) {
	result := s.db.WithContext(ctx).
		Where("project_id = ? AND tag = ?", projectID, tag).
		Delete(&HashtagModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *Sqlite) SaveReels(ctx context.Context, reels []domain.Reel, projectID int64, source domain.Source) (int, error) {
	saved := 0
	for _, reel := range reels {
		if reel.URL == "" {
			s.logger.Warn("Skipping reel without URL", "project_id", projectID)
			continue
		}

		fetchedAt := reel.FetchedAt
		if fetchedAt.IsZero() {
			fetchedAt = time.Now()
		}

		var existing ReelModel
		err := s.db.WithContext(ctx).
			Where("project_id = ? AND url = ?", projectID, reel.URL).
			First(&existing).Error
		switch {
		case err == nil:
			updates := map[string]any{
				"view_count":    reel.ViewCount,
				"like_count":    reel.LikeCount,
				"comment_count": reel.CommentCount,
				"fetched_at":    fetchedAt,
			}
			if err := s.db.WithContext(ctx).Model(&existing).Updates(updates).Error; err != nil {
				return saved, err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			m := ReelModel{
				ProjectID:     projectID,
				SourceType:    string(source.Type),
				SourceID:      source.ID,
				URL:           reel.URL,
				Caption:       reel.Caption,
				OwnerUsername: reel.OwnerUsername,
				ViewCount:     reel.ViewCount,
				LikeCount:     reel.LikeCount,
				CommentCount:  reel.CommentCount,
				PublishedAt:   reel.PublishedAt,
				FetchedAt:     fetchedAt,
			}
			if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
				return saved, err
			}
		default:
			return saved, err
		}
		saved++
	}

	return saved, nil
}

func (s *Sqlite) GetReels(ctx context.Context, filter storage.ReelFilter) ([]domain.Reel, error) {
	q := s.db.WithContext(ctx).Model(&ReelModel{})

	if filter.ProjectID != 0 {
		q = q.Where("project_id = ?", filter.ProjectID)
	}
	if filter.SourceType != "" {
		q = q.Where("source_type = ?", string(filter.SourceType))
	}
	if filter.SourceID != 0 {
		q = q.Where("source_id = ?", filter.SourceID)
	}
	if filter.MinViews > 0 {
		q = q.Where("view_count >= ?", filter.MinViews)
	}
	if !filter.Since.IsZero() {
		q = q.Where("published_at >= ?", filter.Since)
	}
	if filter.OnlyUnprocessed {
		q = q.Where("is_processed = ?", false)
	}
	if filter.OrderByViews {
		q = q.Order("view_count DESC")
	} else {
		q = q.Order("published_at DESC")
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var models []ReelModel
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}

	reels := make([]domain.Reel, 0, len(models))
	for _, m := range models {
		reels = append(reels, m.toDomain())
	}
	return reels, nil
}

func (s *Sqlite) LogParsingRun(ctx context.Context, runLog domain.ParsingRunLog) (*domain.ParsingRunLog, error) {
	var existing ParsingRunLogModel
	err := s.db.WithContext(ctx).Where("run_id = ?", runLog.RunID).First(&existing).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		startedAt := runLog.StartedAt
		if startedAt.IsZero() {
			startedAt = time.Now()
		}
		m := ParsingRunLogModel{
			RunID:        runLog.RunID,
			ProjectID:    runLog.ProjectID,
			SourceType:   string(runLog.SourceType),
			SourceID:     runLog.SourceID,
			Status:       string(runLog.Status),
			PostsFound:   runLog.PostsFound,
			PostsAdded:   runLog.PostsAdded,
			ErrorMessage: runLog.ErrorMessage,
			StartedAt:    startedAt,
		}
		if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
			return nil, err
		}
		out := m.toDomain()
		return &out, nil
	case err != nil:
		return nil, err
	}

	updates := map[string]any{
		"status":        string(runLog.Status),
		"posts_found":   runLog.PostsFound,
		"posts_added":   runLog.PostsAdded,
		"error_message": runLog.ErrorMessage,
		"ended_at":      runLog.EndedAt,
	}
	if err := s.db.WithContext(ctx).Model(&existing).Updates(updates).Error; err != nil {
		return nil, err
	}

	var updated ParsingRunLogModel
	if err := s.db.WithContext(ctx).Where("run_id = ?", runLog.RunID).First(&updated).Error; err != nil {
		return nil, err
	}
	out := updated.toDomain()
	return &out, nil
}

func (s *Sqlite) GetParsingRunLogs(ctx context.Context, source domain.Source) ([]domain.ParsingRunLog, error) {
	var models []ParsingRunLogModel
	err := s.db.WithContext(ctx).
		Where("source_type = ? AND source_id = ?", string(source.Type), source.ID).
		Order("started_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	logs := make([]domain.ParsingRunLog, 0, len(models))
	for _, m := range models {
		logs = append(logs, m.toDomain())
	}
	return logs, nil
}
