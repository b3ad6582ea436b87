package scenes

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/insta-competitor-bot/internal/session"
	"github.com/orgball2608/insta-competitor-bot/internal/storage"
	"github.com/orgball2608/insta-competitor-bot/internal/telegram"
	"github.com/orgball2608/insta-competitor-bot/pkg/formatter"
	"github.com/orgball2608/insta-competitor-bot/pkg/logger"
	"go.uber.org/fx"
)

const (
	msgPickProjectReels = "Выберите проект, чтобы посмотреть собранные Reels:"
	msgNoReels          = "В проекте «%s» пока нет собранных Reels. Запустите скрейпинг через /scrape."
	reelsPageSize       = 10
)

type ReelsOpts struct {
	fx.In

	Storage  storage.Adapter
	Telegram telegram.Client
	Logger   logger.Logger
}

type ReelsScene struct {
	storage storage.Adapter
	tg      telegram.Client
	logger  logger.Logger
}

func NewReelsScene(opts ReelsOpts) *ReelsScene {
	return &ReelsScene{
		storage: opts.Storage,
		tg:      opts.Telegram,
		logger:  opts.Logger.WithComponent("ReelsScene"),
	}
}

var _ Scene = (*ReelsScene)(nil)

func (s *ReelsScene) Name() string { return SceneReels }

func (s *ReelsScene) Enter(ctx context.Context, sess session.Session) (session.Session, error) {
	sess = sess.WithStep(session.StepNone)

	if sess.ProjectID != 0 {
		return s.showReels(ctx, sess, sess.ProjectID)
	}

	user, err := s.storage.GetUserByTelegramID(ctx, sess.ChatID)
	if err != nil {
		return sess, fmt.Errorf("resolve user: %w", err)
	}
	if user == nil {
		s.tg.SendMessage(sess.ChatID, MsgNotRegistered)
		return sess.Left(), nil
	}

	projects, err := s.storage.GetProjectsByUserID(ctx, user.ID)
	if err != nil {
		return sess, fmt.Errorf("list projects: %w", err)
	}

	switch len(projects) {
	case 0:
		s.tg.SendMessageWithKeyboard(sess.ChatID, msgNoProjects, emptyProjectsKeyboard())
		return sess, nil
	case 1:
		return s.showReels(ctx, sess, projects[0].ID)
	default:
		s.tg.SendMessageWithKeyboard(sess.ChatID, msgPickProjectReels,
			projectListKeyboard(projects, "project_"))
		return sess, nil
	}
}

func (s *ReelsScene) HandleAction(ctx context.Context, sess session.Session, act Action) (session.Session, error) {
	switch act.Kind {
	case ActionSelectProject:
		return s.showReels(ctx, sess, act.ProjectID)

	case ActionCreateProject, ActionBackToProjects:
		return switchTo(sess, SceneProjects, 0), nil

	default:
		s.tg.SendMessage(sess.ChatID, MsgBadAction)
		return sess, nil
	}
}

func (s *ReelsScene) HandleText(ctx context.Context, sess session.Session, text string) (session.Session, error) {
	// The reels scene has no text input.
	return sess, nil
}

func (s *ReelsScene) showReels(ctx context.Context, sess session.Session, projectID int64) (session.Session, error) {
	project, err := s.storage.GetProjectByID(ctx, projectID)
	if err != nil {
		return sess, fmt.Errorf("get project %d: %w", projectID, err)
	}
	if project == nil {
		s.tg.SendMessage(sess.ChatID, MsgProjectNotFound)
		return s.Enter(ctx, sess.WithProject(0))
	}

	reels, err := s.storage.GetReels(ctx, storage.ReelFilter{
		ProjectID:    projectID,
		OrderByViews: true,
		Limit:        reelsPageSize,
	})
	if err != nil {
		return sess, fmt.Errorf("list reels: %w", err)
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(backToProjectsRow(), exitRow())
	if len(reels) == 0 {
		s.tg.SendMessageWithKeyboard(sess.ChatID, fmt.Sprintf(msgNoReels, project.Name), keyboard)
		return sess.WithProject(projectID), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🎬 Топ Reels проекта «%s»:\n\n", project.Name)
	for i, r := range reels {
		fmt.Fprintf(&b, "%d. @%s — %s просмотров, %s лайков\n%s\n%s\n\n",
			i+1,
			r.OwnerUsername,
			formatter.FormatNumber(r.ViewCount),
			formatter.FormatNumber(r.LikeCount),
			formatter.FormatDate(r.PublishedAt),
			r.URL)
	}

	s.tg.SendMessageWithKeyboard(sess.ChatID, b.String(), keyboard)
	return sess.WithProject(projectID), nil
}
