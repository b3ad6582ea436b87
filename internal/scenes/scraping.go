package scenes

import (
	"context"
	"fmt"

	"github.com/orgball2608/insta-competitor-bot/internal/runner"
	"github.com/orgball2608/insta-competitor-bot/internal/session"
	"github.com/orgball2608/insta-competitor-bot/internal/storage"
	"github.com/orgball2608/insta-competitor-bot/internal/telegram"
	"github.com/orgball2608/insta-competitor-bot/pkg/logger"
	"go.uber.org/fx"
)

const (
	msgPickProjectScraping = "Выберите проект для скрейпинга:"
	msgScrapingMenu        = "Скрейпинг проекта «%s». Что собираем?"
	msgScrapingStarted     = "⏳ Запускаю скрейпинг, это может занять несколько минут..."
	msgScrapingDone        = "✅ Скрейпинг завершён.\nИсточников: %d\nНайдено: %d\nСохранено: %d"
	msgScrapingFailures    = "\n⚠️ Не удалось обработать источников: %d"
	msgNothingToScrape     = "В проекте нет активных источников этого типа. Сначала добавьте их."
)

type ScrapingOpts struct {
	fx.In

	Storage  storage.Adapter
	Runner   *runner.Runner
	Telegram telegram.Client
	Logger   logger.Logger
}

// ScrapingScene triggers scraping runs for a project's competitors or
// hashtags. Runs execute synchronously within the transition; the
// conversation blocks until the run pipeline returns.
type ScrapingScene struct {
	storage storage.Adapter
	runner  *runner.Runner
	tg      telegram.Client
	logger  logger.Logger
}

func NewScrapingScene(opts ScrapingOpts) *ScrapingScene {
	return &ScrapingScene{
		storage: opts.Storage,
		runner:  opts.Runner,
		tg:      opts.Telegram,
		logger:  opts.Logger.WithComponent("ScrapingScene"),
	}
}

var _ Scene = (*ScrapingScene)(nil)

func (s *ScrapingScene) Name() string { return SceneScraping }

func (s *ScrapingScene) Enter(ctx context.Context, sess session.Session) (session.Session, error) {
	sess = sess.WithStep(session.StepNone)

	if sess.ProjectID != 0 {
		return s.showMenu(ctx, sess, sess.ProjectID)
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
		return s.showMenu(ctx, sess, projects[0].ID)
	default:
		s.tg.SendMessageWithKeyboard(sess.ChatID, msgPickProjectScraping,
			projectListKeyboard(projects, "project_"))
		return sess, nil
	}
}

func (s *ScrapingScene) HandleAction(ctx context.Context, sess session.Session, act Action) (session.Session, error) {
	switch act.Kind {
	case ActionSelectProject:
		return s.showMenu(ctx, sess, act.ProjectID)

	case ActionBackToScrapingMenu:
		if sess.ProjectID == 0 {
			return s.Enter(ctx, sess)
		}
		return s.showMenu(ctx, sess, sess.ProjectID)

	case ActionScrapeCompetitors:
		return s.runScrape(ctx, sess, act.ProjectID, s.runner.ScrapeCompetitors)

	case ActionScrapeHashtags:
		return s.runScrape(ctx, sess, act.ProjectID, s.runner.ScrapeHashtags)

	case ActionCreateProject, ActionBackToProjects:
		return switchTo(sess, SceneProjects, 0), nil

	default:
		s.tg.SendMessage(sess.ChatID, MsgBadAction)
		return sess, nil
	}
}

func (s *ScrapingScene) HandleText(ctx context.Context, sess session.Session, text string) (session.Session, error) {
	// The scraping scene has no text input.
	return sess, nil
}

func (s *ScrapingScene) runScrape(ctx context.Context, sess session.Session, projectID int64,
	scrape func(context.Context, int64) (runner.Summary, error)) (session.Session, error) {

	project, err := s.storage.GetProjectByID(ctx, projectID)
	if err != nil {
		return sess, fmt.Errorf("get project %d: %w", projectID, err)
	}
	if project == nil {
		s.tg.SendMessage(sess.ChatID, MsgProjectNotFound)
		return s.Enter(ctx, sess.WithProject(0))
	}

	s.tg.SendMessage(sess.ChatID, msgScrapingStarted)

	sum, err := scrape(ctx, projectID)
	if err != nil {
		return sess, fmt.Errorf("scrape project %d: %w", projectID, err)
	}

	if sum.Sources == 0 {
		s.tg.SendMessageWithKeyboard(sess.ChatID, msgNothingToScrape, scrapingResultKeyboard())
		return sess.WithProject(projectID), nil
	}

	text := fmt.Sprintf(msgScrapingDone, sum.Sources, sum.Found, sum.Added)
	if sum.Failed > 0 {
		text += fmt.Sprintf(msgScrapingFailures, sum.Failed)
	}
	s.tg.SendMessageWithKeyboard(sess.ChatID, text, scrapingResultKeyboard())
	return sess.WithProject(projectID), nil
}

func (s *ScrapingScene) showMenu(ctx context.Context, sess session.Session, projectID int64) (session.Session, error) {
	project, err := s.storage.GetProjectByID(ctx, projectID)
	if err != nil {
		return sess, fmt.Errorf("get project %d: %w", projectID, err)
	}
	if project == nil {
		s.tg.SendMessage(sess.ChatID, MsgProjectNotFound)
		return s.Enter(ctx, sess.WithProject(0))
	}

	s.tg.SendMessageWithKeyboard(sess.ChatID,
		fmt.Sprintf(msgScrapingMenu, project.Name), scrapingMenuKeyboard(projectID))
	return sess.WithProject(projectID), nil
}
