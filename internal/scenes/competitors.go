package scenes

import (
	"context"
	"fmt"
	"strings"

	"github.com/orgball2608/insta-competitor-bot/internal/session"
	"github.com/orgball2608/insta-competitor-bot/internal/storage"
	"github.com/orgball2608/insta-competitor-bot/internal/telegram"
	"github.com/orgball2608/insta-competitor-bot/pkg/logger"
	"go.uber.org/fx"
)

const (
	msgPickProjectCompetitors = "Выберите проект, чтобы посмотреть конкурентов:"
	msgNoCompetitors          = "В проекте «%s» пока нет конкурентов."
	msgCompetitorList         = "Конкуренты проекта «%s»:"
	msgEnterCompetitorURL     = "Отправьте ссылку на Instagram-аккаунт конкурента:"
	msgBadCompetitorURL       = "Это не похоже на ссылку Instagram. Пример: https://www.instagram.com/username/"
	msgCompetitorAdded        = "✅ Конкурент @%s добавлен."
	msgCompetitorAddFailed    = "Не удалось добавить конкурента. Проверьте проект и попробуйте ещё раз."
	msgCompetitorDeleted      = "Конкурент @%s удалён."
	msgCompetitorNotFound     = "Конкурент @%s не найден."
)

type CompetitorsOpts struct {
	fx.In

	Storage  storage.Adapter
	Telegram telegram.Client
	Logger   logger.Logger
}

type CompetitorsScene struct {
	storage storage.Adapter
	tg      telegram.Client
	logger  logger.Logger
}

func NewCompetitorsScene(opts CompetitorsOpts) *CompetitorsScene {
	return &CompetitorsScene{
		storage: opts.Storage,
		tg:      opts.Telegram,
		logger:  opts.Logger.WithComponent("CompetitorsScene"),
	}
}

var _ Scene = (*CompetitorsScene)(nil)

func (s *CompetitorsScene) Name() string { return SceneCompetitors }

// Enter requires a registered user. With a project already in focus it goes
// straight to the competitor list; otherwise it branches on how many
// projects the user has.
func (s *CompetitorsScene) Enter(ctx context.Context, sess session.Session) (session.Session, error) {
	sess = sess.WithStep(session.StepNone)

	if sess.ProjectID != 0 {
		return s.showList(ctx, sess, sess.ProjectID)
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
		return s.showList(ctx, sess, projects[0].ID)
	default:
		s.tg.SendMessageWithKeyboard(sess.ChatID, msgPickProjectCompetitors,
			projectListKeyboard(projects, "competitors_project_"))
		return sess, nil
	}
}

func (s *CompetitorsScene) HandleAction(ctx context.Context, sess session.Session, act Action) (session.Session, error) {
	switch act.Kind {
	case ActionCompetitorsProject:
		return s.showList(ctx, sess, act.ProjectID)

	case ActionAddCompetitor:
		s.tg.SendMessage(sess.ChatID, msgEnterCompetitorURL)
		return sess.WithProject(act.ProjectID).WithStep(session.StepAddCompetitor), nil

	case ActionDeleteCompetitor:
		deleted, err := s.storage.DeleteCompetitorAccount(ctx, act.ProjectID, act.Username)
		if err != nil {
			return sess, fmt.Errorf("delete competitor: %w", err)
		}
		if deleted {
			s.tg.SendMessage(sess.ChatID, fmt.Sprintf(msgCompetitorDeleted, act.Username))
		} else {
			s.tg.SendMessage(sess.ChatID, fmt.Sprintf(msgCompetitorNotFound, act.Username))
		}
		return s.showList(ctx, sess, act.ProjectID)

	case ActionCreateProject:
		return switchTo(sess, SceneProjects, 0), nil

	case ActionBackToProjects:
		return switchTo(sess, SceneProjects, 0), nil

	default:
		s.tg.SendMessage(sess.ChatID, MsgBadAction)
		return sess, nil
	}
}

func (s *CompetitorsScene) HandleText(ctx context.Context, sess session.Session, text string) (session.Session, error) {
	if sess.Step != session.StepAddCompetitor {
		return sess, nil
	}

	username, ok := ParseInstagramURL(text)
	if !ok {
		s.tg.SendMessage(sess.ChatID, msgBadCompetitorURL)
		return sess, nil
	}

	profileURL := strings.TrimSpace(text)
	competitor, err := s.storage.AddCompetitorAccount(ctx, sess.ProjectID, username, profileURL)
	if err != nil {
		return sess, fmt.Errorf("add competitor: %w", err)
	}
	if competitor == nil {
		// Insert refused without an error, e.g. the project disappeared.
		s.tg.SendMessage(sess.ChatID, msgCompetitorAddFailed)
		return s.showList(ctx, sess.WithStep(session.StepNone), sess.ProjectID)
	}

	s.tg.SendMessage(sess.ChatID, fmt.Sprintf(msgCompetitorAdded, competitor.Username))
	return s.showList(ctx, sess.WithStep(session.StepNone), sess.ProjectID)
}

func (s *CompetitorsScene) showList(ctx context.Context, sess session.Session, projectID int64) (session.Session, error) {
	project, err := s.storage.GetProjectByID(ctx, projectID)
	if err != nil {
		return sess, fmt.Errorf("get project %d: %w", projectID, err)
	}
	if project == nil {
		s.tg.SendMessage(sess.ChatID, MsgProjectNotFound)
		return s.Enter(ctx, sess.WithProject(0))
	}

	competitors, err := s.storage.GetCompetitorAccounts(ctx, projectID, true)
	if err != nil {
		return sess, fmt.Errorf("list competitors: %w", err)
	}

	text := fmt.Sprintf(msgCompetitorList, project.Name)
	if len(competitors) == 0 {
		text = fmt.Sprintf(msgNoCompetitors, project.Name)
	}

	s.tg.SendMessageWithKeyboard(sess.ChatID, text, competitorListKeyboard(projectID, competitors))
	return sess.WithProject(projectID).WithStep(session.StepNone), nil
}
