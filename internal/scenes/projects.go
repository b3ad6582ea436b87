package scenes

import (
	"context"
	"fmt"
	"strings"

	"github.com/orgball2608/insta-competitor-bot/internal/domain"
	"github.com/orgball2608/insta-competitor-bot/internal/session"
	"github.com/orgball2608/insta-competitor-bot/internal/storage"
	"github.com/orgball2608/insta-competitor-bot/internal/telegram"
	"github.com/orgball2608/insta-competitor-bot/pkg/logger"
	"go.uber.org/fx"
)

const (
	msgNoProjects       = "У вас нет проектов. Создайте первый, чтобы начать отслеживать конкурентов."
	msgProjectList      = "Ваши проекты:"
	msgEnterProjectName = "Введите название проекта (минимум 3 символа):"
	msgNameTooShort     = "Название проекта должно быть не короче 3 символов. Попробуйте ещё раз:"
	msgProjectCreated   = "✅ Проект «%s» создан."
)

type ProjectsOpts struct {
	fx.In

	Storage  storage.Adapter
	Telegram telegram.Client
	Logger   logger.Logger
}

// ProjectsScene manages the project workspace: listing, selection and
// creation. It is the only scene that registers a user on first contact.
type ProjectsScene struct {
	storage storage.Adapter
	tg      telegram.Client
	logger  logger.Logger
}

func NewProjectsScene(opts ProjectsOpts) *ProjectsScene {
	return &ProjectsScene{
		storage: opts.Storage,
		tg:      opts.Telegram,
		logger:  opts.Logger.WithComponent("ProjectsScene"),
	}
}

var _ Scene = (*ProjectsScene)(nil)

func (s *ProjectsScene) Name() string { return SceneProjects }

func (s *ProjectsScene) Enter(ctx context.Context, sess session.Session) (session.Session, error) {
	user, err := s.storage.FindOrCreateUser(ctx, sess.ChatID, domain.UserProfile{})
	if err != nil {
		return sess, fmt.Errorf("resolve user: %w", err)
	}

	projects, err := s.storage.GetProjectsByUserID(ctx, user.ID)
	if err != nil {
		return sess, fmt.Errorf("list projects: %w", err)
	}

	sess = sess.WithStep(session.StepNone).WithProject(0)

	if len(projects) == 0 {
		s.tg.SendMessageWithKeyboard(sess.ChatID, msgNoProjects, emptyProjectsKeyboard())
		return sess, nil
	}

	s.tg.SendMessageWithKeyboard(sess.ChatID, msgProjectList, projectListKeyboard(projects, "project_"))
	return sess, nil
}

func (s *ProjectsScene) HandleAction(ctx context.Context, sess session.Session, act Action) (session.Session, error) {
	switch act.Kind {
	case ActionCreateProject:
		s.tg.SendMessage(sess.ChatID, msgEnterProjectName)
		return sess.WithStep(session.StepCreateProject), nil

	case ActionSelectProject:
		project, err := s.storage.GetProjectByID(ctx, act.ProjectID)
		if err != nil {
			return sess, fmt.Errorf("get project %d: %w", act.ProjectID, err)
		}
		if project == nil {
			s.tg.SendMessage(sess.ChatID, MsgProjectNotFound)
			return s.Enter(ctx, sess)
		}

		text := fmt.Sprintf("Проект «%s». Что настраиваем?", project.Name)
		s.tg.SendMessageWithKeyboard(sess.ChatID, text, projectDetailKeyboard(project.ID))
		return sess.WithProject(project.ID), nil

	case ActionBackToProjects:
		return s.Enter(ctx, sess)

	case ActionCompetitorsProject:
		return switchTo(sess, SceneCompetitors, act.ProjectID), nil

	case ActionManageHashtags:
		return switchTo(sess, SceneHashtags, act.ProjectID), nil

	default:
		s.tg.SendMessage(sess.ChatID, MsgBadAction)
		return sess, nil
	}
}

func (s *ProjectsScene) HandleText(ctx context.Context, sess session.Session, text string) (session.Session, error) {
	if sess.Step != session.StepCreateProject {
		// Unsolicited text while browsing is ignored.
		return sess, nil
	}

	if !ValidProjectName(text) {
		s.tg.SendMessage(sess.ChatID, msgNameTooShort)
		return sess, nil
	}

	user, err := s.storage.GetUserByTelegramID(ctx, sess.ChatID)
	if err != nil {
		return sess, fmt.Errorf("resolve user: %w", err)
	}
	if user == nil {
		s.tg.SendMessage(sess.ChatID, MsgNotRegistered)
		return sess.Left(), nil
	}

	project, err := s.storage.CreateProject(ctx, user.ID, strings.TrimSpace(text))
	if err != nil {
		return sess, fmt.Errorf("create project: %w", err)
	}

	s.tg.SendMessage(sess.ChatID, fmt.Sprintf(msgProjectCreated, project.Name))
	return s.Enter(ctx, sess.WithStep(session.StepNone))
}
