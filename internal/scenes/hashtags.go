package scenes

import (
	"context"
	"fmt"

	"github.com/orgball2608/insta-competitor-bot/internal/session"
	"github.com/orgball2608/insta-competitor-bot/internal/storage"
	"github.com/orgball2608/insta-competitor-bot/internal/telegram"
	"github.com/orgball2608/insta-competitor-bot/pkg/logger"
	"go.uber.org/fx"
)

const (
	msgPickProjectHashtags = "Выберите проект, чтобы посмотреть хэштеги:"
	msgNoHashtags          = "В проекте «%s» пока нет хэштегов."
	msgHashtagList         = "Хэштеги проекта «%s»:"
	msgEnterHashtag        = "Отправьте хэштег (например, #fitness):"
	msgBadHashtag          = "Хэштег должен быть без пробелов и не короче 2 символов. Попробуйте ещё раз:"
	msgHashtagAdded        = "✅ Хэштег #%s добавлен."
	msgHashtagDeleted      = "Хэштег #%s удалён."
	msgHashtagNotFound     = "Хэштег #%s не найден."
)

type HashtagsOpts struct {
	fx.In

	Storage  storage.Adapter
	Telegram telegram.Client
	Logger   logger.Logger
}

type HashtagsScene struct {
	storage storage.Adapter
	tg      telegram.Client
	logger  logger.Logger
}

func NewHashtagsScene(opts HashtagsOpts) *HashtagsScene {
	return &HashtagsScene{
		storage: opts.Storage,
		tg:      opts.Telegram,
		logger:  opts.Logger.WithComponent("HashtagsScene"),
	}
}

var _ Scene = (*HashtagsScene)(nil)

func (s *HashtagsScene) Name() string { return SceneHashtags }

func (s *HashtagsScene) Enter(ctx context.Context, sess session.Session) (session.Session, error) {
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
		s.tg.SendMessageWithKeyboard(sess.ChatID, msgPickProjectHashtags,
			projectListKeyboard(projects, "manage_hashtags_"))
		return sess, nil
	}
}

func (s *HashtagsScene) HandleAction(ctx context.Context, sess session.Session, act Action) (session.Session, error) {
	switch act.Kind {
	case ActionManageHashtags:
		return s.showList(ctx, sess, act.ProjectID)

	case ActionAddHashtag:
		s.tg.SendMessageWithKeyboard(sess.ChatID, msgEnterHashtag, hashtagInputKeyboard(act.ProjectID))
		return sess.WithProject(act.ProjectID).WithStep(session.StepAddHashtag), nil

	case ActionCancelHashtagInput:
		return s.showList(ctx, sess.WithStep(session.StepNone), act.ProjectID)

	case ActionDeleteHashtag:
		removed, err := s.storage.RemoveHashtag(ctx, act.ProjectID, act.Hashtag)
		if err != nil {
			return sess, fmt.Errorf("remove hashtag: %w", err)
		}
		if removed {
			s.tg.SendMessage(sess.ChatID, fmt.Sprintf(msgHashtagDeleted, act.Hashtag))
		} else {
			s.tg.SendMessage(sess.ChatID, fmt.Sprintf(msgHashtagNotFound, act.Hashtag))
		}
		return s.showList(ctx, sess, act.ProjectID)

	case ActionCreateProject, ActionBackToProjects:
		return switchTo(sess, SceneProjects, 0), nil

	default:
		s.tg.SendMessage(sess.ChatID, MsgBadAction)
		return sess, nil
	}
}

func (s *HashtagsScene) HandleText(ctx context.Context, sess session.Session, text string) (session.Session, error) {
	if sess.Step != session.StepAddHashtag {
		return sess, nil
	}

	tag, ok := NormalizeHashtag(text)
	if !ok {
		s.tg.SendMessage(sess.ChatID, msgBadHashtag)
		return sess, nil
	}

	hashtag, err := s.storage.AddHashtag(ctx, sess.ProjectID, tag)
	if err != nil {
		return sess, fmt.Errorf("add hashtag: %w", err)
	}

	s.tg.SendMessage(sess.ChatID, fmt.Sprintf(msgHashtagAdded, hashtag.Tag))
	return s.showList(ctx, sess.WithStep(session.StepNone), sess.ProjectID)
}

func (s *HashtagsScene) showList(ctx context.Context, sess session.Session, projectID int64) (session.Session, error) {
	project, err := s.storage.GetProjectByID(ctx, projectID)
	if err != nil {
		return sess, fmt.Errorf("get project %d: %w", projectID, err)
	}
	if project == nil {
		s.tg.SendMessage(sess.ChatID, MsgProjectNotFound)
		return s.Enter(ctx, sess.WithProject(0))
	}

	hashtags, err := s.storage.GetHashtagsByProjectID(ctx, projectID)
	if err != nil {
		return sess, fmt.Errorf("list hashtags: %w", err)
	}

	text := fmt.Sprintf(msgHashtagList, project.Name)
	if len(hashtags) == 0 {
		text = fmt.Sprintf(msgNoHashtags, project.Name)
	}

	s.tg.SendMessageWithKeyboard(sess.ChatID, text, hashtagListKeyboard(projectID, hashtags))
	return sess.WithProject(projectID).WithStep(session.StepNone), nil
}
