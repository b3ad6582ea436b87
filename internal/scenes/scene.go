package scenes

import (
	"context"

	"github.com/orgball2608/insta-competitor-bot/internal/session"
	"github.com/orgball2608/insta-competitor-bot/internal/telegram"
	"github.com/orgball2608/insta-competitor-bot/pkg/logger"
)

// User-facing texts shared across scenes.
const (
	MsgTechnicalError  = "Произошла техническая ошибка. Попробуйте позже."
	MsgNotRegistered   = "Сначала зарегистрируйтесь: отправьте /projects, чтобы создать профиль."
	MsgSceneLeft       = "Вы вышли из меню."
	MsgProjectNotFound = "Проект не найден."
	MsgBadAction       = "Некорректное действие."
	MsgSectionStub     = "Раздел в разработке."
)

const (
	SceneProjects    = "projects"
	SceneCompetitors = "competitors"
	SceneHashtags    = "hashtags"
	SceneScraping    = "scraping"
	SceneReels       = "reels"
)

// Scene is one conversational topic. Handlers take the current session
// value and return the next one; a returned session with a different Scene
// name asks the manager to enter that scene, and an empty Scene name means
// the topic is finished.
type Scene interface {
	Name() string
	Enter(ctx context.Context, sess session.Session) (session.Session, error)
	HandleAction(ctx context.Context, sess session.Session, act Action) (session.Session, error)
	HandleText(ctx context.Context, sess session.Session, text string) (session.Session, error)
}

// Manager routes updates into the active scene and is the outermost error
// boundary: storage failures never propagate past it, the user always gets
// a generic message and a usable session.
type Manager struct {
	scenes map[string]Scene
	store  *session.Store
	tg     telegram.Client
	logger logger.Logger
}

func NewManager(store *session.Store, tg telegram.Client, log logger.Logger, scenes ...Scene) *Manager {
	m := &Manager{
		scenes: make(map[string]Scene, len(scenes)),
		store:  store,
		tg:     tg,
		logger: log.WithComponent("SceneManager"),
	}
	for _, s := range scenes {
		m.scenes[s.Name()] = s
	}
	return m
}

// Enter activates a scene for a chat, resetting any step left over from an
// abandoned flow.
func (m *Manager) Enter(ctx context.Context, name string, chatID int64) {
	scene, ok := m.scenes[name]
	if !ok {
		m.logger.Error("Unknown scene requested", "scene", name)
		return
	}

	sess := m.store.Get(chatID)
	sess.Scene = name
	sess.Step = session.StepNone
	sess.ProjectID = 0

	next, err := scene.Enter(ctx, sess)
	if err != nil {
		// Entry-time failures leave the scene entirely.
		m.logger.Error("Scene entry failed", "scene", name, "chat_id", chatID, "error", err)
		m.tg.SendMessage(chatID, MsgTechnicalError)
		m.store.Reset(chatID)
		return
	}

	m.commit(ctx, chatID, sess, next)
}

// HandleCallback parses a callback payload and dispatches it to the active
// scene. The callback query is always answered so the client stops showing
// a spinner.
func (m *Manager) HandleCallback(ctx context.Context, chatID int64, callbackID, payload string) {
	act, err := ParseAction(payload)
	if err != nil {
		m.logger.Warn("Rejected callback payload", "chat_id", chatID, "payload", payload, "error", err)
		m.tg.AnswerCallback(callbackID, MsgBadAction)
		return
	}
	m.tg.AnswerCallback(callbackID, "")

	if act.Kind == ActionExitScene {
		m.store.Reset(chatID)
		m.tg.SendMessage(chatID, MsgSceneLeft)
		return
	}

	sess := m.store.Get(chatID)
	if !sess.InScene() {
		// Stale button from a finished conversation.
		return
	}
	scene := m.scenes[sess.Scene]
	if scene == nil {
		m.store.Reset(chatID)
		return
	}

	next, err := scene.HandleAction(ctx, sess, act)
	if err != nil {
		m.containMidFlow(chatID, sess, err)
		return
	}

	m.commit(ctx, chatID, sess, next)
}

// HandleText feeds free text into the active scene. Text arriving while no
// step is set is deliberately ignored.
func (m *Manager) HandleText(ctx context.Context, chatID int64, text string) {
	sess := m.store.Get(chatID)
	if !sess.InScene() || sess.Step == session.StepNone {
		return
	}
	scene := m.scenes[sess.Scene]
	if scene == nil {
		m.store.Reset(chatID)
		return
	}

	next, err := scene.HandleText(ctx, sess, text)
	if err != nil {
		m.containMidFlow(chatID, sess, err)
		return
	}

	m.commit(ctx, chatID, sess, next)
}

// commit persists the next session; if the scene asked to move to another
// topic, the target scene's entry transition runs.
func (m *Manager) commit(ctx context.Context, chatID int64, prev, next session.Session) {
	if next.Scene != "" && next.Scene != prev.Scene {
		target, ok := m.scenes[next.Scene]
		if !ok {
			m.logger.Error("Scene requested unknown transition", "from", prev.Scene, "to", next.Scene)
			m.store.Reset(chatID)
			return
		}

		entered, err := target.Enter(ctx, next)
		if err != nil {
			m.logger.Error("Scene entry failed", "scene", next.Scene, "chat_id", chatID, "error", err)
			m.tg.SendMessage(chatID, MsgTechnicalError)
			m.store.Reset(chatID)
			return
		}
		m.store.Put(entered)
		return
	}

	m.store.Put(next)
}

// switchTo builds the session a scene returns when handing the
// conversation over to another topic with a project preselected.
func switchTo(sess session.Session, scene string, projectID int64) session.Session {
	next := sess.Left()
	next.Scene = scene
	next.ProjectID = projectID
	return next
}

// containMidFlow implements the mid-flow failure policy: log, tell the user
// generically, reset the step but stay in the scene.
func (m *Manager) containMidFlow(chatID int64, sess session.Session, err error) {
	m.logger.Error("Scene transition failed", "scene", sess.Scene, "chat_id", chatID, "error", err)
	m.tg.SendMessage(chatID, MsgTechnicalError)
	m.store.Put(sess.WithStep(session.StepNone))
}
