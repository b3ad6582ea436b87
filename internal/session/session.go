package session

import "sync"

// Step is the single definition of the conversational input step. A zero
// Step means the user is browsing and free text is ignored.
type Step int

const (
	StepNone Step = iota
	StepCreateProject
	StepAddCompetitor
	StepAddHashtag
)

func (s Step) String() string {
	switch s {
	case StepCreateProject:
		return "create_project"
	case StepAddCompetitor:
		return "add_competitor"
	case StepAddHashtag:
		return "add_hashtag"
	default:
		return "none"
	}
}

// Session is the per-conversation state threaded through scene transitions.
// Handlers receive the current value and return the next one; only the
// store mutates shared state.
type Session struct {
	ChatID    int64
	Scene     string
	Step      Step
	ProjectID int64
}

// InScene reports whether the session currently belongs to a scene.
func (s Session) InScene() bool { return s.Scene != "" }

// Left returns the session reset to its idle state.
func (s Session) Left() Session {
	return Session{ChatID: s.ChatID}
}

// WithStep returns the session with a new input step.
func (s Session) WithStep(step Step) Session {
	s.Step = step
	return s
}

// WithProject returns the session focused on a project.
func (s Session) WithProject(projectID int64) Session {
	s.ProjectID = projectID
	return s
}

// Store keeps one session per chat. Telegram delivers updates for one chat
// sequentially, but different chats interleave, hence the lock.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[int64]Session)}
}

func (st *Store) Get(chatID int64) Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	if s, ok := st.sessions[chatID]; ok {
		return s
	}
	return Session{ChatID: chatID}
}

func (st *Store) Put(s Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.ChatID] = s
}

func (st *Store) Reset(chatID int64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, chatID)
}
