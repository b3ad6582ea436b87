package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore(t *testing.T) {
	st := NewStore()

	t.Run("unknown chat gets an idle session", func(t *testing.T) {
		sess := st.Get(1)
		assert.Equal(t, int64(1), sess.ChatID)
		assert.False(t, sess.InScene())
		assert.Equal(t, StepNone, sess.Step)
	})

	t.Run("put and get round-trip", func(t *testing.T) {
		st.Put(Session{ChatID: 2, Scene: "projects", Step: StepCreateProject, ProjectID: 7})

		sess := st.Get(2)
		assert.Equal(t, "projects", sess.Scene)
		assert.Equal(t, StepCreateProject, sess.Step)
		assert.Equal(t, int64(7), sess.ProjectID)
	})

	t.Run("reset forgets the chat", func(t *testing.T) {
		st.Put(Session{ChatID: 3, Scene: "projects"})
		st.Reset(3)
		assert.False(t, st.Get(3).InScene())
	})
}

func TestSessionTransitions(t *testing.T) {
	sess := Session{ChatID: 5, Scene: "projects", Step: StepCreateProject, ProjectID: 9}

	left := sess.Left()
	assert.Equal(t, Session{ChatID: 5}, left)

	stepped := sess.WithStep(StepNone)
	assert.Equal(t, StepNone, stepped.Step)
	assert.Equal(t, StepCreateProject, sess.Step, "original value is untouched")

	focused := sess.WithProject(11)
	assert.Equal(t, int64(11), focused.ProjectID)
}
