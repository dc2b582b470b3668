package builder

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-formbuilder/pkg/editor"
	"github.com/goliatone/go-formbuilder/pkg/workspace"
)

// session owns one workspace. mu serialises every event against it.
type session struct {
	id        string
	mu        sync.Mutex
	workspace *workspace.Workspace
	live      *hub
	lastSeen  time.Time
}

type sessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*session
	opts     Options
}

func newSessionStore(opts Options) *sessionStore {
	return &sessionStore{
		sessions: make(map[string]*session),
		opts:     opts,
	}
}

// resolve returns the caller's session, creating one (and setting the cookie)
// when the request carries no usable id.
func (s *sessionStore) resolve(w http.ResponseWriter, r *http.Request) *session {
	if cookie, err := r.Cookie(s.opts.CookieName); err == nil {
		if id, err := uuid.Parse(cookie.Value); err == nil {
			if sess, ok := s.touch(id.String()); ok {
				return sess
			}
		}
	}

	sess := s.create()
	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    sess.id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

func (s *sessionStore) touch(id string) (*session, bool) {
	now := s.opts.Clock()

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	if s.expired(sess, now) {
		s.drop(id)
		return nil, false
	}
	sess.lastSeen = now
	return sess, true
}

func (s *sessionStore) create() *session {
	now := s.opts.Clock()
	id := uuid.NewString()
	logger := s.opts.Logger.With().Str("session", id).Logger()

	sess := &session{
		id:       id,
		live:     newHub(),
		lastSeen: now,
		workspace: workspace.New(
			workspace.WithDefaultName(s.opts.DefaultName),
			workspace.WithLogger(logger),
			workspace.WithEditorOptions(
				editor.WithSchema(s.opts.Seed),
				editor.WithClock(s.opts.Clock),
			),
		),
	}
	sess.workspace.OnChange(sess.publishSnapshot)

	s.mu.Lock()
	defer s.mu.Unlock()
	for key, existing := range s.sessions {
		if s.expired(existing, now) {
			s.drop(key)
		}
	}
	s.sessions[id] = sess
	logger.Debug().Msg("builder: session created")
	return sess
}

// Len reports the number of live sessions.
func (s *sessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *sessionStore) expired(sess *session, now time.Time) bool {
	return s.opts.SessionTTL > 0 && now.Sub(sess.lastSeen) > s.opts.SessionTTL
}

// drop must be called with mu held.
func (s *sessionStore) drop(id string) {
	if sess, ok := s.sessions[id]; ok {
		sess.live.close()
		delete(s.sessions, id)
		s.opts.Logger.Debug().Str("session", id).Msg("builder: session expired")
	}
}
