package cart

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultIdleTTL сколько корзина без записей живет в памяти, если TTL не задан
const DefaultIdleTTL = 30 * time.Minute

// Hook вызывается один раз для каждой новой корзины сессии,
// обычно чтобы подписать на нее внешних наблюдателей
type Hook func(sessionID string, store *Store)

type session struct {
	mu    sync.Mutex
	store *Store
	// dirty под mu: корзина читала или писала хранилище во время Do
	dirty bool

	// поля ниже под Registry.mu
	refs   int
	synced time.Time
}

// Registry хранит по одной корзине на сессию браузера.
// Корзина, которая не обращалась к хранилищу дольше idleTTL, выбрасывается из памяти
// и при следующем обращении заново читается из хранилища
type Registry struct {
	Logger *zap.SugaredLogger
	// Now подменяется в тестах
	Now func() time.Time

	storage   Storage
	prefix    string
	idleTTL   time.Duration
	hooks     []Hook
	mu        sync.Mutex
	sessions  map[string]*session
	lastSweep time.Time
}

// NewRegistry idleTTL <= 0 заменяется на DefaultIdleTTL.
// idleTTL не должен превышать срок жизни снимков в хранилище,
// иначе корзина в памяти переживет свой снимок
func NewRegistry(
	storage Storage,
	prefix string,
	idleTTL time.Duration,
	logger *zap.SugaredLogger,
	hooks ...Hook,
) *Registry {
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}

	return &Registry{
		Logger:   logger,
		Now:      time.Now,
		storage:  storage,
		prefix:   prefix,
		idleTTL:  idleTTL,
		hooks:    hooks,
		sessions: make(map[string]*session),
	}
}

// Key ключ хранилища для корзины сессии
func (r *Registry) Key(sessionID string) string {
	return r.prefix + sessionID
}

// Do выполняет fn с эксклюзивным доступом к корзине сессии.
// Корзина создается (и восстанавливается из хранилища) при первом обращении
func (r *Registry) Do(sessionID string, fn func(store *Store)) {
	sess := r.acquire(sessionID)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	defer r.release(sess)

	if sess.store == nil {
		sess.store = NewStore(r.storage, r.Key(sessionID), r.Logger.With("session_id", sessionID))
		sess.dirty = true
		sess.store.Subscribe(func(change Change) {
			// флаг скидки не сохраняется
			if change.Op != OpDiscount {
				sess.dirty = true
			}
		})
		for _, hook := range r.hooks {
			hook(sessionID, sess.store)
		}
	}

	fn(sess.store)
}

// Forget выкидывает корзину сессии из памяти, снимок в хранилище остается.
// Корзину, которая сейчас в работе, не трогает
func (r *Registry) Forget(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sess, ok := r.sessions[sessionID]; ok && sess.refs == 0 {
		delete(r.sessions, sessionID)
	}
}

// Sweep выбрасывает простаивающие корзины, возвращает сколько выброшено.
// Do вызывает его сам не чаще раза в idleTTL
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.sweepLocked(r.Now())
}

// Len количество корзин в памяти
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.sessions)
}

func (r *Registry) acquire(sessionID string) *session {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.Now()
	if now.Sub(r.lastSweep) >= r.idleTTL {
		if n := r.sweepLocked(now); n > 0 {
			r.Logger.Debugw("dropped idle carts", "count", n)
		}
		r.lastSweep = now
	}

	sess, ok := r.sessions[sessionID]
	if !ok || r.idle(sess, now) {
		sess = &session{synced: now}
		r.sessions[sessionID] = sess
	}
	sess.refs++

	return sess
}

// release вызывается под sess.mu
func (r *Registry) release(sess *session) {
	touched := sess.dirty
	sess.dirty = false

	r.mu.Lock()
	defer r.mu.Unlock()

	sess.refs--
	if touched {
		sess.synced = r.Now()
	}
}

func (r *Registry) sweepLocked(now time.Time) int {
	dropped := 0
	for id, sess := range r.sessions {
		if r.idle(sess, now) {
			delete(r.sessions, id)
			dropped++
		}
	}

	return dropped
}

func (r *Registry) idle(sess *session, now time.Time) bool {
	return sess.refs == 0 && now.Sub(sess.synced) > r.idleTTL
}
