package cart

import (
	"encoding/json"
	"errors"

	myErr "studenthub/internal/types/errors"

	"go.uber.org/zap"
)

// Store корзина одной сессии браузера.
// Не потокобезопасна: конкурентный доступ сериализует Registry
type Store struct {
	Logger *zap.SugaredLogger

	storage     Storage
	key         string
	items       []CartItem
	apply       bool
	degraded    bool
	subscribers map[int]Subscriber
	nextSubID   int
}

// NewStore создает корзину и восстанавливает позиции из хранилища по ключу key.
// Битый или отсутствующий снимок означает пустую корзину
func NewStore(storage Storage, key string, logger *zap.SugaredLogger) *Store {
	s := &Store{
		Logger:      logger,
		storage:     storage,
		key:         key,
		items:       []CartItem{},
		subscribers: make(map[int]Subscriber),
	}
	s.load()

	return s
}

func (s *Store) load() {
	raw, err := s.storage.Get(s.key)
	if err != nil {
		if !errors.Is(err, myErr.ErrNotFound) {
			s.Logger.Warnw("failed to read cart snapshot, starting empty", "key", s.key, "err", err)
		}
		return
	}

	var saved []CartItem
	if err := json.Unmarshal(raw, &saved); err != nil {
		s.Logger.Warnw("malformed cart snapshot, starting empty", "key", s.key, "err", err)
		return
	}

	for _, item := range saved {
		if item.Price < 0 || s.indexOf(item.ID) >= 0 {
			s.Logger.Warnw("dropping invalid item from cart snapshot", "key", s.key, "id", item.ID)
			continue
		}
		s.items = append(s.items, item)
	}
}

// AddItem добавляет позицию в конец, если позиции с таким ID еще нет
func (s *Store) AddItem(item CartItem) {
	if item.Price < 0 {
		s.Logger.Warnw("ignoring cart item with negative price", "id", item.ID, "price", item.Price)
		return
	}
	if s.indexOf(item.ID) >= 0 {
		return
	}

	s.items = append(s.items, item)
	s.persist()
	s.notify(OpAdd, item.ID)
}

// RemoveItem удаляет позицию по ID; отсутствующий ID ничего не меняет
func (s *Store) RemoveItem(id string) {
	idx := s.indexOf(id)
	if idx < 0 {
		return
	}

	s.items = append(s.items[:idx:idx], s.items[idx+1:]...)
	s.persist()
	s.notify(OpRemove, id)
}

func (s *Store) Clear() {
	s.items = []CartItem{}
	s.persist()
	s.notify(OpClear, "")
}

// SetApplyDiscount флаг скидки живет только в памяти сессии и не сохраняется
func (s *Store) SetApplyDiscount(apply bool) {
	if s.apply == apply {
		return
	}

	s.apply = apply
	s.notify(OpDiscount, "")
}

func (s *Store) Summary() Summary {
	return summarize(s.items, s.apply)
}

func (s *Store) Subscribe(sub Subscriber) func() {
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = sub

	return func() {
		delete(s.subscribers, id)
	}
}

// Degraded true, если последняя запись в хранилище не удалась
// и корзина сейчас существует только в памяти
func (s *Store) Degraded() bool {
	return s.degraded
}

func (s *Store) indexOf(id string) int {
	for i, item := range s.items {
		if item.ID == id {
			return i
		}
	}

	return -1
}

func (s *Store) persist() {
	raw, err := json.Marshal(s.items)
	if err == nil {
		err = s.storage.Set(s.key, raw)
	}
	if err != nil {
		if !s.degraded {
			s.Logger.Errorw("failed to persist cart, keeping it in memory", "key", s.key, "err", err)
		}
		s.degraded = true
		return
	}

	if s.degraded {
		s.Logger.Infow("cart persistence recovered", "key", s.key)
	}
	s.degraded = false
}

func (s *Store) notify(op Op, itemID string) {
	if len(s.subscribers) == 0 {
		return
	}

	change := Change{
		Op:      op,
		ItemID:  itemID,
		Summary: s.Summary(),
	}
	for _, id := range s.subscriberIDs() {
		// подписчик мог отписаться во время рассылки
		if sub, ok := s.subscribers[id]; ok {
			s.deliver(sub, change)
		}
	}
}

func (s *Store) deliver(sub Subscriber, change Change) {
	defer func() {
		if r := recover(); r != nil {
			s.Logger.Errorw("cart subscriber panicked", "op", change.Op, "panic", r)
		}
	}()

	sub(change)
}

// subscriberIDs порядок подписки, чтобы уведомления были детерминированы
func (s *Store) subscriberIDs() []int {
	ids := make([]int, 0, len(s.subscribers))
	for id := 0; id < s.nextSubID; id++ {
		if _, ok := s.subscribers[id]; ok {
			ids = append(ids, id)
		}
	}

	return ids
}
