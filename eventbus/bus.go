// Package eventbus реализует внутрипроцессную шину публикации/подписки,
// через которую соседние представления обмениваются состоянием выбора.
package eventbus

import (
	"sync"
)

// Handler получает полезную нагрузку события
type Handler func(payload interface{})

type subscription struct {
	id uint64
	fn Handler
}

// Bus - шина событий. Обработчики одного события вызываются синхронно
// в порядке подписки; порядок между разными событиями не гарантируется.
type Bus struct {
	mu       sync.Mutex
	nextID   uint64
	handlers map[string][]subscription
}

// New создает пустую шину
func New() *Bus {
	return &Bus{
		handlers: make(map[string][]subscription),
	}
}

// Subscribe регистрирует обработчик и возвращает функцию отписки.
// Повторный вызов функции отписки ничего не делает.
func (b *Bus) Subscribe(event string, fn Handler) (unsubscribe func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.handlers[event] = append(b.handlers[event], subscription{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(event, id) })
	}
}

func (b *Bus) remove(event string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[event]
	for i, s := range subs {
		if s.id == id {
			// Копируем, чтобы не испортить снимок, который сейчас рассылается
			next := make([]subscription, 0, len(subs)-1)
			next = append(next, subs[:i]...)
			next = append(next, subs[i+1:]...)
			if len(next) == 0 {
				delete(b.handlers, event)
			} else {
				b.handlers[event] = next
			}
			return
		}
	}
}

// Publish синхронно доставляет payload всем текущим подписчикам события
// и возвращает количество вызванных обработчиков.
// Список подписчиков фиксируется в момент публикации.
func (b *Bus) Publish(event string, payload interface{}) int {
	b.mu.Lock()
	subs := b.handlers[event]
	b.mu.Unlock()

	for _, s := range subs {
		s.fn(payload)
	}
	return len(subs)
}

// Subscribers возвращает количество подписчиков события
func (b *Bus) Subscribers(event string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers[event])
}

// SubscribeTyped подписывает обработчик, принимающий только нагрузку типа T.
// Нагрузка другого типа игнорируется.
func SubscribeTyped[T any](b *Bus, event string, fn func(T)) (unsubscribe func()) {
	return b.Subscribe(event, func(payload interface{}) {
		if v, ok := payload.(T); ok {
			fn(v)
		}
	})
}
