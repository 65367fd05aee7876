// websocket/manager.go
package websocket

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/go-playground/validator/v10"

	"github.com/rob3rtroessler/DataVisExerciseDashboards/utils"
)

// NewManager создает менеджер сессий. idle - время простоя, после
// которого соединение закрывается, sweep - период проверки.
func NewManager(logger *utils.Logger, idle, sweep time.Duration) *Manager {
	return &Manager{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[string]*Client),
		factories:  make(map[string]SessionFactory),
		idle:       idle,
		sweep:      sweep,
		validate:   validator.New(),
		logger:     logger,
	}
}

// Handle регистрирует фабрику сессий приложения app
func (manager *Manager) Handle(app string, factory SessionFactory) {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	manager.factories[app] = factory
}

func (manager *Manager) factory(app string) (SessionFactory, bool) {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	f, ok := manager.factories[app]
	return f, ok
}

// Run обслуживает регистрацию клиентов и проверку простоя до отмены ctx
func (manager *Manager) Run(ctx context.Context) {
	manager.startSweeper()
	defer manager.stop()

	for {
		select {
		case client := <-manager.Register:
			manager.mu.Lock()
			manager.clients[client.ID] = client
			total := len(manager.clients)
			manager.mu.Unlock()
			manager.logger.Info("👤 Сессия %s (%s) подключилась, всего %d", client.ID, client.App, total)

		case client := <-manager.Unregister:
			manager.mu.Lock()
			_, ok := manager.clients[client.ID]
			if ok {
				delete(manager.clients, client.ID)
			}
			manager.mu.Unlock()

			if ok {
				close(client.Send)
				client.session.Close()
				manager.logger.Info("👤 Сессия %s отключилась", client.ID)
			}

		case <-ctx.Done():
			return
		}
	}
}

func (manager *Manager) startSweeper() {
	manager.scheduler = gocron.NewScheduler(time.UTC)
	_, err := manager.scheduler.Every(manager.sweep).Do(func() {
		manager.SweepIdle(time.Now())
	})
	if err != nil {
		manager.logger.Error("Ошибка при настройке проверки простоя: %v", err)
		return
	}
	manager.scheduler.StartAsync()
}

// stop останавливает проверку простоя и закрывает все соединения
func (manager *Manager) stop() {
	close(manager.done)
	if manager.scheduler != nil {
		manager.scheduler.Stop()
	}

	manager.mu.RLock()
	defer manager.mu.RUnlock()
	for _, client := range manager.clients {
		client.Socket.Close()
	}
	manager.logger.Info("Менеджер сессий остановлен")
}

// SweepIdle закрывает соединения, простаивающие дольше idle на момент now.
// Клиент снимается с регистрации своей горутиной чтения.
func (manager *Manager) SweepIdle(now time.Time) int {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	closed := 0
	for id, client := range manager.clients {
		if now.Sub(client.LastActivity()) <= manager.idle {
			continue
		}
		manager.logger.Info("⚠️ Сессия %s простаивает дольше %v, отключаем", id, manager.idle)
		client.Socket.Close()
		closed++
	}
	return closed
}

// Count возвращает количество подключенных сессий
func (manager *Manager) Count() int {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return len(manager.clients)
}
