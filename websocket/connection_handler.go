// websocket/connection_handler.go
package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/rob3rtroessler/DataVisExerciseDashboards/models"
)

// HandleConnections создает сессию приложения из URL и отправляет клиенту
// ее начальные поверхности
func (manager *Manager) HandleConnections(w http.ResponseWriter, r *http.Request) {
	app := mux.Vars(r)["app"]
	factory, ok := manager.factory(app)
	if !ok {
		log.Printf("Запрос WebSocket для неизвестного приложения %q", app)
		http.Error(w, "Неизвестное приложение", http.StatusNotFound)
		return
	}

	session, err := factory()
	if err != nil {
		manager.logger.Error("Не удалось создать сессию %s: %v", app, err)
		http.Error(w, "Не удалось создать сессию", http.StatusInternalServerError)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Ошибка при установке WebSocket-соединения:", err)
		session.Close()
		return
	}

	client := &Client{
		ID:           uuid.NewString(),
		App:          app,
		Socket:       conn,
		Send:         make(chan []byte, sendBuffer),
		session:      session,
		manager:      manager,
		lastActivity: time.Now(),
	}

	select {
	case manager.Register <- client:
	case <-manager.done:
		conn.Close()
		session.Close()
		return
	}
	log.Printf("✅ Сессия %s (%s) с адреса %s", client.ID, app, r.RemoteAddr)

	client.enqueue(Message{Type: MessageSession, Session: client.ID})
	client.sendFrames(session.Snapshot())

	go client.writePump()
	go client.readPump()
}

// LastActivity возвращает время последней команды клиента
func (c *Client) LastActivity() time.Time {
	c.activityMu.Lock()
	defer c.activityMu.Unlock()
	return c.lastActivity
}

func (c *Client) touch() {
	c.activityMu.Lock()
	c.lastActivity = time.Now()
	c.activityMu.Unlock()
}

// enqueue ставит сообщение в очередь отправки. Если очередь заполнена,
// клиент не успевает читать и соединение закрывается.
func (c *Client) enqueue(msg Message) bool {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Ошибка кодирования сообщения для сессии %s: %v", c.ID, err)
		return false
	}
	select {
	case c.Send <- data:
		return true
	default:
		log.Printf("⚠️ Очередь сессии %s переполнена, отключаем", c.ID)
		c.Socket.Close()
		return false
	}
}

func (c *Client) sendFrames(frames []models.Frame) bool {
	for _, f := range frames {
		if !c.enqueue(Message{Type: MessageView, View: f.View, SVG: string(f.SVG)}) {
			return false
		}
	}
	return true
}
