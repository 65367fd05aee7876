// websocket/types.go
package websocket

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"

	"github.com/rob3rtroessler/DataVisExerciseDashboards/models"
	"github.com/rob3rtroessler/DataVisExerciseDashboards/utils"
)

// Session - экземпляр приложения одного подключения. Методы вызываются
// только из горутины чтения клиента.
type Session interface {
	Snapshot() []models.Frame
	Apply(cmd models.Command) ([]models.Frame, error)
	Close()
}

// SessionFactory создает сессию приложения
type SessionFactory func() (Session, error)

// Message - сообщение сервера клиенту
type Message struct {
	Type    string `json:"type"`
	View    string `json:"view,omitempty"`
	SVG     string `json:"svg,omitempty"`
	Error   string `json:"error,omitempty"`
	Session string `json:"session,omitempty"`
}

// Клиент WebSocket
type Client struct {
	ID     string
	App    string
	Socket *websocket.Conn
	Send   chan []byte

	session Session
	manager *Manager

	activityMu   sync.Mutex
	lastActivity time.Time
}

// Менеджер WebSocket-соединений
type Manager struct {
	Register   chan *Client
	Unregister chan *Client
	done       chan struct{}

	mu        sync.RWMutex
	clients   map[string]*Client
	factories map[string]SessionFactory

	idle      time.Duration
	sweep     time.Duration
	scheduler *gocron.Scheduler
	validate  *validator.Validate
	logger    *utils.Logger
}

// Конфигурация WebSocket-соединения
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 64 * 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Страницы отдает этот же сервис
	},
}
