// routes/api_routes.go
package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rob3rtroessler/DataVisExerciseDashboards/dashboard"
	"github.com/rob3rtroessler/DataVisExerciseDashboards/observability"
	"github.com/rob3rtroessler/DataVisExerciseDashboards/processor"
	"github.com/rob3rtroessler/DataVisExerciseDashboards/utils"
	"github.com/rob3rtroessler/DataVisExerciseDashboards/websocket"
)

// Имена приложений в пути /ws/{app}
const (
	AppDashboard = "dashboard"
	AppMatrix    = "matrix"
)

// SetupRoutes настраивает страницы, отрисовку SVG и WebSocket
func SetupRoutes(router *mux.Router, shared *dashboard.Shared, wsManager *websocket.Manager, cache *processor.RenderCache, logger *utils.Logger) {
	RegisterApps(wsManager, shared)

	router.Use(CORSMiddleware)
	router.Use(observability.Middleware(logger))

	h := &handlers{shared: shared, manager: wsManager, cache: cache}

	// Страницы
	router.HandleFunc("/", h.dashboardPage).Methods("GET")
	router.HandleFunc("/matrix", h.matrixPage).Methods("GET")

	// Отрисовка без сессии
	router.HandleFunc("/api/views/{view}.svg", h.renderView).Methods("GET", "OPTIONS")

	router.HandleFunc("/healthz", h.health).Methods("GET")

	// WebSocket соединения
	router.HandleFunc("/ws/{app}", wsManager.HandleConnections)
}

// RegisterApps регистрирует фабрики сессий обоих приложений
func RegisterApps(wsManager *websocket.Manager, shared *dashboard.Shared) {
	wsManager.Handle(AppDashboard, func() (websocket.Session, error) {
		d := shared.NewDashboard()
		if err := d.Build(); err != nil {
			d.Close()
			return nil, err
		}
		return d, nil
	})
	wsManager.Handle(AppMatrix, func() (websocket.Session, error) {
		app, err := shared.NewMatrixApp()
		if err != nil {
			return nil, err
		}
		return app, nil
	})
}

// CORSMiddleware разрешает запросы к API с других адресов
func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
