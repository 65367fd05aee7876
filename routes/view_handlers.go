// routes/view_handlers.go
package routes

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"

	"github.com/rob3rtroessler/DataVisExerciseDashboards/dashboard"
	"github.com/rob3rtroessler/DataVisExerciseDashboards/models"
	"github.com/rob3rtroessler/DataVisExerciseDashboards/pages"
	"github.com/rob3rtroessler/DataVisExerciseDashboards/processor"
	"github.com/rob3rtroessler/DataVisExerciseDashboards/views"
	"github.com/rob3rtroessler/DataVisExerciseDashboards/websocket"
)

type handlers struct {
	shared  *dashboard.Shared
	manager *websocket.Manager
	cache   *processor.RenderCache
}

// HealthResponse - ответ /healthz
type HealthResponse struct {
	Status   string          `json:"status"`
	Days     int             `json:"days"`
	Families int             `json:"families"`
	Sessions int             `json:"sessions"`
	Cache    processor.Stats `json:"cache"`
}

var panelTitles = map[string]string{
	views.IDCount:    "Ответы по дням",
	views.IDAge:      "Возраст участников",
	views.IDPriority: "Приоритеты",
	views.IDMatrix:   "Браки и деловые связи",
}

// render отрисовывает представление через кэш
func (h *handlers) render(r *http.Request, id string, sel *models.SelectionRange, order string) ([]byte, error) {
	key := id + "|" + order
	if sel != nil {
		key += "|" + sel.String()
	}
	return h.cache.GetOrRender(key, func() ([]byte, error) {
		return h.shared.RenderView(r.Context(), id, sel, order)
	})
}

// renderView обрабатывает GET /api/views/{view}.svg?start&end&order
func (h *handlers) renderView(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["view"]
	query := r.URL.Query()

	var sel *models.SelectionRange
	start, end := query.Get("start"), query.Get("end")
	if start != "" || end != "" {
		if start == "" || end == "" {
			http.Error(w, "Параметры start и end задаются вместе", http.StatusBadRequest)
			return
		}
		parsed, err := models.ParseSelectionRange(start, end)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		sel = &parsed
	}

	order := query.Get("order")
	if id != views.IDMatrix {
		order = ""
	}

	data, err := h.render(r, id, sel, order)
	switch {
	case errors.Is(err, dashboard.ErrUnknownView):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case errors.Is(err, views.ErrUnknownSortKey):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		log.Printf("❌ Ошибка отрисовки %s: %v", id, err)
		http.Error(w, "Ошибка отрисовки", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(data)
}

// dashboardPage отдает страницу панели опроса
func (h *handlers) dashboardPage(w http.ResponseWriter, r *http.Request) {
	ids := []string{views.IDCount, views.IDAge, views.IDPriority}
	panels := make([]pages.Panel, 0, len(ids))
	for _, id := range ids {
		data, err := h.render(r, id, nil, "")
		if err != nil {
			log.Printf("❌ Ошибка отрисовки %s: %v", id, err)
			http.Error(w, "Ошибка отрисовки", http.StatusInternalServerError)
			return
		}
		panels = append(panels, pages.PanelFromFrame(models.Frame{View: id, SVG: data}, panelTitles[id]))
	}

	templ.Handler(pages.Dashboard(panels), templ.WithErrorHandler(pageError)).ServeHTTP(w, r)
}

// matrixPage отдает страницу матрицы семей
func (h *handlers) matrixPage(w http.ResponseWriter, r *http.Request) {
	data, err := h.render(r, views.IDMatrix, nil, "")
	if err != nil {
		log.Printf("❌ Ошибка отрисовки матрицы: %v", err)
		http.Error(w, "Ошибка отрисовки", http.StatusInternalServerError)
		return
	}

	panel := pages.PanelFromFrame(models.Frame{View: views.IDMatrix, SVG: data}, panelTitles[views.IDMatrix])
	templ.Handler(pages.Matrix(panel, models.SortKeys), templ.WithErrorHandler(pageError)).ServeHTTP(w, r)
}

func pageError(r *http.Request, err error) http.Handler {
	log.Printf("❌ Ошибка при формировании страницы %s: %v", r.URL.Path, err)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Ошибка при формировании страницы", http.StatusInternalServerError)
	})
}

// health сообщает состояние сервиса
func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:   "ok",
		Days:     h.shared.Dataset.Len(),
		Families: len(h.shared.Families.Attributes),
		Sessions: h.manager.Count(),
		Cache:    h.cache.Stats(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("❌ Ошибка при кодировании JSON: %v", err)
	}
}
