// Package pages отдает HTML-оболочки приложений: начальные SVG и
// клиент WebSocket, который подменяет их кадрами сервера.
package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"
	templruntime "github.com/a-h/templ/runtime"

	"github.com/rob3rtroessler/DataVisExerciseDashboards/models"
)

// Panel - начальная поверхность одного представления
type Panel struct {
	View  string
	Title string
	SVG   []byte
}

// PanelFromFrame оборачивает кадр представления
func PanelFromFrame(f models.Frame, title string) Panel {
	return Panel{View: f.View, Title: title, SVG: f.SVG}
}

// Dashboard - страница панели опроса
func Dashboard(panels []Panel) templ.Component {
	content := component(func(ctx context.Context, buf *templruntime.Buffer) error {
		if _, err := buf.WriteString(`<form id="selection"><label>С <input type="date" name="start"></label> <label>по <input type="date" name="end"></label> <button type="submit">Выбрать</button> <button type="button" id="clear">Сбросить</button></form>`); err != nil {
			return err
		}
		for _, p := range panels {
			if err := panel(p).Render(ctx, buf); err != nil {
				return err
			}
		}
		return nil
	})
	return page("Опрос MY World", "dashboard", dashboardScript, content)
}

// Matrix - страница матрицы семей
func Matrix(p Panel, keys []string) templ.Component {
	content := component(func(ctx context.Context, buf *templruntime.Buffer) error {
		if _, err := buf.WriteString(`<label>Сортировка <select id="sort">`); err != nil {
			return err
		}
		for _, k := range keys {
			key := templ.EscapeString(k)
			if _, err := buf.WriteString(`<option value="` + key + `">` + key + `</option>`); err != nil {
				return err
			}
		}
		if _, err := buf.WriteString(`</select></label>`); err != nil {
			return err
		}
		return panel(p).Render(ctx, buf)
	})
	return page("Флорентийские семьи", "matrix", matrixScript, content)
}

// page рендерит layout с content в качестве дочернего компонента
func page(title, app, script string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return layout(title, app, script).Render(templ.WithChildren(ctx, content), w)
	})
}

// layout - документ приложения app. Дочерний компонент выводится в body
// перед клиентским скриптом.
func layout(title, app, script string) templ.Component {
	return component(func(ctx context.Context, buf *templruntime.Buffer) error {
		children := templ.GetChildren(ctx)
		if children == nil {
			children = templ.NopComponent
		}
		ctx = templ.ClearChildren(ctx)

		escaped := templ.EscapeString(title)
		if _, err := buf.WriteString("<!DOCTYPE html>\n<html lang=\"ru\"><head><meta charset=\"utf-8\"><title>" + escaped +
			"</title><style>" + styles + "</style></head><body data-app=\"" + templ.EscapeString(app) + "\"><h1>" + escaped + "</h1>"); err != nil {
			return err
		}
		if err := children.Render(ctx, buf); err != nil {
			return err
		}
		_, err := buf.WriteString("<p id=\"status\"></p><script>\n" + clientScript + "\n" + script + "\n</script></body></html>\n")
		return err
	})
}

// panel - секция с начальной поверхностью представления
func panel(p Panel) templ.Component {
	return component(func(ctx context.Context, buf *templruntime.Buffer) error {
		if _, err := buf.WriteString(`<section><h2>` + templ.EscapeString(p.Title) + `</h2><div class="view" id="view-` + templ.EscapeString(p.View) + `">`); err != nil {
			return err
		}
		if err := templ.Raw(string(p.SVG)).Render(ctx, buf); err != nil {
			return err
		}
		_, err := buf.WriteString(`</div></section>`)
		return err
	})
}

// component пишет через буфер templ так же, как сгенерированные шаблоны
func component(render func(ctx context.Context, buf *templruntime.Buffer) error) templ.Component {
	return templruntime.GeneratedTemplate(func(in templruntime.GeneratedComponentInput) (err error) {
		if ctxErr := in.Context.Err(); ctxErr != nil {
			return ctxErr
		}
		buf, isBuffer := templruntime.GetBuffer(in.Writer)
		if !isBuffer {
			defer func() {
				if bufErr := templruntime.ReleaseBuffer(buf); err == nil {
					err = bufErr
				}
			}()
		}
		return render(templ.InitializeContext(in.Context), buf)
	})
}

const styles = `body{font-family:sans-serif;margin:2em}section{display:inline-block;vertical-align:top;margin:1em}#status{color:#a00}`

// clientScript подключается к /ws/{app} и подменяет содержимое
// представлений пришедшими кадрами
const clientScript = `const app = document.body.dataset.app;
const proto = location.protocol === "https:" ? "wss:" : "ws:";
const socket = new WebSocket(proto + "//" + location.host + "/ws/" + app);
const status = document.getElementById("status");
function send(cmd) {
  if (socket.readyState === WebSocket.OPEN) socket.send(JSON.stringify(cmd));
}
socket.onmessage = (event) => {
  const msg = JSON.parse(event.data);
  if (msg.type === "view") {
    const el = document.getElementById("view-" + msg.view);
    if (el) el.innerHTML = msg.svg;
    status.textContent = "";
  } else if (msg.type === "error") {
    status.textContent = msg.error;
  }
};
socket.onclose = () => { status.textContent = "Соединение закрыто"; };
setInterval(() => send({type: "ping"}), 30000);`

const dashboardScript = `document.getElementById("selection").addEventListener("submit", (event) => {
  event.preventDefault();
  const form = event.target;
  send({type: "select", start: form.start.value, end: form.end.value});
});
document.getElementById("clear").addEventListener("click", () => send({type: "clear"}));`

// Уход с любой ячейки возвращает матрицу в нейтральное состояние
const matrixScript = `const matrix = document.getElementById("view-matrix");
matrix.addEventListener("mouseover", (event) => {
  const cell = event.target.closest("path.matrix-cell");
  if (!cell) return;
  const row = cell.closest("g.matrix-row");
  const col = /matrix-col-(\d+)/.exec(cell.getAttribute("class"));
  if (!row || !col) return;
  send({type: "hover", row: Number(row.getAttribute("matrix-row-index")), col: Number(col[1])});
});
matrix.addEventListener("mouseout", (event) => {
  if (event.target.closest("path.matrix-cell")) send({type: "leave"});
});
document.getElementById("sort").addEventListener("change", (event) => send({type: "sort", key: event.target.value}));`
