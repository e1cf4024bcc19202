package app

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"
)

//go:embed templates
var templateFiles embed.FS

// renderer implements [echo.Renderer] over the embedded page templates. Each
// page is parsed together with the shared layout, so page names map directly
// to files under templates/pages.
type renderer struct {
	pages map[string]*template.Template
}

func newRenderer() (*renderer, error) {
	entries, err := fs.ReadDir(templateFiles, "templates/pages")
	if err != nil {
		return nil, fmt.Errorf("failed to read page templates: %w", err)
	}

	funcs := template.FuncMap{
		"monthLabel": monthLabel,
		"goalLabel":  goalLabel,
	}

	pages := make(map[string]*template.Template, len(entries))
	for _, entry := range entries {
		name := strings.TrimSuffix(entry.Name(), ".html")
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(
			templateFiles,
			"templates/layout.html",
			"templates/pages/"+entry.Name(),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %q: %w", entry.Name(), err)
		}
		pages[name] = tmpl
	}
	return &renderer{pages: pages}, nil
}

var renderBufferPool = sync.Pool{
	New: func() any {
		return &bytes.Buffer{}
	},
}

// Render satisfies [echo.Renderer]. The page renders into a pooled buffer
// first so a template error never leaves a half-written response.
func (r *renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page template %q", name)
	}

	buf := renderBufferPool.Get().(*bytes.Buffer) //nolint:forcetypeassert // guaranteed by impl
	defer renderBufferPool.Put(buf)
	buf.Reset()

	if err := tmpl.ExecuteTemplate(buf, "layout.html", data); err != nil {
		return fmt.Errorf("failed to render page %q: %w", name, err)
	}
	_, err := io.Copy(w, buf)
	return err
}

// monthLabel turns a yyyy-mm aggregation key into a display label.
func monthLabel(month string) string {
	names := [...]string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	}
	year, m, ok := strings.Cut(month, "-")
	if !ok || len(m) != 2 {
		return month
	}
	idx := int(m[0]-'0')*10 + int(m[1]-'0')
	if idx < 1 || idx > 12 {
		return month
	}
	return names[idx-1] + " " + year
}

// goalLabel turns a snake_case goal type into a display label.
func goalLabel(goalType string) string {
	words := strings.Split(goalType, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
