// Package views renders the storefront's HTML pages from embedded templates.
package views

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/cakebakery/backend/internal/models"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

// PageData is passed to every page. Data carries the page-specific payload.
type PageData struct {
	Title           string
	Flashes         []string
	Username        string
	IsAuthenticated bool
	IsAdmin         bool
	CartCount       int
	Data            any
}

// Renderer executes a page template inside the shared layout
type Renderer struct {
	pages map[string]*template.Template
}

// New parses the layout and every page template
func New() (*Renderer, error) {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, file := range files {
		if file == layoutFile {
			continue
		}
		name := strings.TrimSuffix(path.Base(file), ".html")
		tmpl, err := template.New("layout.html").Funcs(funcMap()).ParseFS(templateFS, layoutFile, file)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}

	return r, nil
}

// Has reports whether a page with the given name exists
func (r *Renderer) Has(page string) bool {
	_, ok := r.pages[page]
	return ok
}

// Render executes the named page into w.
// Output is buffered so a template error never leaves a half-written page.
func (r *Renderer) Render(w io.Writer, page string, data *PageData) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("failed to render %s: %w", page, err)
	}

	_, err := buf.WriteTo(w)
	return err
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"formatPrice":    formatPrice,
		"formatDateTime": formatDateTime,
		"toJSON":         toJSON,
		"orderStatuses":  func() []models.OrderStatus { return models.OrderStatuses },
		"roles":          func() []models.Role { return []models.Role{models.RoleUser, models.RoleAdmin} },
		"add":            func(a, b int) int { return a + b },
	}
}

func formatPrice(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}

// toJSON embeds a value in a <script> block for the charts
func toJSON(v any) (template.JS, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil
}
