// Package panel renders the book search results panel: loading skeletons,
// the no-results and empty states, the results grid with its header, and
// the load-more and end-of-results controls.
//
// The panel is a pure function of its Props. It holds no state between
// renders and never performs the actions it links to; cards are delegated
// to a CardRenderer.
package panel

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"shelf/internal/metrics"
)

// CardRenderer draws one book card.
type CardRenderer interface {
	RenderCard(w io.Writer, c CardProps) error
}

type Panel struct {
	cards CardRenderer
	lang  language.Tag
	tmpl  *template.Template
}

type control struct {
	Action Action
	Class  string
	Label  string
}

// New parses the panel templates once; the result is safe for concurrent use.
// lang picks digit grouping of the found-count ("en" renders 1,500).
func New(cards CardRenderer, lang string) (*Panel, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	p := &Panel{cards: cards, lang: tag}

	funcs := template.FuncMap{
		"seq":   seq,
		"count": p.count,
		"card":  p.card,
		"control": func(a *Action, class, label string) control {
			return control{Action: *a, Class: class, Label: label}
		},
	}
	tmpl := template.New("panel").Funcs(funcs)
	for _, src := range []string{skeletonTemplate, actionTemplate, panelTemplate} {
		if tmpl, err = tmpl.Parse(src); err != nil {
			return nil, fmt.Errorf("parse panel templates: %w", err)
		}
	}
	p.tmpl = tmpl
	return p, nil
}

// Render writes the panel for props as an HTML fragment.
func (p *Panel) Render(w io.Writer, props Props) error {
	return p.RenderLayout(w, Compose(props))
}

func (p *Panel) RenderLayout(w io.Writer, l Layout) error {
	metrics.PanelRendersTotal.WithLabelValues(l.Mode()).Inc()
	if err := p.tmpl.ExecuteTemplate(w, "results-panel", l); err != nil {
		return fmt.Errorf("render results panel: %w", err)
	}
	return nil
}

func (p *Panel) count(n int) string {
	return message.NewPrinter(p.lang).Sprintf("%d", n)
}

func (p *Panel) card(c CardProps) (template.HTML, error) {
	var buf bytes.Buffer
	if err := p.cards.RenderCard(&buf, c); err != nil {
		return "", fmt.Errorf("card %s: %w", c.Book.ID, err)
	}
	return template.HTML(buf.String()), nil
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
