// Package card is the default book card used inside the results panel.
package card

import (
	"fmt"
	"html"
	"html/template"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"shelf/internal/panel"
)

// ExcerptRunes caps the description shown on a card.
const ExcerptRunes = 180

const cardTemplate = `<article class="book-card{{if .InWishlist}} in-wishlist{{end}}" data-id="{{.Book.ID}}">
  <div class="book-cover">
    {{if .Book.CoverURL}}<img src="{{.Book.CoverURL}}" alt="Cover of {{.Book.Title}}" loading="lazy">{{else}}<div class="book-cover-placeholder" aria-hidden="true">📚</div>{{end}}
    {{with .Toggle}}<form method="POST" action="{{.Href}}" class="wishlist-toggle">
      <button type="submit" aria-pressed="{{if $.InWishlist}}true{{else}}false{{end}}" title="{{if $.InWishlist}}Remove from wishlist{{else}}Add to wishlist{{end}}">{{if $.InWishlist}}♥{{else}}♡{{end}}</button>
    </form>{{end}}
  </div>
  <div class="book-body">
    <h4 class="book-title">{{.Book.Title}}</h4>
    <p class="book-authors">{{.Book.FullAuthors}}</p>
    {{if .Book.Year}}<p class="book-year">{{.Book.Year}}</p>{{end}}
    {{with .Excerpt}}<p class="book-excerpt">{{.}}</p>{{end}}
    {{with .Preview}}<a href="{{.Href}}" class="book-preview"{{if .Fragment}} h-get="{{.Fragment}}" h-target="#preview" h-swap="inner"{{end}}>Preview</a>{{end}}
  </div>
</article>`

type Renderer struct {
	tmpl   *template.Template
	policy *bluemonday.Policy
}

func New() (*Renderer, error) {
	tmpl, err := template.New("card").Parse(cardTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse card template: %w", err)
	}
	return &Renderer{tmpl: tmpl, policy: bluemonday.StrictPolicy()}, nil
}

type cardData struct {
	panel.CardProps
	Excerpt string
}

func (r *Renderer) RenderCard(w io.Writer, c panel.CardProps) error {
	return r.tmpl.Execute(w, cardData{CardProps: c, Excerpt: r.Excerpt(c.Book.Description)})
}

// Excerpt strips markup from an upstream annotation and shortens it on a word boundary.
func (r *Renderer) Excerpt(desc string) string {
	// a space before every tag keeps adjacent paragraphs apart once tags are gone
	plain := strings.Join(strings.Fields(r.policy.Sanitize(strings.ReplaceAll(desc, "<", " <"))), " ")
	// bluemonday leaves text HTML-escaped; the template escapes again on output.
	plain = html.UnescapeString(plain)
	if utf8.RuneCountInString(plain) <= ExcerptRunes {
		return plain
	}
	runes := []rune(plain)[:ExcerptRunes]
	cut := string(runes)
	if i := strings.LastIndexByte(cut, ' '); i > ExcerptRunes/2 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}
