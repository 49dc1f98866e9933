package opensearch

import (
	"encoding/json"
	"fmt"

	"shelf/internal/catalog"
)

type searchHit struct {
	ID     string `json:"_id"`
	Source struct {
		DocID      string   `json:"docId"`
		Title      string   `json:"title"`
		Authors    []string `json:"authors"`
		Year       int      `json:"year"`
		Annotation string   `json:"annotation"`
		Cover      string   `json:"cover"`
		FileInfo   struct {
			Container string `json:"container"`
			Filename  string `json:"filename"`
		} `json:"fileInfo"`
	} `json:"_source"`
}

type searchResp struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []searchHit `json:"hits"`
	} `json:"hits"`
}

// ShapeSearch flattens OpenSearch hits into a catalog page.
// The index _id wins over the document's own docId.
func ShapeSearch(data []byte, from, size int) (*catalog.Page, error) {
	var r searchResp
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode hits: %w", err)
	}
	out := &catalog.Page{
		Total: r.Hits.Total.Value,
		From:  from,
		Size:  size,
		Books: make([]catalog.Book, 0, len(r.Hits.Hits)), // ensure [] not null
	}
	for _, h := range r.Hits.Hits {
		id := h.ID
		if id == "" {
			id = h.Source.DocID
		}
		out.Books = append(out.Books, catalog.Book{
			ID:          id,
			Title:       h.Source.Title,
			Authors:     h.Source.Authors,
			Year:        h.Source.Year,
			Description: h.Source.Annotation,
			CoverURL:    h.Source.Cover,
			Container:   h.Source.FileInfo.Container,
			Filename:    h.Source.FileInfo.Filename,
		})
	}
	if out.Total < from+len(out.Books) {
		out.Total = from + len(out.Books)
	}
	return out, nil
}
