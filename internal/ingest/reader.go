// Package ingest reads bulker JSONL output into catalog books.
package ingest

import (
	"bufio"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"shelf/internal/catalog"
)

//go:embed book.schema.json
var schemaJSON string

const maxLine = 4 << 20

// Doc is one bulker document line.
type Doc struct {
	DocID      string   `json:"docId"`
	Title      string   `json:"title"`
	Authors    []string `json:"authors"`
	Year       int      `json:"year"`
	Annotation string   `json:"annotation"`
	Cover      string   `json:"cover"`
	FileInfo   struct {
		Container string `json:"container"`
		Filename  string `json:"filename"`
		Sha1      string `json:"sha1"`
		Size      int64  `json:"size"`
	} `json:"fileInfo"`
}

// Book maps d to a catalog book. The id is docId, then the bulk action _id, then the file hash.
func (d Doc) Book(actionID string) catalog.Book {
	id := d.DocID
	if id == "" {
		id = actionID
	}
	if id == "" {
		id = d.FileInfo.Sha1
	}
	authors := make([]string, 0, len(d.Authors))
	for _, a := range d.Authors {
		if a = strings.TrimSpace(a); a != "" {
			authors = append(authors, a)
		}
	}
	return catalog.Book{
		ID:          id,
		Title:       strings.TrimSpace(d.Title),
		Authors:     authors,
		Year:        d.Year,
		Description: d.Annotation,
		CoverURL:    d.Cover,
		Container:   d.FileInfo.Container,
		Filename:    d.FileInfo.Filename,
	}
}

// RejectError reports a document that was skipped; reading can continue.
type RejectError struct {
	Line   int
	Reason string
}

func (e *RejectError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// Reader yields valid books from a JSONL stream. Bulk action lines
// ({"index":{"_id":...}}) are consumed and lend their _id to the next document.
type Reader struct {
	sc       *bufio.Scanner
	schema   *gojsonschema.Schema
	line     int
	actionID string
}

// NewReader decodes r from charset (any WHATWG label, e.g. "windows-1251");
// an empty charset means UTF-8.
func NewReader(r io.Reader, charset string) (*Reader, error) {
	if charset != "" && !strings.EqualFold(charset, "utf-8") {
		enc, err := htmlindex.Get(charset)
		if err != nil {
			return nil, fmt.Errorf("unknown encoding %q: %w", charset, err)
		}
		r = transform.NewReader(r, enc.NewDecoder())
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("load document schema: %w", err)
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), maxLine)
	return &Reader{sc: sc, schema: schema}, nil
}

// Next returns the next valid book, a *RejectError for a skipped line, or io.EOF.
func (r *Reader) Next() (catalog.Book, error) {
	for r.sc.Scan() {
		r.line++
		line := r.sc.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}

		var probe map[string]json.RawMessage
		if err := json.Unmarshal(line, &probe); err != nil {
			return catalog.Book{}, &RejectError{Line: r.line, Reason: "invalid json: " + err.Error()}
		}
		if action, ok := probe["index"]; ok && len(probe) == 1 {
			var meta struct {
				ID string `json:"_id"`
			}
			_ = json.Unmarshal(action, &meta)
			r.actionID = meta.ID
			continue
		}

		actionID := r.actionID
		r.actionID = ""

		res, err := r.schema.Validate(gojsonschema.NewBytesLoader(line))
		if err != nil {
			return catalog.Book{}, &RejectError{Line: r.line, Reason: err.Error()}
		}
		if !res.Valid() {
			reasons := make([]string, 0, len(res.Errors()))
			for _, e := range res.Errors() {
				reasons = append(reasons, e.String())
			}
			return catalog.Book{}, &RejectError{Line: r.line, Reason: strings.Join(reasons, "; ")}
		}

		var doc Doc
		if err := json.Unmarshal(line, &doc); err != nil {
			return catalog.Book{}, &RejectError{Line: r.line, Reason: err.Error()}
		}
		b := doc.Book(actionID)
		if b.ID == "" {
			return catalog.Book{}, &RejectError{Line: r.line, Reason: "document has no id"}
		}
		return b, nil
	}
	if err := r.sc.Err(); err != nil {
		return catalog.Book{}, fmt.Errorf("read line %d: %w", r.line+1, err)
	}
	return catalog.Book{}, io.EOF
}

// IsReject reports whether err only skipped one document.
func IsReject(err error) bool {
	var rej *RejectError
	return errors.As(err, &rej)
}
