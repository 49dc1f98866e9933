package opensearch

import "testing"

func TestShapeSearch(t *testing.T) {
	jsonIn := []byte(`{"hits":{"total":{"value":2},"hits":[{"_id":"101","_source":{"title":"A","authors":["X"],"year":1999,"fileInfo":{"container":"c","filename":"a.fb2"}}},{"_source":{"docId":"102","title":"B","authors":["Y"],"annotation":"<p>b</p>","fileInfo":{"container":"d","filename":"b.fb2"}}}]}}`)
	out, err := ShapeSearch(jsonIn, 0, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Total != 2 || len(out.Books) != 2 {
		t.Fatalf("expected 2 of 2, got %d of %d", len(out.Books), out.Total)
	}
	if out.Books[0].ID != "101" || out.Books[0].Download() != "c/a.fb2" || out.Books[0].Year != 1999 {
		t.Errorf("unexpected first book %+v", out.Books[0])
	}
	if out.Books[1].ID != "102" || out.Books[1].Description != "<p>b</p>" {
		t.Errorf("docId fallback not applied: %+v", out.Books[1])
	}
	if out.HasMore() {
		t.Errorf("expected no more hits")
	}
}

func TestShapeSearchEmpty(t *testing.T) {
	out, err := ShapeSearch([]byte(`{"hits":{"total":{"value":0},"hits":[]}}`), 20, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Books == nil {
		t.Fatalf("books must be an empty slice, not nil")
	}
	if out.From != 20 || out.Size != 10 {
		t.Errorf("window not kept: %+v", out)
	}
}

func TestShapeSearchBadJSON(t *testing.T) {
	if _, err := ShapeSearch([]byte(`{"hits":`), 0, 10); err == nil {
		t.Fatalf("expected decode error")
	}
}
