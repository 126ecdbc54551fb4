package web_test

import (
	"io/fs"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tacocloud/web/internal/web"
)

func TestRender(t *testing.T) {
	renderer, err := web.NewRenderer()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	rr := httptest.NewRecorder()
	if err := renderer.Render(rr, http.StatusCreated, web.PageHome, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	if rr.Code != http.StatusCreated {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusCreated)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("content type: got %q", ct)
	}
	if !strings.Contains(rr.Body.String(), "<title>Taco Cloud</title>") {
		t.Errorf("expected page title in body:\n%s", rr.Body.String())
	}
}

func TestRender_UnknownPage(t *testing.T) {
	renderer, err := web.NewRenderer()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	rr := httptest.NewRecorder()
	if err := renderer.Render(rr, http.StatusOK, "missing", nil); err == nil {
		t.Fatal("expected error for unknown page")
	}
	if rr.Body.Len() != 0 {
		t.Errorf("expected nothing written, got %q", rr.Body.String())
	}
}

func TestStatic(t *testing.T) {
	for _, name := range []string{"styles.css", "images/TacoCloud.png"} {
		if _, err := fs.Stat(web.Static(), name); err != nil {
			t.Errorf("stat %s: %v", name, err)
		}
	}
}
