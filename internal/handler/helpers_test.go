package handler_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/tacocloud/web/internal/auth"
	"github.com/tacocloud/web/internal/middleware"
	"github.com/tacocloud/web/internal/session"
	"github.com/tacocloud/web/internal/web"
	"golang.org/x/net/html"
)

const testSecret = "test-secret"

func newRenderer(t *testing.T) *web.Renderer {
	t.Helper()
	renderer, err := web.NewRenderer()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}

// pageRouter serves page routes behind the session middleware.
type pageRouter struct {
	http.Handler
	store *session.Store
}

func newPageRouter(mount func(r chi.Router)) *pageRouter {
	store := session.NewStore(time.Hour)
	r := chi.NewRouter()
	r.Use(middleware.Session(store, testSecret, false))
	mount(r)
	return &pageRouter{Handler: r, store: store}
}

// doSessionRequest sends a request carrying the cookie of a live session.
func doSessionRequest(t *testing.T, router *pageRouter, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	token, err := auth.GenerateSessionToken(testSecret, router.store.Create(), time.Hour)
	if err != nil {
		t.Fatalf("session token: %v", err)
	}
	req := httptest.NewRequest(method, path, nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func doRequest(t *testing.T, router http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func doForm(t *testing.T, router http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func parseHTML(t *testing.T, body string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(n *html.Node, class string) bool {
	v, _ := attr(n, "class")
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

// findAll returns every element node for which match reports true, in
// document order.
func findAll(root *html.Node, match func(n *html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

func byID(root *html.Node, id string) *html.Node {
	nodes := findAll(root, func(n *html.Node) bool {
		v, ok := attr(n, "id")
		return ok && v == id
	})
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

func byClass(root *html.Node, class string) []*html.Node {
	return findAll(root, func(n *html.Node) bool { return hasClass(n, class) })
}

func byTag(root *html.Node, tag string) []*html.Node {
	return findAll(root, func(n *html.Node) bool { return n.Data == tag })
}

func text(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}

func validationMessages(root *html.Node) []string {
	nodes := byClass(root, "validationError")
	msgs := make([]string, len(nodes))
	for i, n := range nodes {
		msgs[i] = text(n)
	}
	return msgs
}
