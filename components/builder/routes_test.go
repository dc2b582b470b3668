package builder

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMountPath_JoinsBasePath(t *testing.T) {
	cases := map[string]string{
		"":        "/",
		"/":       "/",
		"/admin":  "/admin/",
		"admin":   "/admin/",
		"/admin/": "/admin/",
	}
	for base, want := range cases {
		if got := MountPath(base); got != want {
			t.Fatalf("mount path for %q: want %q, got %q", base, want, got)
		}
	}
}

func TestRegisterRoutes_RegistersHandler(t *testing.T) {
	mux := http.NewServeMux()
	pattern, err := RegisterRoutes(mux, "/admin/builder")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if pattern != "/admin/builder/" {
		t.Fatalf("unexpected registered pattern: %q", pattern)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/builder/palette", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if len(rec.Result().Cookies()) != 1 {
		t.Fatalf("expected a session cookie, got %v", rec.Result().Cookies())
	}

	req = httptest.NewRequest(http.MethodGet, "/palette", nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("routes outside the base path should 404, got %d", rec.Code)
	}
}

func TestRegisterRoutes_RequiresMux(t *testing.T) {
	if _, err := RegisterRoutes(nil, "/"); err == nil {
		t.Fatalf("expected error for nil mux")
	}
	component, err := New()
	if err != nil {
		t.Fatalf("new component: %v", err)
	}
	if _, err := component.RegisterRoutes(nil, "/"); err == nil {
		t.Fatalf("expected error for nil mux")
	}
}

func TestComponent_HandlersShareSessions(t *testing.T) {
	component, err := New(WithCookieName("fb"))
	if err != nil {
		t.Fatalf("new component: %v", err)
	}
	if component.Options().CookieName != "fb" {
		t.Fatalf("unexpected cookie name %q", component.Options().CookieName)
	}

	first := component.Handler("/a")
	second := component.Handler("/b")

	rec := httptest.NewRecorder()
	first.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/a/forms/new", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "fb" {
		t.Fatalf("unexpected cookies %v", cookies)
	}

	req := httptest.NewRequest(http.MethodGet, "/b/forms", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	second.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("existing session should be reused")
	}
	if component.Sessions() != 1 {
		t.Fatalf("expected one session, got %d", component.Sessions())
	}
}
