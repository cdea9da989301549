package dynup_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/akarpz/dynup"
)

func TestGandiUpdate(t *testing.T) {
	var (
		gotMethod string
		gotPath   string
		gotAuth   string
		gotType   string
		gotBody   string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c, err := dynup.New("example.com",
		dynup.UsingGandi("tok"),
		dynup.WithAPIEndpoint(srv.URL),
		dynup.WithTTL(300),
		dynup.UsingResolver(dynup.FromString("203.0.113.7")),
	)
	if err != nil {
		t.Fatalf("New failed: %s", err)
	}
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %s", err)
	}

	if expected, got := http.MethodPut, gotMethod; expected != got {
		t.Fatalf("Expected method %q; got %q", expected, got)
	}
	if expected, got := "/v5/livedns/domains/example.com/records/@/A", gotPath; expected != got {
		t.Fatalf("Expected path %q; got %q", expected, got)
	}
	if expected, got := "Bearer tok", gotAuth; expected != got {
		t.Fatalf("Expected authorization %q; got %q", expected, got)
	}
	if expected, got := "application/json", gotType; expected != got {
		t.Fatalf("Expected content type %q; got %q", expected, got)
	}
	if expected, got := `{"rrset_ttl":300,"rrset_values":["203.0.113.7"]}`, gotBody; expected != got {
		t.Fatalf("Expected body %q; got %q", expected, got)
	}
}

func TestGandiBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		io.WriteString(w, `{"message":"Forbidden"}`)
	}))
	defer srv.Close()

	c, err := dynup.New("example.com",
		dynup.UsingGandi("tok"),
		dynup.WithAPIEndpoint(srv.URL),
		dynup.UsingResolver(dynup.FromString("203.0.113.7")),
	)
	if err != nil {
		t.Fatalf("New failed: %s", err)
	}
	err = c.Run(context.Background())
	if err == nil {
		t.Fatal("Expected error for non-201 response; got err == nil")
	}
	var serr dynup.StatusError
	if !errors.As(err, &serr) {
		t.Fatalf("Expected StatusError; got %T: %s", err, err)
	}
	if serr.StatusCode != http.StatusForbidden {
		t.Fatalf("Expected status 403; got %d", serr.StatusCode)
	}
}

func TestGandiUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c, err := dynup.New("example.com",
		dynup.UsingGandi("tok"),
		dynup.WithAPIEndpoint(srv.URL),
		dynup.UsingResolver(dynup.FromString("203.0.113.7")),
	)
	if err != nil {
		t.Fatalf("New failed: %s", err)
	}
	if err := c.Run(context.Background()); err == nil {
		t.Fatal("Expected network error; got err == nil")
	}
}
