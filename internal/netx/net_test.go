package netx

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPostJSON(t *testing.T) {
	t.Run("success 200 OK", func(t *testing.T) {
		var gotBody, gotCT, gotMethod, gotAuth string

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotCT = r.Header.Get("Content-Type")
			gotAuth = r.Header.Get("Authorization")
			body, _ := io.ReadAll(r.Body)
			gotBody = string(body)
			_, _ = w.Write([]byte(`{"answer":42}`))
		}))
		defer ts.Close()

		var out struct {
			Answer int `json:"answer"`
		}
		h := http.Header{}
		h.Set("Authorization", "Bearer k")

		err := PostJSON(context.Background(), ts.Client(), ts.URL, h, map[string]string{"q": "x"}, &out)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotMethod != http.MethodPost {
			t.Fatalf("method = %q, want POST", gotMethod)
		}
		if gotCT != "application/json" {
			t.Fatalf("Content-Type = %q", gotCT)
		}
		if gotAuth != "Bearer k" {
			t.Fatalf("Authorization = %q", gotAuth)
		}
		if gotBody != `{"q":"x"}` {
			t.Fatalf("body = %q", gotBody)
		}
		if out.Answer != 42 {
			t.Fatalf("answer = %d", out.Answer)
		}
	})

	t.Run("non-2xx -> StatusError", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte("denied"))
		}))
		defer ts.Close()

		err := PostJSON(context.Background(), ts.Client(), ts.URL, nil, struct{}{}, nil)
		var se *StatusError
		if !errors.As(err, &se) {
			t.Fatalf("expected StatusError, got %v", err)
		}
		if se.StatusCode != http.StatusForbidden || se.Body != "denied" {
			t.Fatalf("unexpected status error: %+v", se)
		}
		if !strings.Contains(err.Error(), "403") {
			t.Fatalf("error = %q, want to contain 403", err.Error())
		}
	})

	t.Run("bad json", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("{not json"))
		}))
		defer ts.Close()

		var out map[string]any
		err := PostJSON(context.Background(), ts.Client(), ts.URL, nil, struct{}{}, &out)
		if err == nil || !strings.Contains(err.Error(), "decode response") {
			t.Fatalf("expected decode error, got %v", err)
		}
	})
}

func TestGetJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %q", r.Method)
		}
		_, _ = w.Write([]byte(`{"keys":[1,2]}`))
	}))
	defer ts.Close()

	var out struct {
		Keys []int `json:"keys"`
	}
	if err := GetJSON(context.Background(), ts.Client(), ts.URL, nil, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Keys) != 2 {
		t.Fatalf("keys = %v", out.Keys)
	}
}

func TestIsTransient(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	ts.Close()
	_, netErr := Do(http.DefaultClient, mustRequest(t, ts.URL))

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"5xx", &StatusError{StatusCode: 503}, true},
		{"4xx", &StatusError{StatusCode: 400}, false},
		{"network", netErr, true},
		{"canceled", context.Canceled, false},
		{"plain", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTransient(tt.err); got != tt.want {
				t.Fatalf("IsTransient(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func mustRequest(t *testing.T, u string) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		t.Fatal(err)
	}
	return req
}
