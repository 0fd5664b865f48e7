package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func geocodeBody(pos string) string {
	return `{"response":{"GeoObjectCollection":{"featureMember":[` +
		`{"GeoObject":{"Point":{"pos":"` + pos + `"}}}]}}}`
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*YandexClient, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewYandexClientWithBaseURL("test-key", srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return client, srv
}

func TestYandexClientLookup(t *testing.T) {
	var gotQuery map[string]string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"geocode": r.URL.Query().Get("geocode"),
			"apikey":  r.URL.Query().Get("apikey"),
			"format":  r.URL.Query().Get("format"),
		}
		w.Write([]byte(geocodeBody("37.61 55.75")))
	})

	coords, ok := client.Lookup(context.Background(), "Moscow, Red Square 1")
	if !ok {
		t.Fatal("expected resolved coordinates")
	}
	if coords.Lon != 37.61 || coords.Lat != 55.75 {
		t.Fatalf("coords = %+v, want lon=37.61 lat=55.75", coords)
	}

	if gotQuery["geocode"] != "Moscow, Red Square 1" {
		t.Errorf("geocode param = %q", gotQuery["geocode"])
	}
	if gotQuery["apikey"] != "test-key" {
		t.Errorf("apikey param = %q", gotQuery["apikey"])
	}
	if gotQuery["format"] != "json" {
		t.Errorf("format param = %q", gotQuery["format"])
	}
}

func TestYandexClientLookupFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "http error status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
			},
		},
		{
			name: "zero results",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"response":{"GeoObjectCollection":{"featureMember":[]}}}`))
			},
		},
		{
			name: "malformed json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{not json`))
			},
		},
		{
			name: "malformed pos pair",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(geocodeBody("37.61")))
			},
		},
		{
			name: "non-numeric pos",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(geocodeBody("east north")))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, tt.handler)
			if _, ok := client.Lookup(context.Background(), "somewhere"); ok {
				t.Fatal("expected unresolved")
			}
		})
	}
}

func TestYandexClientLookupConnectionFailure(t *testing.T) {
	client, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	if _, ok := client.Lookup(context.Background(), "somewhere"); ok {
		t.Fatal("expected unresolved on connection failure")
	}
}

func TestYandexClientTakesFirstResult(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":{"GeoObjectCollection":{"featureMember":[` +
			`{"GeoObject":{"Point":{"pos":"30.31 59.93"}}},` +
			`{"GeoObject":{"Point":{"pos":"37.61 55.75"}}}]}}}`))
	})

	coords, ok := client.Lookup(context.Background(), "ambiguous")
	if !ok {
		t.Fatal("expected resolved coordinates")
	}
	if coords.Lon != 30.31 || coords.Lat != 59.93 {
		t.Fatalf("coords = %+v, want the first result (lon=30.31 lat=59.93)", coords)
	}
}

func TestNewYandexClientRequiresKey(t *testing.T) {
	if _, err := NewYandexClient(""); err == nil {
		t.Fatal("expected error for empty api key")
	}
}
