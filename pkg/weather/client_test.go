package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/wortheat/wortheat-backend/pkg/config"
	"github.com/wortheat/wortheat-backend/pkg/enums"
	"github.com/wortheat/wortheat-backend/pkg/logger"
)

func TestClassifyConditions(t *testing.T) {
	cases := []struct {
		desc  string
		tempC float64
		want  enums.WeatherKind
	}{
		{"Light rain shower", 28, enums.WeatherRainy},
		{"Patchy rain possible", 10, enums.WeatherRainy},
		{"Thundery outbreaks", 30, enums.WeatherRainy},
		{"Sunny", 32, enums.WeatherSunny},
		{"Clear", 25, enums.WeatherSunny},
		{"Partly cloudy", 26, enums.WeatherCloudy},
		{"Overcast", 22, enums.WeatherCloudy},
		{"Clear", 8, enums.WeatherCold},
		{"Haze", 27, enums.WeatherNormal},
	}
	for _, tc := range cases {
		if got := ClassifyConditions(tc.desc, tc.tempC); got != tc.want {
			t.Errorf("ClassifyConditions(%q, %.0f) = %s, want %s", tc.desc, tc.tempC, got, tc.want)
		}
	}
}

func TestCurrent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/current.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("q") != "Pune" {
			t.Errorf("city not forwarded: %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"location":{"name":"Pune"},"current":{"temp_c":24.5,"condition":{"text":"Light rain"}}}`))
	}))
	defer srv.Close()

	logg := logger.New(logger.Options{ServiceName: "test"})
	client, err := NewClient(context.Background(), config.WeatherConfig{
		APIKey:  "key",
		BaseURL: srv.URL,
		Timeout: 2 * time.Second,
	}, logg)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	cond, err := client.Current(context.Background(), "Pune")
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if cond.Kind != enums.WeatherRainy {
		t.Fatalf("expected rainy, got %s", cond.Kind)
	}
	if cond.City != "Pune" {
		t.Fatalf("unexpected city %s", cond.City)
	}
}

func TestCurrentUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"key invalid"}}`, http.StatusForbidden)
	}))
	defer srv.Close()

	logg := logger.New(logger.Options{ServiceName: "test"})
	client, err := NewClient(context.Background(), config.WeatherConfig{
		APIKey:  "bad",
		BaseURL: srv.URL,
		Timeout: 2 * time.Second,
	}, logg)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if _, err := client.Current(context.Background(), "Pune"); err == nil {
		t.Fatal("expected upstream error")
	}
}
