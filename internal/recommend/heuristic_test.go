package recommend

import (
	"testing"

	"github.com/wortheat/wortheat-backend/pkg/enums"
)

func TestRankPrefersSlotAndWeatherMatch(t *testing.T) {
	history := []HistoricalOrder{
		{Food: "Kanda Bhaji", City: "pune", Weather: enums.WeatherRainy, Time: "10:00"},
		{Food: "Curd Rice", City: "pune", Weather: enums.WeatherSunny, Time: "13:00"},
		{Food: "Dal Khichdi", City: "pune", Weather: enums.WeatherNormal, Time: "22:00"},
	}

	ranked := Rank(history, "pune", enums.WeatherRainy, 10, 3)
	if len(ranked) == 0 {
		t.Fatal("expected recommendations")
	}
	if ranked[0].Food != "Kanda Bhaji" {
		t.Fatalf("expected Kanda Bhaji first, got %s", ranked[0].Food)
	}
	for _, dish := range ranked[1:] {
		if dish.Score >= ranked[0].Score {
			t.Fatalf("expected matched dish to outrank %s (%d >= %d)", dish.Food, dish.Score, ranked[0].Score)
		}
	}
}

func TestRankWeatherBonusOutweighsSingleSlotMatch(t *testing.T) {
	history := []HistoricalOrder{
		// Same slot, no weather affinity.
		{Food: "Veg Thali", City: "pune", Weather: enums.WeatherNormal, Time: "10:00"},
		// Rain affinity dish seen once in another slot.
		{Food: "Kanda Bhaji", City: "pune", Weather: enums.WeatherRainy, Time: "18:00"},
	}

	ranked := Rank(history, "pune", enums.WeatherRainy, 10, 3)
	if ranked[0].Food != "Kanda Bhaji" {
		t.Fatalf("expected rain affinity to win, got %+v", ranked)
	}
}

func TestRankFallsBackToGlobalFrequency(t *testing.T) {
	history := []HistoricalOrder{
		{Food: "Misal Pav", City: "mumbai", Weather: enums.WeatherNormal, Time: "09:00"},
		{Food: "Misal Pav", City: "mumbai", Weather: enums.WeatherNormal, Time: "09:30"},
		{Food: "Vada Pav", City: "mumbai", Weather: enums.WeatherNormal, Time: "10:00"},
	}

	// Night-time query in a city with only morning history and no weather
	// affinities: nothing matches, so frequency decides.
	ranked := Rank(history, "mumbai", enums.WeatherNormal, 23, 3)
	if len(ranked) != 2 {
		t.Fatalf("expected two dishes, got %d", len(ranked))
	}
	if ranked[0].Food != "Misal Pav" || ranked[0].Score != 2 {
		t.Fatalf("expected Misal Pav x2 first, got %+v", ranked[0])
	}
}

func TestRankUnknownCityFallsBackGlobally(t *testing.T) {
	history := []HistoricalOrder{
		{Food: "Masala Dosa", City: "bengaluru", Weather: enums.WeatherNormal, Time: "08:00"},
	}

	ranked := Rank(history, "nagpur", enums.WeatherNormal, 8, 3)
	if len(ranked) != 1 || ranked[0].Food != "Masala Dosa" {
		t.Fatalf("expected global fallback, got %+v", ranked)
	}
}

func TestRankCapsAtTopN(t *testing.T) {
	history := []HistoricalOrder{
		{Food: "A", City: "pune", Weather: enums.WeatherNormal, Time: "10:00"},
		{Food: "B", City: "pune", Weather: enums.WeatherNormal, Time: "10:10"},
		{Food: "C", City: "pune", Weather: enums.WeatherNormal, Time: "10:20"},
		{Food: "D", City: "pune", Weather: enums.WeatherNormal, Time: "10:30"},
	}

	ranked := Rank(history, "pune", enums.WeatherNormal, 10, 3)
	if len(ranked) != 3 {
		t.Fatalf("expected top-3 cap, got %d", len(ranked))
	}
}

func TestDefaultHistoryDecodes(t *testing.T) {
	rows, err := DefaultHistory()
	if err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	if len(rows) == 0 {
		t.Fatal("expected fixture rows")
	}
	for _, row := range rows {
		if _, err := row.Hour(); err != nil {
			t.Fatalf("fixture row %q has bad time: %v", row.Food, err)
		}
		if !row.Weather.IsValid() {
			t.Fatalf("fixture row %q has bad weather %q", row.Food, row.Weather)
		}
	}
}
