package recommend

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/wortheat/wortheat-backend/pkg/enums"
)

//go:embed data/history.json
var historyFixture []byte

// HistoricalOrder is one row of the scoring fixture.
type HistoricalOrder struct {
	Food    string            `json:"food"`
	City    string            `json:"city"`
	Weather enums.WeatherKind `json:"weather"`
	Time    string            `json:"time"`
}

// Hour parses the fixture's "HH:MM" clock into an hour of day.
func (h HistoricalOrder) Hour() (int, error) {
	parts := strings.SplitN(h.Time, ":", 2)
	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid fixture time %q", h.Time)
	}
	return hour, nil
}

// ScoredDish is one ranked recommendation.
type ScoredDish struct {
	Food  string `json:"food"`
	Score int    `json:"score"`
}

// weatherAffinities maps a weather bucket to dish-name fragments that earn a
// fixed bonus when the current weather matches.
var weatherAffinities = map[enums.WeatherKind][]affinity{
	enums.WeatherRainy: {
		{fragment: "bhaji", bonus: 3},
		{fragment: "pakora", bonus: 3},
		{fragment: "chai", bonus: 2},
	},
	enums.WeatherCold: {
		{fragment: "soup", bonus: 3},
		{fragment: "paratha", bonus: 2},
		{fragment: "chai", bonus: 2},
	},
	enums.WeatherSunny: {
		{fragment: "lassi", bonus: 3},
		{fragment: "juice", bonus: 2},
		{fragment: "buttermilk", bonus: 2},
	},
	enums.WeatherCloudy: {
		{fragment: "samosa", bonus: 2},
		{fragment: "chai", bonus: 1},
	},
}

type affinity struct {
	fragment string
	bonus    int
}

// DefaultHistory decodes the embedded order-history fixture.
func DefaultHistory() ([]HistoricalOrder, error) {
	var rows []HistoricalOrder
	if err := json.Unmarshal(historyFixture, &rows); err != nil {
		return nil, fmt.Errorf("decode history fixture: %w", err)
	}
	return rows, nil
}

// Rank scores the history for the given city, weather, and hour, returning at
// most topN dishes. A dish earns one point per past order in the same time
// slot for the city, plus a weather-affinity bonus when the current weather
// has a matching dish fragment. When nothing matches slot or weather, the
// ranking falls back to global order frequency. The function is deterministic
// and side-effect free.
func Rank(history []HistoricalOrder, city string, weather enums.WeatherKind, hour int, topN int) []ScoredDish {
	if topN <= 0 {
		topN = 3
	}
	city = strings.ToLower(strings.TrimSpace(city))
	slot := enums.SlotForHour(hour)

	scores := make(map[string]int)
	order := make([]string, 0)
	seen := make(map[string]bool)
	note := func(food string) {
		if !seen[food] {
			seen[food] = true
			order = append(order, food)
		}
	}

	for _, row := range history {
		food := strings.TrimSpace(row.Food)
		if food == "" {
			continue
		}
		if city != "" && strings.ToLower(row.City) != city {
			continue
		}

		rowHour, err := row.Hour()
		if err != nil {
			continue
		}
		if enums.SlotForHour(rowHour) == slot {
			note(food)
			scores[food]++
		}
		if weather != "" && row.Weather == weather {
			for _, aff := range weatherAffinities[weather] {
				if strings.Contains(strings.ToLower(food), aff.fragment) {
					note(food)
					scores[food] += aff.bonus
				}
			}
		}
	}

	if len(scores) == 0 {
		return topByFrequency(history, city, topN)
	}

	ranked := make([]ScoredDish, 0, len(order))
	for _, food := range order {
		ranked = append(ranked, ScoredDish{Food: food, Score: scores[food]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// topByFrequency ranks dishes by how often they appear in the history,
// ignoring slot and weather.
func topByFrequency(history []HistoricalOrder, city string, topN int) []ScoredDish {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, row := range history {
		food := strings.TrimSpace(row.Food)
		if food == "" {
			continue
		}
		if city != "" && strings.ToLower(row.City) != city {
			continue
		}
		if counts[food] == 0 {
			order = append(order, food)
		}
		counts[food]++
	}

	// A city with no history at all falls back to the global list.
	if len(counts) == 0 && city != "" {
		return topByFrequency(history, "", topN)
	}

	ranked := make([]ScoredDish, 0, len(order))
	for _, food := range order {
		ranked = append(ranked, ScoredDish{Food: food, Score: counts[food]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}
