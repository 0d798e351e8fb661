package recommend

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wortheat/wortheat-backend/pkg/enums"
	"github.com/wortheat/wortheat-backend/pkg/logger"
	"github.com/wortheat/wortheat-backend/pkg/weather"
)

const (
	// EngineHeuristic scores the embedded history fixture directly.
	EngineHeuristic = "heuristic"
	// EngineAI asks the generative endpoint, falling back to the heuristic.
	EngineAI = "ai"

	topDishes = 3

	fallbackNote = "Our chef's picks while the recommendation assistant is away."
)

// Recommendation is the ranked suggestion set returned to customers.
type Recommendation struct {
	City      string            `json:"city"`
	Weather   enums.WeatherKind `json:"weather"`
	TimeSlot  enums.TimeSlot    `json:"time_slot"`
	Dishes    []ScoredDish      `json:"dishes"`
	Source    string            `json:"source"`
	Narrative string            `json:"narrative,omitempty"`
}

// Service defines the behavior needed by the recommendations controller.
type Service interface {
	Recommend(ctx context.Context, city, engine string) (*Recommendation, error)
}

type weatherClient interface {
	Current(ctx context.Context, city string) (*weather.Conditions, error)
}

type completionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ServiceParams bundles the dependencies required to build a recommend service.
type ServiceParams struct {
	Weather weatherClient
	GenAI   completionClient
	History []HistoricalOrder
	Logger  *logger.Logger
	Now     func() time.Time
}

type service struct {
	weather weatherClient
	genai   completionClient
	history []HistoricalOrder
	logg    *logger.Logger
	now     func() time.Time
}

// NewService constructs a recommendation service. The generative client is
// optional; without it the AI engine always falls back to the heuristic.
func NewService(params ServiceParams) (Service, error) {
	if params.Weather == nil {
		return nil, fmt.Errorf("weather client is required")
	}
	history := params.History
	if history == nil {
		var err error
		history, err = DefaultHistory()
		if err != nil {
			return nil, err
		}
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		weather: params.Weather,
		genai:   params.GenAI,
		history: history,
		logg:    params.Logger,
		now:     now,
	}, nil
}

func (s *service) Recommend(ctx context.Context, city, engine string) (*Recommendation, error) {
	city = strings.TrimSpace(city)
	hour := s.now().Hour()
	slot := enums.SlotForHour(hour)

	// A weather outage must not take recommendations down with it; score
	// against the neutral bucket instead.
	kind := enums.WeatherNormal
	if conditions, err := s.weather.Current(ctx, city); err == nil && conditions != nil {
		kind = conditions.Kind
	} else if err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "city", city), "weather lookup failed, using normal conditions")
	}

	dishes := Rank(s.history, city, kind, hour, topDishes)
	result := &Recommendation{
		City:     city,
		Weather:  kind,
		TimeSlot: slot,
		Dishes:   dishes,
		Source:   EngineHeuristic,
	}

	if engine != EngineAI {
		return result, nil
	}

	narrative, err := s.generateNarrative(ctx, city, kind, slot, dishes)
	if err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "city", city), "generative recommendation failed, serving heuristic fallback")
		}
		result.Narrative = fallbackNote
		return result, nil
	}
	result.Source = EngineAI
	result.Narrative = narrative
	return result, nil
}

func (s *service) generateNarrative(ctx context.Context, city string, kind enums.WeatherKind, slot enums.TimeSlot, dishes []ScoredDish) (string, error) {
	if s.genai == nil {
		return "", fmt.Errorf("generative client not configured")
	}

	names := make([]string, 0, len(dishes))
	for _, dish := range dishes {
		names = append(names, dish.Food)
	}
	prompt := fmt.Sprintf(
		"You are a food concierge for an Indian office-lunch service. "+
			"It is %s in %s and the weather is %s. "+
			"Recommend these dishes in two short, appetizing sentences: %s.",
		slot, city, kind, strings.Join(names, ", "),
	)

	text, err := s.genai.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("empty completion")
	}
	return text, nil
}
