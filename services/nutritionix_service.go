package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/JaguarsCodehub/food-calorie/config"
	"github.com/JaguarsCodehub/food-calorie/models"
)

type NutritionixService struct {
	appID, apiKey string
	endpoint      string
	timezone      string
	client        *http.Client
	log           *slog.Logger
}

// NewNutritionixService initializes the service with credentials and HTTP client
func NewNutritionixService(cfg config.NutritionixConfig, client *http.Client, log *slog.Logger) *NutritionixService {
	return &NutritionixService{
		appID:    cfg.AppID,
		apiKey:   cfg.APIKey,
		endpoint: cfg.Endpoint,
		timezone: cfg.Timezone,
		client:   client,
		log:      log,
	}
}

type naturalNutrientsRequest struct {
	Query    string `json:"query"`
	Timezone string `json:"timezone"`
}

// Search posts the query to the natural-language nutrients endpoint and
// returns the raw "foods" matches, which may be empty. Failures are returned.
func (s *NutritionixService) Search(ctx context.Context, query string) ([]json.RawMessage, error) {
	body, err := s.post(ctx, query)
	if err != nil {
		return nil, err
	}

	foods := gjson.GetBytes(body, "foods")
	if !foods.IsArray() {
		return []json.RawMessage{}, nil
	}
	out := make([]json.RawMessage, 0, len(foods.Array()))
	for _, f := range foods.Array() {
		out = append(out, json.RawMessage(f.Raw))
	}
	return out, nil
}

// LookupBest returns the first-ranked match for query. It never fails: a
// transport or decode error is logged and reported like an empty result.
func (s *NutritionixService) LookupBest(ctx context.Context, query string) (*models.NutritionRecord, bool) {
	body, err := s.post(ctx, query)
	if err != nil {
		s.log.WarnContext(ctx, "nutrition lookup failed", "query", query, "error", err)
		return nil, false
	}

	first := gjson.GetBytes(body, "foods.0")
	if !first.Exists() {
		return nil, false
	}
	rec := recordFromFood(first)
	return &rec, true
}

func recordFromFood(f gjson.Result) models.NutritionRecord {
	num := func(key string, def float64) float64 {
		if v := f.Get(key); v.Exists() && v.Type != gjson.Null {
			return v.Float()
		}
		return def
	}
	unit := "serving"
	if v := f.Get("serving_unit"); v.Exists() && v.Type != gjson.Null {
		unit = v.String()
	}

	return models.NutritionRecord{
		FoodName:      f.Get("food_name").String(),
		Calories:      num("nf_calories", 0),
		ServingQty:    num("serving_qty", 1),
		ServingUnit:   unit,
		Protein:       num("nf_protein", 0),
		Carbohydrates: num("nf_total_carbohydrate", 0),
		Fat:           num("nf_total_fat", 0),
		Fiber:         num("nf_dietary_fiber", 0),
		Sugars:        num("nf_sugars", 0),
		Sodium:        num("nf_sodium", 0),
		Cholesterol:   num("nf_cholesterol", 0),
	}
}

func (s *NutritionixService) post(ctx context.Context, query string) ([]byte, error) {
	b, err := json.Marshal(naturalNutrientsRequest{Query: query, Timezone: s.timezone})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal nutritionix payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("failed to create nutritionix request: %w", err)
	}
	req.Header.Set("x-app-id", s.appID)
	req.Header.Set("x-app-key", s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call nutritionix: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read nutritionix response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("nutritionix API error %d: %s", resp.StatusCode, string(body))
	}
	if !gjson.ValidBytes(body) {
		return nil, errors.New("failed to parse nutritionix JSON")
	}
	s.log.DebugContext(ctx, "nutritionix response", "query", query, "body", string(body))
	return body, nil
}
