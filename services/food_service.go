package services

import (
	"context"
	"encoding/json"
	"slices"
	"sort"
	"strings"

	"github.com/JaguarsCodehub/food-calorie/models"
	"github.com/JaguarsCodehub/food-calorie/utils"
)

type LabelDetector interface {
	DetectLabels(ctx context.Context, image []byte) ([]models.DetectedLabel, error)
}

// NutritionLookup offers the two lookups with different failure policies:
// LookupBest swallows failures, Search returns them.
type NutritionLookup interface {
	LookupBest(ctx context.Context, query string) (*models.NutritionRecord, bool)
	Search(ctx context.Context, query string) ([]json.RawMessage, error)
}

type BarcodeLookup interface {
	LookupBarcode(ctx context.Context, barcode string) (*models.BarcodeProduct, error)
}

// Categories that mark a label as something edible
var foodCategories = []string{"Food", "Drink", "Beverage"}

// Names too coarse to look up usefully
var genericFoodTerms = map[string]struct{}{
	"food": {}, "fruit": {}, "vegetable": {}, "beverage": {}, "drink": {}, "meat": {}, "dairy": {},
}

type FoodService struct {
	labels    LabelDetector
	nutrition NutritionLookup
	barcodes  BarcodeLookup
}

func NewFoodService(labels LabelDetector, nutrition NutritionLookup, barcodes BarcodeLookup) *FoodService {
	return &FoodService{labels: labels, nutrition: nutrition, barcodes: barcodes}
}

// AnalyzeImage detects labels in the image and looks each candidate up in
// confidence order. Only a label detection failure is returned as an error.
func (s *FoodService) AnalyzeImage(ctx context.Context, image []byte) (*models.AnalysisResult, error) {
	labels, err := s.labels.DetectLabels(ctx, image)
	if err != nil {
		return nil, err
	}

	res := &models.AnalysisResult{FoodItems: []models.FoodItem{}, Success: true}
	for _, l := range SelectCandidates(labels) {
		name := strings.ToLower(l.Name)
		rec, ok := s.nutrition.LookupBest(ctx, name)
		if !ok {
			continue
		}
		res.FoodItems = append(res.FoodItems, newFoodItem(name, l.Confidence, rec))
		res.TotalCalories += rec.Calories
	}
	return res, nil
}

// Search returns the raw provider matches; unlike AnalyzeImage, lookup failures are returned.
func (s *FoodService) Search(ctx context.Context, query string) ([]json.RawMessage, error) {
	return s.nutrition.Search(ctx, query)
}

func (s *FoodService) LookupBarcode(ctx context.Context, barcode string) (*models.BarcodeProduct, error) {
	return s.barcodes.LookupBarcode(ctx, barcode)
}

// SelectCandidates keeps food-category labels (or all labels when none are
// categorised as food), drops generic terms and sorts by confidence, highest first.
func SelectCandidates(labels []models.DetectedLabel) []models.DetectedLabel {
	var food []models.DetectedLabel
	for _, l := range labels {
		if hasFoodCategory(l) {
			food = append(food, l)
		}
	}
	if len(food) == 0 {
		food = labels
	}

	out := make([]models.DetectedLabel, 0, len(food))
	for _, l := range food {
		if _, generic := genericFoodTerms[strings.ToLower(l.Name)]; !generic {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	return out
}

func hasFoodCategory(l models.DetectedLabel) bool {
	for _, c := range l.Categories {
		if slices.Contains(foodCategories, c) {
			return true
		}
	}
	return false
}

func newFoodItem(name string, confidence float64, rec *models.NutritionRecord) models.FoodItem {
	return models.FoodItem{
		Name:          name,
		Confidence:    confidence,
		Calories:      rec.Calories,
		ServingInfo:   utils.FormatServing(rec.ServingQty, rec.ServingUnit),
		Protein:       rec.Protein,
		Carbohydrates: rec.Carbohydrates,
		Fat:           rec.Fat,
		Fiber:         rec.Fiber,
		Sugars:        rec.Sugars,
		Sodium:        rec.Sodium,
		Cholesterol:   rec.Cholesterol,
	}
}
