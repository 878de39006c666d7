package services

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/service/rekognition"

	"github.com/JaguarsCodehub/food-calorie/models"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockRekognition struct {
	Input  *rekognition.DetectLabelsInput
	Output *rekognition.DetectLabelsOutput
	Err    error
}

func (m *MockRekognition) DetectLabels(ctx context.Context, params *rekognition.DetectLabelsInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectLabelsOutput, error) {
	m.Input = params
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Output, nil
}

type MockLabelDetector struct {
	Labels []models.DetectedLabel
	Err    error
}

func (m *MockLabelDetector) DetectLabels(ctx context.Context, image []byte) ([]models.DetectedLabel, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Labels, nil
}

// MockNutrition answers LookupBest from Records; a missing key means no match.
type MockNutrition struct {
	Records   map[string]models.NutritionRecord
	Queries   []string
	Foods     []json.RawMessage
	SearchErr error
}

func (m *MockNutrition) LookupBest(ctx context.Context, query string) (*models.NutritionRecord, bool) {
	m.Queries = append(m.Queries, query)
	rec, ok := m.Records[query]
	if !ok {
		return nil, false
	}
	return &rec, true
}

func (m *MockNutrition) Search(ctx context.Context, query string) ([]json.RawMessage, error) {
	m.Queries = append(m.Queries, query)
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	return m.Foods, nil
}
