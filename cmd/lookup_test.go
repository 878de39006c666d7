package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaguarsCodehub/food-calorie/config"
	"github.com/JaguarsCodehub/food-calorie/models"
	"github.com/JaguarsCodehub/food-calorie/services"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestBarcodeCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v0/product/3017620422003.json" {
			w.Write([]byte(`{"status":1,"product":{"product_name":"Nutella","nutriments":{"energy-kcal_100g":539}}}`))
			return
		}
		w.Write([]byte(`{"status":0}`))
	}))
	defer srv.Close()

	testChdir(t, t.TempDir())
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("OPENFOODFACTS_BASE_URL", srv.URL)

	out, err := runCLI(t, "barcode", "3017620422003")
	require.NoError(t, err)
	assert.Contains(t, out, `"food_name": "Nutella"`)
	assert.Contains(t, out, `"calories": 539`)

	_, err = runCLI(t, "barcode", "0000000000000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "product not found")
}

func TestSearchCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"foods":[{"food_name":"banana","nf_calories":105}]}`))
	}))
	defer srv.Close()

	testChdir(t, t.TempDir())
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("NUTRITIONIX_API_ENDPOINT", srv.URL)

	out, err := runCLI(t, "search", "banana")
	require.NoError(t, err)
	assert.Contains(t, out, `"food_name": "banana"`)
}

func TestAnalyzeCommand_MissingFile(t *testing.T) {
	testChdir(t, t.TempDir())
	t.Setenv("CONFIG_PATH", "")

	_, err := runCLI(t, "analyze", "does-not-exist.jpg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read image file")
}

type fakeRekognition struct {
	image []byte
}

func (f *fakeRekognition) DetectLabels(ctx context.Context, params *rekognition.DetectLabelsInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectLabelsOutput, error) {
	f.image = params.Image.Bytes
	return &rekognition.DetectLabelsOutput{
		Labels: []types.Label{
			{Name: aws.String("Pizza"), Confidence: aws.Float32(95.3), Categories: []types.LabelCategory{{Name: aws.String("Food")}}},
			{Name: aws.String("Food"), Confidence: aws.Float32(90), Categories: []types.LabelCategory{{Name: aws.String("Food")}}},
		},
	}, nil
}

func TestAnalyzeCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"foods":[{"food_name":"pizza","nf_calories":285,"serving_qty":1,"serving_unit":"slice"}]}`))
	}))
	defer srv.Close()

	fake := &fakeRekognition{}
	orig := newLabelsAPI
	newLabelsAPI = func(ctx context.Context, c config.AWSConfig) (services.DetectLabelsAPI, error) {
		return fake, nil
	}
	t.Cleanup(func() { newLabelsAPI = orig })

	dir := t.TempDir()
	testChdir(t, dir)
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("NUTRITIONIX_API_ENDPOINT", srv.URL)
	img := filepath.Join(dir, "meal.jpg")
	require.NoError(t, os.WriteFile(img, []byte("jpeg-bytes"), 0o600))

	out, err := runCLI(t, "analyze", img)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), fake.image)

	var res models.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.Success)
	assert.Equal(t, 285.0, res.TotalCalories)
	require.Len(t, res.FoodItems, 1)
	assert.Equal(t, "pizza", res.FoodItems[0].Name)
	assert.Equal(t, 95.3, res.FoodItems[0].Confidence)
	assert.Equal(t, "1 slice", res.FoodItems[0].ServingInfo)
}
