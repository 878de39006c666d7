package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"

	"github.com/JaguarsCodehub/food-calorie/config"
	"github.com/JaguarsCodehub/food-calorie/models"
)

// ErrProductNotFound means Open Food Facts has no product for the barcode.
var ErrProductNotFound = errors.New("product not found")

type OpenFoodFactsService struct {
	baseURL string
	client  *http.Client
	log     *slog.Logger
}

func NewOpenFoodFactsService(cfg config.OpenFoodFactsConfig, client *http.Client, log *slog.Logger) *OpenFoodFactsService {
	return &OpenFoodFactsService{baseURL: cfg.BaseURL, client: client, log: log}
}

// LookupBarcode fetches a product and maps its per-100 g nutriments.
// Returns ErrProductNotFound when the provider status flag is not 1.
func (s *OpenFoodFactsService) LookupBarcode(ctx context.Context, barcode string) (*models.BarcodeProduct, error) {
	u := fmt.Sprintf("%s/api/v0/product/%s.json", s.baseURL, url.PathEscape(barcode))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create open food facts request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call open food facts: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read open food facts response: %w", err)
	}
	s.log.DebugContext(ctx, "open food facts response",
		"barcode", barcode, "status_code", resp.StatusCode, "body", string(body))

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrProductNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("open food facts API error %d: %s", resp.StatusCode, string(body))
	}
	if !gjson.ValidBytes(body) {
		return nil, errors.New("failed to parse open food facts JSON")
	}

	doc := gjson.ParseBytes(body)
	product := doc.Get("product")
	if doc.Get("status").Int() != 1 || !product.IsObject() {
		return nil, ErrProductNotFound
	}

	// nutriments come back as numbers or numeric strings depending on the product
	n := product.Get("nutriments")
	return &models.BarcodeProduct{
		FoodName:      product.Get("product_name").String(),
		Calories:      n.Get("energy-kcal_100g").Float(),
		Protein:       n.Get("proteins_100g").Float(),
		Fat:           n.Get("fat_100g").Float(),
		Carbohydrates: n.Get("carbohydrates_100g").Float(),
		ServingQty:    100,
		ServingUnit:   "g",
		Brand:         product.Get("brands").String(),
		ImageURL:      product.Get("image_url").String(),
	}, nil
}
