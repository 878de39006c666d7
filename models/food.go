package models

// A label detected in an uploaded image
type DetectedLabel struct {
	Name       string   `json:"name"`
	Confidence float64  `json:"confidence"` // 0–100
	Categories []string `json:"categories"`
}

// NutritionRecord is the best Nutritionix match for a free-text query.
// Missing upstream values are already defaulted when it is built.
type NutritionRecord struct {
	FoodName      string  `json:"food_name"`
	Calories      float64 `json:"calories"`
	ServingQty    float64 `json:"serving_qty"`
	ServingUnit   string  `json:"serving_unit"`
	Protein       float64 `json:"protein"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fat           float64 `json:"fat"`
	Fiber         float64 `json:"fiber"`
	Sugars        float64 `json:"sugars"`
	Sodium        float64 `json:"sodium"`
	Cholesterol   float64 `json:"cholesterol"`
}

// One recognised food with its nutrition snapshot
type FoodItem struct {
	Name          string  `json:"name"`
	Confidence    float64 `json:"confidence"`
	Calories      float64 `json:"calories"`
	ServingInfo   string  `json:"serving_info"` // e.g. "1 slice"
	Protein       float64 `json:"protein"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fat           float64 `json:"fat"`
	Fiber         float64 `json:"fiber"`
	Sugars        float64 `json:"sugars"`
	Sodium        float64 `json:"sodium"`
	Cholesterol   float64 `json:"cholesterol"`
}

type AnalysisResult struct {
	FoodItems     []FoodItem `json:"food_items"`
	TotalCalories float64    `json:"total_calories"`
	Success       bool       `json:"success"`
}

// BarcodeProduct holds Open Food Facts values, always expressed per 100 g.
type BarcodeProduct struct {
	FoodName      string  `json:"food_name"`
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`
	Fat           float64 `json:"fat"`
	Carbohydrates float64 `json:"carbohydrates"`
	ServingQty    float64 `json:"serving_qty"`
	ServingUnit   string  `json:"serving_unit"`
	Brand         string  `json:"brand"`
	ImageURL      string  `json:"image_url"`
}
