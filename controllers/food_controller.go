package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JaguarsCodehub/food-calorie/middlewares"
	"github.com/JaguarsCodehub/food-calorie/services"
)

const (
	barcodeNotFoundDetail = "Product not found. Try scanning the barcode again."
	searchFailedDetail    = "Error searching for food"
)

type FoodController struct {
	Svc *services.FoodService
	Log *slog.Logger
}

func NewFoodController(svc *services.FoodService, log *slog.Logger) *FoodController {
	return &FoodController{Svc: svc, Log: log}
}

// POST /analyze-food  multipart "file"
func (h *FoodController) AnalyzeFood(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "image file is required in form field 'file'"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err.Error(), err)
		return
	}
	defer f.Close()

	contents, err := io.ReadAll(f)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err.Error(), err)
		return
	}

	out, err := h.Svc.AnalyzeImage(c.Request.Context(), contents)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err.Error(), err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /barcode/:barcode
func (h *FoodController) GetFoodByBarcode(c *gin.Context) {
	barcode := c.Param("barcode")

	product, err := h.Svc.LookupBarcode(c.Request.Context(), barcode)
	if errors.Is(err, services.ErrProductNotFound) {
		h.Log.InfoContext(c.Request.Context(), "barcode not found",
			"request_id", c.GetString(middlewares.RequestIDKey), "barcode", barcode)
		c.JSON(http.StatusNotFound, gin.H{"detail": barcodeNotFoundDetail})
		return
	}
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "Error fetching product information: "+err.Error(), err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// GET /nutritionix/search/:query
func (h *FoodController) SearchNutritionix(c *gin.Context) {
	foods, err := h.Svc.Search(c.Request.Context(), c.Param("query"))
	if err != nil {
		// the provider's error text stays in the log
		h.fail(c, http.StatusInternalServerError, searchFailedDetail, err)
		return
	}
	if foods == nil {
		foods = []json.RawMessage{}
	}
	c.JSON(http.StatusOK, gin.H{"foods": foods})
}

func (h *FoodController) fail(c *gin.Context, status int, detail string, err error) {
	_ = c.Error(err)
	h.Log.ErrorContext(c.Request.Context(), "request failed",
		"request_id", c.GetString(middlewares.RequestIDKey),
		"path", c.FullPath(),
		"error", err)
	c.JSON(status, gin.H{"detail": detail})
}
