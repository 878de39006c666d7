package routes

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JaguarsCodehub/food-calorie/config"
	"github.com/JaguarsCodehub/food-calorie/controllers"
	"github.com/JaguarsCodehub/food-calorie/middlewares"
)

func SetupRouter(cfg *config.Config, food *controllers.FoodController, log *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middlewares.RequestLogger(log))
	r.Use(recovery(log))
	r.Use(middlewares.CORSMiddleware(cfg.Server.CORSAllowedOrigins))

	r.GET("/healthz", controllers.Health)

	r.POST("/analyze-food", food.AnalyzeFood)
	r.GET("/barcode/:barcode", food.GetFoodByBarcode)
	r.GET("/nutritionix/search/:query", food.SearchNutritionix)

	return r
}

// recovery answers a panic with the same {detail} body as other failures.
func recovery(log *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, rec any) {
		log.ErrorContext(c.Request.Context(), "panic recovered",
			"request_id", c.GetString(middlewares.RequestIDKey),
			"path", c.Request.URL.Path,
			"panic", rec)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": fmt.Sprint(rec)})
	})
}
