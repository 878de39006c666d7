package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/JaguarsCodehub/food-calorie/config"
	"github.com/JaguarsCodehub/food-calorie/services"
	"github.com/JaguarsCodehub/food-calorie/utils"
)

var (
	// cfg and logger are set up before any subcommand runs
	cfg    *config.Config
	logger *slog.Logger

	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "food-calorie",
	Short: "Food image and barcode nutrition lookup service",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logger = utils.NewLogger(os.Stderr, cfg.Log.Level, cfg.Log.Format)
		slog.SetDefault(logger)
		return nil
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file (default: $CONFIG_PATH)")
}

// newLabelsAPI builds the Rekognition client; tests swap it for a fake.
var newLabelsAPI = func(ctx context.Context, c config.AWSConfig) (services.DetectLabelsAPI, error) {
	client, err := utils.NewRekognitionClient(ctx, c)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// newFoodService wires the three provider clients. The Rekognition client is
// only built when withLabels is set, so barcode and search work without AWS.
func newFoodService(ctx context.Context, withLabels bool) (*services.FoodService, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout()}

	var labels services.LabelDetector
	if withLabels {
		rek, err := newLabelsAPI(ctx, cfg.AWS)
		if err != nil {
			return nil, err
		}
		labels = services.NewRekognitionService(rek, cfg.Rekognition)
	}

	return services.NewFoodService(
		labels,
		services.NewNutritionixService(cfg.Nutritionix, httpClient, logger),
		services.NewOpenFoodFactsService(cfg.OpenFoodFacts, httpClient, logger),
	), nil
}
