package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/JaguarsCodehub/food-calorie/services"
)

var barcodeCmd = &cobra.Command{
	Use:   "barcode <code>",
	Short: "Look up a packaged product on Open Food Facts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		svc, err := newFoodService(cmd.Context(), false)
		if err != nil {
			return err
		}
		product, err := svc.LookupBarcode(cmd.Context(), args[0])
		if errors.Is(err, services.ErrProductNotFound) {
			return fmt.Errorf("barcode %s: %w", args[0], err)
		}
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), product)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Print raw Nutritionix matches for a free-text query",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		svc, err := newFoodService(cmd.Context(), false)
		if err != nil {
			return err
		}
		foods, err := svc.Search(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), map[string]any{"foods": foods})
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <image_path>",
	Short: "Detect foods in a local image and total their calories",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		img, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read image file: %w", err)
		}
		svc, err := newFoodService(cmd.Context(), true)
		if err != nil {
			return err
		}
		res, err := svc.AnalyzeImage(cmd.Context(), img)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), res)
	},
}

func init() {
	rootCmd.AddCommand(barcodeCmd, searchCmd, analyzeCmd)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
