package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/jonathan/trustproof/internal/client"
	"github.com/jonathan/trustproof/internal/config"
	"github.com/jonathan/trustproof/internal/observability"
	"github.com/jonathan/trustproof/internal/pipeline"
	"github.com/jonathan/trustproof/internal/types"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Run the full review verification pipeline end-to-end",
	Long: `Submits a review and runs it through every verification stage in order:
intake -> purchase verification -> text authenticity -> consistency check -> media authenticity -> trust scoring.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values. The API credential is read from the ` + config.EnvAPIKey + ` environment variable.`,
	RunE: runVerifyCmd,
}

var (
	verifyConfigPath string
	verifyBusinessID string
	verifyBillID     string
	verifyReview     string
	verifyRating     int
	verifyMediaPath  string
	verifyAPIBaseURL string
	verifyPacing     int
)

func init() {
	verifyCmd.Flags().StringVar(&verifyConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	verifyCmd.Flags().StringVarP(&verifyBusinessID, "business", "b", "", "Business identifier (e.g. BIZ-HOTEL-5678)")
	verifyCmd.Flags().StringVar(&verifyBillID, "bill", "", "Bill identifier in BILL-YYYY-NNNNNN format")
	verifyCmd.Flags().StringVarP(&verifyReview, "review", "r", "", "Review text to verify")
	verifyCmd.Flags().IntVar(&verifyRating, "rating", 0, "Star rating, 1 to 5")
	verifyCmd.Flags().StringVarP(&verifyMediaPath, "media", "m", "", "Path to an image or video attachment (optional)")
	verifyCmd.Flags().StringVar(&verifyAPIBaseURL, "api-url", "", "Verification service base URL (optional, defaults to "+config.EnvAPIBaseURL+" env var)")
	verifyCmd.Flags().IntVar(&verifyPacing, "pacing", 0, "Delay in milliseconds between stages for progressive display")

	rootCmd.AddCommand(verifyCmd)
}

func runVerifyCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Layering: config file under environment under explicit flags.
	var cfg config.Config
	if verifyConfigPath != "" {
		loadedCfg, err := config.LoadConfig(verifyConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loadedCfg
	}
	envCfg := config.FromEnv()
	cfg = envCfg.MergeWithDefaults(cfg)
	if cmd.Flags().Changed("api-url") {
		cfg.APIBaseURL = verifyAPIBaseURL
	}
	if cmd.Flags().Changed("pacing") {
		cfg.PacingMillis = verifyPacing
	}
	cfg = cfg.MergeWithDefaults(config.Config{
		APIBaseURL:          config.DefaultAPIBaseURL,
		StageTimeoutSeconds: int(config.DefaultStageTimeout.Seconds()),
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	req := types.SubmissionRequest{
		BusinessID: verifyBusinessID,
		BillID:     verifyBillID,
		ReviewText: verifyReview,
		Rating:     verifyRating,
	}
	if verifyMediaPath != "" {
		media, err := loadMedia(verifyMediaPath)
		if err != nil {
			return err
		}
		req.Media = media
	}

	printer := observability.NewPrinter(os.Stdout)

	orch := pipeline.New(
		client.New(cfg.APIBaseURL, cfg.APIKey, cfg.StageTimeout()),
		pipeline.Options{
			StageTimeout: cfg.StageTimeout(),
			PacingDelay:  cfg.PacingDelay(),
			OnEvent:      printer.PrintStageEvent,
		},
	)

	result, err := orch.Start(ctx, &req)
	if err != nil {
		printer.PrintError(err)
		return fmt.Errorf("verification failed")
	}

	printer.PrintResult(result)
	return nil
}

// loadMedia reads an attachment from disk and classifies its MIME type from
// the leading bytes, falling back to the file extension for formats the
// sniffer reports as generic.
func loadMedia(path string) (*types.MediaFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read media file: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("media file %s is empty", path)
	}

	mimeType := http.DetectContentType(data)
	if mimeType == "application/octet-stream" {
		switch filepath.Ext(path) {
		case ".mp4":
			mimeType = "video/mp4"
		case ".mov":
			mimeType = "video/quicktime"
		case ".avi":
			mimeType = "video/x-msvideo"
		}
	}

	return &types.MediaFile{
		Filename: filepath.Base(path),
		MIMEType: mimeType,
		Data:     data,
	}, nil
}
