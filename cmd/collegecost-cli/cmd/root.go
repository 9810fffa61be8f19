package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"collegecost-backend/lib/configutil"
	"collegecost-backend/lib/scorecard"
	"collegecost-backend/lib/snapshot"
	"collegecost-backend/lib/telemetry"
	"collegecost-backend/services/collegecost"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type Config struct {
	// two-letter state code scoping every fetch
	Region string `json:"region"`
	// directory snapshots are written to
	DataDir string `json:"data_dir"`
	PerPage int    `json:"per_page"`
	// snapshot freshness window
	MaxAgeHours int `json:"max_age_hours"`
	// path to the pipe-delimited occupational dataset
	OccupationData string `json:"occupation_data"`
}

var (
	verbose    bool
	configPath string
	cfg        Config
)

var rootCmd = &cobra.Command{
	Use:   "collegecost-cli",
	Short: "collegecost-cli estimates what a college degree will really cost.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env carries SCORECARD_BASE_URL and SCORECARD_API_KEY; a
		// missing file just means the vars come from the real env
		godotenv.Load()

		telemetry.InitSlog(verbose)
		_, err := telemetry.SetupFromEnv(cmd.Context(), "collegecost-cli")
		if err != nil {
			return err
		}
		if verbose {
			telemetry.InstrumentPerfStats(cmd.Context())
		}

		cfg, err = configutil.ReadConfig[Config](configPath)
		if err != nil && !os.IsNotExist(err) {
			return err
		}
		if cfg.Region == "" {
			cfg.Region = "MA"
		}
		if cfg.DataDir == "" {
			cfg.DataDir = "data"
		}
		if cfg.MaxAgeHours <= 0 {
			cfg.MaxAgeHours = 24
		}
		if cfg.OccupationData == "" {
			cfg.OccupationData = "occupational_data.csv"
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "collegecost.json5", "path to the configuration file")
}

// newService builds the data service for commands that need the
// remote API. Commands that only do local math never pay for missing
// credentials.
func newService() (collegecost.Service, error) {
	client, err := scorecard.NewClientFromEnv()
	if err != nil {
		return collegecost.Service{}, err
	}
	return collegecost.New(collegecost.Options{
		Client:         client,
		Store:          snapshot.NewStore(cfg.DataDir),
		PerPage:        cfg.PerPage,
		MaxSnapshotAge: time.Duration(cfg.MaxAgeHours) * time.Hour,
	}), nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err.Error())
	os.Exit(1)
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
