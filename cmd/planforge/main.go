package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"planforge/internal/logging"
)

var (
	// Global flags
	verbose    bool
	configPath string
	workspace  string
	timeout    time.Duration

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "planforge",
	Short: "planforge - research synthesis and account-plan pipeline",
	Long: `planforge turns pre-fetched company research into structured account plans.

The pipeline aggregates labeled source material, asks a generation
collaborator to synthesize it into a summary with flagged conflicts, then
requests a strict-JSON account plan validated against a fixed section
contract. Plans persist in a local JSON store and can be listed, edited,
regenerated section by section, and exported.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// API keys commonly live in a local .env during development
		_ = godotenv.Load()

		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if err := logging.Initialize(workspace); err != nil {
			logger.Warn("category logging unavailable", zap.Error(err))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.CloseAll()
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: <workspace>/.planforge/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", ".", "Workspace directory")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Collaborator timeout (overrides config)")

	// Research flags
	researchCmd.Flags().StringVar(&webFile, "web", "", "JSON file of web search records")
	researchCmd.Flags().StringVar(&newsFile, "news", "", "JSON file of news records")
	researchCmd.Flags().StringVar(&wikiFile, "wiki", "", "JSON file of encyclopedia records")
	researchCmd.Flags().StringVar(&financialFile, "financial", "", "JSON file holding a financial snapshot")
	researchCmd.Flags().BoolVar(&skipPlan, "no-plan", false, "Stop after synthesis, do not generate a plan")

	// Plan subcommands
	plansShowCmd.Flags().BoolVar(&showRaw, "raw", false, "Print raw markdown instead of rendering")
	plansEditCmd.Flags().StringVar(&editContent, "content", "", "Replacement text for the section")
	plansEditCmd.Flags().StringVar(&editInstruct, "instruct", "", "Regenerate the section from this instruction")
	plansExportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Write export to file instead of stdout")
	plansCmd.AddCommand(plansListCmd)
	plansCmd.AddCommand(plansShowCmd)
	plansCmd.AddCommand(plansEditCmd)
	plansCmd.AddCommand(plansExportCmd)

	// Add commands to root
	rootCmd.AddCommand(researchCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(plansCmd)
	rootCmd.AddCommand(statusCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
