package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"philcali.me/barmanager/internal/client"
	"philcali.me/barmanager/internal/cocktaildb"
	"philcali.me/barmanager/internal/config"
	"philcali.me/barmanager/internal/logging"
	"philcali.me/barmanager/internal/provider"
)

var (
	// Global flags
	configPath string
	verbose    bool

	logger    *zap.Logger
	apiClient *client.Client
	external  provider.CocktailProvider
)

var rootCmd = &cobra.Command{
	Use:   "barkeeper",
	Short: "Edit, price and publish cocktail recipes of a bar manager workspace",
	Long: `barkeeper works against one workspace of the bar manager API.

Recipes are YAML drafts. They are validated and priced locally against the
workspace catalog before anything is sent.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if verbose {
			cfg.Logging.Level = "debug"
		}
		if err := cfg.ValidateClient(); err != nil {
			return err
		}
		logger, err = logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		apiClient = client.New(cfg.API.BaseURL, cfg.API.Token, time.Duration(cfg.API.Timeout), logger)
		external = cocktaildb.NewDefaultCocktailClient()
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the ingredients, glasses and garnishes of the workspace",
	Args:  cobra.NoArgs,
	RunE:  runCatalog,
}

var validateCmd = &cobra.Command{
	Use:   "validate [draft.yaml]",
	Short: "Check a recipe draft and list every problem",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

var priceCmd = &cobra.Command{
	Use:   "price [draft.yaml]",
	Short: "Compute the ingredient cost of a recipe draft",
	Args:  cobra.ExactArgs(1),
	RunE:  runPrice,
}

var submitCmd = &cobra.Command{
	Use:   "submit [draft.yaml]",
	Short: "Create the cocktail, or update it when the draft has an id",
	Args:  cobra.ExactArgs(1),
	RunE:  runSubmit,
}

var garnishCmd = &cobra.Command{
	Use:   "garnish [garnish.yaml]",
	Short: "Create or update a garnish",
	Args:  cobra.ExactArgs(1),
	RunE:  runGarnish,
}

var importCmd = &cobra.Command{
	Use:   "import [name]",
	Short: "Write a draft for a TheCocktailDB recipe, matched to the workspace catalog",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runImport,
}

var cocktailsCmd = &cobra.Command{
	Use:   "cocktails [filter]",
	Short: "List cocktails whose name or tags match the filter",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCocktails,
}

var exportCmd = &cobra.Command{
	Use:   "export [cocktailId]",
	Short: "Write an existing cocktail as a draft for editing",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (env overrides apply)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(priceCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(garnishCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(cocktailsCmd)
	rootCmd.AddCommand(exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
