package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/franz/recipedb/internal/pipeline"
	"github.com/franz/recipedb/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Version is set at build time
	Version = "dev"

	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "recipedb",
		Short: "Build a SQLite recipe snapshot from the Food.com CSV export",
		Long: `recipedb reads a bounded prefix of RAW_recipes.csv, cleans every value,
and writes a fresh SQLite snapshot with recipes, normalized recipe
ingredients and (optionally) interactions filtered to the kept recipes.

Running recipedb without a subcommand performs a build with the
configured (or built-in) settings and prints the table row counts as JSON.`,
		Version:       Version,
		RunE:          runBuild,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./configs/recipedb.yaml)")
	flags.String("db", pipeline.DefaultDatabasePath, "output snapshot database file")
	flags.String("recipes", pipeline.DefaultRecipesPath, "recipe CSV (required input)")
	flags.String("interactions-validation", pipeline.DefaultValidationPath, "validation interaction log (optional)")
	flags.String("interactions-test", pipeline.DefaultTestPath, "test interaction log (optional)")
	flags.BoolP("verbose", "v", false, "verbose output")
	flags.BoolP("quiet", "q", false, "quiet output (errors only)")

	// Bind flags to viper
	for _, name := range []string{"db", "recipes", "interactions-validation", "interactions-test", "verbose", "quiet"} {
		viper.BindPFlag(name, flags.Lookup(name))
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
		viper.SetConfigName("recipedb")
		viper.SetConfigType("yaml")
	}

	// RECIPEDB_MAX_RECIPES overrides max-recipes, and so on
	viper.SetEnvPrefix("RECIPEDB")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	util.SetVerbose(viper.GetBool("verbose"))
	util.SetQuiet(viper.GetBool("quiet"))
	util.SetColors(util.IsTerminal(os.Stderr.Fd()))

	if err := viper.ReadInConfig(); err == nil {
		util.InfoLog("Using config file: %s", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
