// Package main provides the vartitle command-line tool.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/clingen-dx/vartitle/internal/clients"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	verbose bool
	logger  = zap.NewNop()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "vartitle",
		Short:   "Compute preferred titles for curated genomic variants",
		Version: fmt.Sprintf("%s (%s) built %s", version, commit, date),
		Long: `vartitle resolves the preferred human-readable title for a genomic
variant, combining MANE transcripts, ClinVar curated titles, canonical
transcripts and genomic HGVS names in trust order.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			initConfig()
			return initLogger()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(newTitleCmd())
	root.AddCommand(newResolveCmd())
	root.AddCommand(newCacheCmd())
	root.AddCommand(newConfigCmd())

	return root
}

func initConfig() {
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
	}
	viper.SetConfigName(".vartitle")
	viper.SetConfigType("yaml")

	// A missing config file is fine; flags and env cover everything.
	_ = viper.ReadInConfig()
}

func initLogger() error {
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		logger, err = cfg.Build()
	}
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	return nil
}

// endpoints resolves the external service endpoints: environment first,
// then config file overrides.
func endpoints() (clients.Endpoints, error) {
	e, err := clients.EndpointsFromEnv()
	if err != nil {
		return clients.Endpoints{}, err
	}
	if v := viper.GetString("endpoints.car"); v != "" {
		e.CARAllele = v
	}
	if v := viper.GetString("endpoints.clinvar"); v != "" {
		e.ClinVarEfetch = v
	}
	if v := viper.GetString("endpoints.vep"); v != "" {
		e.EnsemblVEP = v
	}
	return e, nil
}

// cachePath returns the DuckDB cache location: config value if set, else
// ~/.vartitle.duckdb.
func cachePath() string {
	if v := viper.GetString("cache.path"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".vartitle.duckdb"
	}
	return filepath.Join(home, ".vartitle.duckdb")
}
