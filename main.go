package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AmrAfifiy/kotlin/colors"
	"github.com/AmrAfifiy/kotlin/internal/compiler"
	"github.com/AmrAfifiy/kotlin/internal/config"
	"github.com/AmrAfifiy/kotlin/internal/storage"
)

const version = "0.1.0"

var (
	rootCmd = &cobra.Command{
		Use:     "firres [command]",
		Short:   "Lazy declaration resolution and annotation inspection over YAML fixtures",
		Version: version,
	}
	configPath string
	debug      bool
	dbPath     string
	findId     string
	summary    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		colors.RED.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug output")

	checkCmd.Flags().BoolVarP(&summary, "summary", "s", false, "Print a resolution summary")
	indexCmd.Flags().StringVar(&dbPath, "db", "", "Path to the annotation index database (SQLite)")
	indexCmd.Flags().StringVar(&findId, "find", "", "List indexed annotations of this class id instead of indexing")

	rootCmd.AddCommand(checkCmd, classIdsCmd, bindCmd, contractsCmd, indexCmd, scenariosCmd, replCmd)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	colors.SetEnabled(cfg.Color)
	return cfg, nil
}

// run compiles files and prints the trace and diagnostics. It fails only
// when the fixtures could not be resolved at all.
func run(cmd *cobra.Command, files []string) (compiler.Result, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return compiler.Result{}, nil, err
	}
	result := compiler.Compile(cmd.Context(), &compiler.Options{
		Files:     files,
		Config:    cfg,
		Debug:     debug,
		LogFormat: compiler.ANSI,
	})
	fmt.Fprint(cmd.ErrOrStderr(), result.Output)
	if result.Session() == nil {
		return result, cfg, fmt.Errorf("could not resolve %v", files)
	}
	return result, cfg, nil
}

var checkCmd = &cobra.Command{
	Use:   "check <fixture>...",
	Short: "Resolve every declaration and report diagnostics",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, _, err := run(cmd, args)
		if err != nil {
			return err
		}
		if summary {
			result.Pipeline.PrintSummary(cmd.OutOrStdout())
		}
		if !result.Success {
			return fmt.Errorf("%d error(s)", result.Session().Diagnostics().ErrorCount())
		}
		return nil
	},
}

var classIdsCmd = &cobra.Command{
	Use:   "classids <declaration> <fixture>...",
	Short: "List the annotation classes of a declaration",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, _, err := run(cmd, args[1:])
		if err != nil {
			return err
		}
		ids, err := compiler.ClassIds(cmd.Context(), result.Session(), args[0])
		if err != nil {
			return err
		}
		for _, id := range ids {
			fmt.Fprintln(cmd.OutOrStdout(), id)
		}
		return nil
	},
}

var bindCmd = &cobra.Command{
	Use:   "bind <declaration> <fixture>...",
	Short: "Show how the annotation arguments of a declaration bind to parameters",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, _, err := run(cmd, args[1:])
		if err != nil {
			return err
		}
		lines, err := compiler.Bindings(cmd.Context(), result.Session(), args[0])
		if err != nil {
			return err
		}
		for _, l := range lines {
			fmt.Fprintln(cmd.OutOrStdout(), l)
		}
		return nil
	},
}

var contractsCmd = &cobra.Command{
	Use:   "contracts <fixture>...",
	Short: "Print the resolved contract of every function",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, _, err := run(cmd, args)
		if err != nil {
			return err
		}
		for _, l := range compiler.Contracts(result.Symbols) {
			fmt.Fprintln(cmd.OutOrStdout(), l)
		}
		return nil
	},
}

var indexCmd = &cobra.Command{
	Use:   "index [fixture]...",
	Short: "Store the annotation index of the fixtures in SQLite, or query it with --find",
	RunE: func(cmd *cobra.Command, args []string) error {
		if findId == "" && len(args) == 0 {
			return fmt.Errorf("index needs fixtures or --find")
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		path := dbPath
		if path == "" {
			path = cfg.Storage.Path
		}
		store, err := storage.NewSQLiteStore(path)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer store.Close()

		if findId != "" {
			return find(cmd.Context(), cmd, store)
		}

		result, _, err := run(cmd, args)
		if err != nil {
			return err
		}
		if err := result.Pipeline.Save(cmd.Context(), store); err != nil {
			return err
		}
		colors.GREEN.Fprintf(cmd.OutOrStdout(), "✓ %d annotation(s) saved to %s\n", len(result.Pipeline.Records()), path)
		return nil
	},
}

var scenariosCmd = &cobra.Command{
	Use:   "scenarios <file.md>...",
	Short: "Run the resolution scenarios of Markdown documents",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		failed := 0
		for _, path := range args {
			doc, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			results, err := compiler.RunScenarios(cmd.Context(), doc, cfg)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			failed += compiler.Report(results, cmd.OutOrStdout())
		}
		if failed > 0 {
			return fmt.Errorf("%d scenario(s) failed", failed)
		}
		return nil
	},
}

func find(ctx context.Context, cmd *cobra.Command, store storage.IndexStore) error {
	records, err := store.FindByClassId(ctx, findId)
	if err != nil {
		return err
	}
	for _, r := range records {
		line := fmt.Sprintf("%s#%d", r.Declaration, r.Position)
		for _, a := range r.Arguments {
			line += fmt.Sprintf(" %s=%s", a.Name, a.Rendered)
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return nil
}
