// Package cli implements the markergen command line.
//
//	markergen generate [dir]   write the marker methods of a package
//	markergen check [dir]      report annotation errors without writing
//	markergen schema [dir]     print the derived display schemas
//	markergen version          print the version
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/reoring/profmarker"
	"github.com/reoring/profmarker/i18n"
	"github.com/reoring/profmarker/internal/config"
	"github.com/reoring/profmarker/internal/extract"
	"github.com/reoring/profmarker/internal/gen"
	"github.com/reoring/profmarker/internal/ir"
	"github.com/reoring/profmarker/internal/logging"
)

// Version is reported by `markergen version`. Overridden at link time.
var Version = "0.1.0"

// ErrDiagnostics is returned when a package has annotation errors. The
// individual diagnostics have already been printed.
var ErrDiagnostics = errors.New("marker derivation failed")

type globalOptions struct {
	configFile string
	logLevel   string
	lang       string
}

func BuildCLI() *cobra.Command {
	g := &globalOptions{}
	rootCmd := &cobra.Command{
		Use:   "markergen",
		Short: "Generate profiler marker schemas from annotated Go structs",
		Long: `markergen reads struct types annotated with //marker: directives and
generates MarkerTypeName, MarkerTypeDisplay and StreamJSONMarkerData for each.
The display schema and the data writer come from one walk over the fields, so
they always list the same keys in the same order.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&g.configFile, "config", "c", "", "config file (default: markergen.yaml in the package directory)")
	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&g.lang, "lang", "", "diagnostic language: en or ja")

	rootCmd.AddCommand(buildGenerateCommand(g))
	rootCmd.AddCommand(buildCheckCommand(g))
	rootCmd.AddCommand(buildSchemaCommand(g))
	rootCmd.AddCommand(buildVersionCommand())
	return rootCmd
}

// env is the state shared by the subcommands after flags and config are
// resolved.
type env struct {
	dir string
	cfg config.Config
	log zerolog.Logger
}

func setup(cmd *cobra.Command, g *globalOptions, args []string) (*env, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	cfg, err := config.Load(dir, g.configFile)
	if err != nil {
		return nil, err
	}
	if g.logLevel != "" {
		cfg.LogLevel = g.logLevel
	}
	if g.lang != "" {
		cfg.Lang = g.lang
	}
	i18n.SetLanguage(cfg.Lang)
	return &env{
		dir: dir,
		cfg: cfg,
		log: logging.New(cmd.ErrOrStderr(), cfg.LogLevel),
	}, nil
}

// extract runs the extractor and prints any diagnostics to stderr.
func (e *env) extract(cmd *cobra.Command) (ir.Package, error) {
	pkg, err := extract.Dir(e.dir, extract.Options{
		Types:      e.cfg.Types,
		ChartLabel: e.cfg.ChartLabel,
		Logger:     e.log,
	})
	if err == nil {
		return pkg, nil
	}
	diags, ok := profmarker.AsDiagnostics(err)
	if !ok {
		return pkg, err
	}
	for _, d := range diags {
		fmt.Fprintln(cmd.ErrOrStderr(), d.String())
	}
	e.log.Error().Int("count", len(diags)).Str("dir", e.dir).Msg("marker derivation failed")
	return pkg, ErrDiagnostics
}

func buildGenerateCommand(g *globalOptions) *cobra.Command {
	var (
		types      []string
		output     string
		runtime    string
		chartLabel string
	)
	cmd := &cobra.Command{
		Use:   "generate [dir]",
		Short: "Generate marker methods for a package",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd, g, args)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("type") {
				e.cfg.Types = types
			}
			if flags.Changed("output") {
				e.cfg.Output = output
			}
			if flags.Changed("runtime") {
				e.cfg.RuntimeImport = runtime
			}
			if flags.Changed("chart-label") {
				e.cfg.ChartLabel = chartLabel
			}

			pkg, err := e.extract(cmd)
			if err != nil {
				return err
			}
			code, err := gen.RenderPackage(pkg, e.cfg.RuntimeImport, "markergen")
			if err != nil {
				return err
			}
			if e.cfg.Output == "-" {
				_, err = cmd.OutOrStdout().Write(code)
				return err
			}
			out := e.cfg.Output
			if !filepath.IsAbs(out) {
				out = filepath.Join(e.dir, out)
			}
			if err := os.WriteFile(out, code, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			e.log.Info().Str("file", out).Int("types", len(pkg.Records)).Msg("generated marker methods")
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&types, "type", "t", nil, "comma-separated struct types to generate (default: every type with //marker:display)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file relative to the package directory, or - for stdout")
	cmd.Flags().StringVar(&runtime, "runtime", "", "import path of the marker runtime package")
	cmd.Flags().StringVar(&chartLabel, "chart-label", "", "default chart label of generated schemas")
	return cmd
}

func buildCheckCommand(g *globalOptions) *cobra.Command {
	var types []string
	cmd := &cobra.Command{
		Use:   "check [dir]",
		Short: "Check marker annotations without writing files",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd, g, args)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("type") {
				e.cfg.Types = types
			}
			pkg, err := e.extract(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d marker types in package %s\n", len(pkg.Records), pkg.Name)
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&types, "type", "t", nil, "comma-separated struct types to check")
	return cmd
}

func buildSchemaCommand(g *globalOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "schema [dir]",
		Short: "Print the display schemas derived for a package",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "yaml" {
				return fmt.Errorf("unsupported format %q (want json or yaml)", format)
			}
			e, err := setup(cmd, g, args)
			if err != nil {
				return err
			}
			pkg, err := e.extract(cmd)
			if err != nil {
				return err
			}
			docs := make([]profmarker.Document, 0, len(pkg.Records))
			for _, rec := range pkg.Records {
				docs = append(docs, gen.Schema(rec).Document(rec.Name))
			}
			return writeDocuments(cmd.OutOrStdout(), docs, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")
	return cmd
}

func writeDocuments(w io.Writer, docs []profmarker.Document, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(docs); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		b, err := json.MarshalIndent(docs, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err = w.Write(append(b, '\n'))
		return err
	}
}

func buildVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the markergen version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "markergen %s\n", Version)
		},
	}
}
