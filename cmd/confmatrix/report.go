package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"confmatrix/internal/adapters/reportout"
	"confmatrix/internal/core/version"
	"confmatrix/internal/modkit"
	"confmatrix/internal/modkit/module"
	"confmatrix/internal/platform/config"
	perr "confmatrix/internal/platform/errors"
	"confmatrix/internal/platform/logger"
	"confmatrix/internal/platform/store"
	"confmatrix/internal/services/report/domain"
	reportmod "confmatrix/internal/services/report/module"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type reportFlags struct {
	config string
	data   string
	source string
	table  string
	output string
}

func newReportCmd() *cobra.Command {
	var f reportFlags
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Group experiment results into chart series and render them",
		Example: `  confmatrix report -c visualize_config.yaml --data exps.json
  confmatrix report -c visualize_config.yaml --source pg --table experiments -o out`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error { return runReport(cmd, f, time.Now) },
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.config, "config", "c", "visualize_config.yaml", "query file with x_axis, y_axis, group_by and filters")
	fl.StringVar(&f.data, "data", "", "experiments json file, overrides CORE_REPORT_FILE")
	fl.StringVar(&f.source, "source", "", "experiment source: file, pg or ch, overrides CORE_REPORT_SOURCE")
	fl.StringVar(&f.table, "table", "", "table holding experiment documents, overrides CORE_REPORT_TABLE")
	fl.StringVarP(&f.output, "output", "o", "", "output directory, defaults to output/<timestamp>")
	return cmd
}

func runReport(cmd *cobra.Command, f reportFlags, now func() time.Time) error {
	q, err := loadQuery(f.config)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	root := config.New()
	overrides := reportmod.Options{Source: f.source, File: f.data, Table: f.table}

	st, err := openStore(ctx, root, overrides.Source)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Get().Error().Err(err).Msg("failed to close store")
		}
	}()

	rm, err := reportmod.New(modkit.FromStore(root, *logger.Named("cli"), st), overrides)
	if err != nil {
		return err
	}
	rep, err := module.MustPortsOf[reportmod.Ports](rm).Reporter.Build(ctx, q)
	if err != nil {
		return err
	}

	dir := f.output
	if dir == "" {
		dir = filepath.Join("output", now().Format("2006-01-02_15-04-05"))
	}
	files, err := reportout.WriteDir(dir, q, rep)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d experiments loaded, %d matched, %d skipped\n", rep.Loaded, rep.Matched, rep.Skipped)
	for _, p := range files {
		fmt.Fprintln(out, p)
	}
	return nil
}

// loadQuery decodes the visualize config, rejecting unknown keys
func loadQuery(path string) (domain.Query, error) {
	var q domain.Query
	fh, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return q, perr.WithOp(perr.NotFoundf("query file %s not found", path), path)
		}
		return q, perr.WithOp(err, path)
	}
	defer func() { _ = fh.Close() }()

	dec := yaml.NewDecoder(fh)
	dec.KnownFields(true)
	if err := dec.Decode(&q); err != nil {
		return q, perr.WithOp(perr.InvalidArgf("invalid yaml: %v", err), path)
	}
	return q, nil
}

// openStore opens backends only for db sources, so file reports need no database env
func openStore(ctx context.Context, root config.Conf, source string) (*store.Store, error) {
	if source == "" {
		source = reportmod.FromConfig(root).Source
	}
	if source == reportmod.SourceFile {
		return nil, nil
	}
	st, err := store.Open(ctx, store.FromEnv(root),
		store.WithLogger(*logger.Named("store")),
		store.WithClient("confmatrix", "cli", version.Info("").Version),
	)
	if err != nil {
		return nil, err
	}
	if err := st.Guard(ctx); err != nil {
		_ = st.Close()
		return nil, perr.Wrapf(err, perr.ErrorCodeDB, "report source %s unreachable", source)
	}
	return st, nil
}
