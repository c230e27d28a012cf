package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/fieldscout/internal/export"
	"github.com/sells-group/fieldscout/internal/model"
	"github.com/sells-group/fieldscout/internal/pipeline"
)

var reportCmd = &cobra.Command{
	Use:   "report <dataset>",
	Short: "Run the full survey report pipeline",
	Long:  "Scores and ranks the dataset, enriches the top zones with anchor venues and visiting-time profiles, persists the run, and writes the report file.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("report"); err != nil {
			return err
		}
		ctx := cmd.Context()

		units, excluded, err := loadFiltered(cmd, args[0])
		if err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		p, err := initPipeline(st)
		if err != nil {
			return err
		}

		params := model.RunParams{
			DatasetPath: args[0],
			TopN:        cfg.Pipeline.TopN,
		}
		params.Provinces, _ = cmd.Flags().GetStringSlice("province")
		params.Districts, _ = cmd.Flags().GetStringSlice("district")
		params.Localities, _ = cmd.Flags().GetStringSlice("locality")
		params.AreaIDs, _ = cmd.Flags().GetStringSlice("area")

		res, err := p.Run(ctx, units, excluded, params)
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("out")
		if out != "" {
			if err := writeReport(out, res.Rows); err != nil {
				return err
			}
			zap.L().Info("report written", zap.String("path", out))
		}

		printSummary(res)
		return nil
	},
}

func writeReport(path string, rows []model.ReportRow) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return export.WriteXLSX(path, rows)
	case ".csv":
		return export.WriteCSV(path, rows)
	default:
		return eris.Errorf("unsupported report format %q, use .csv or .xlsx", filepath.Ext(path))
	}
}

func printSummary(res *pipeline.Result) {
	s := res.Summary
	fmt.Fprintf(os.Stdout,
		"Run complete: %d units (%d excluded), %d blocks, %d zones, %d reported, %d with POI, %d with live timing\n",
		s.UnitsLoaded, s.UnitsExcluded, s.AreaBlocks, s.Zones, s.ZonesReported, s.POIFound, s.TimingLive)
	if res.Run != nil {
		fmt.Fprintf(os.Stdout, "Run id: %s\n", res.Run.ID)
	}
}

func init() {
	reportCmd.Flags().String("out", "", "report output path (.csv or .xlsx)")
	addFilterFlags(reportCmd)
	rootCmd.AddCommand(reportCmd)
}
