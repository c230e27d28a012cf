package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/fieldscout/internal/aggregate"
	"github.com/sells-group/fieldscout/internal/model"
	"github.com/sells-group/fieldscout/internal/scoring"
)

var rankCmd = &cobra.Command{
	Use:   "rank <dataset>",
	Short: "Score a dataset and print the ranked zones",
	Long:  "Loads a unit dataset, scores every unit, aggregates into area blocks and zones, and prints the zone ranking. No external lookups and nothing is persisted.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("rank"); err != nil {
			return err
		}

		units, _, err := loadFiltered(cmd, args[0])
		if err != nil {
			return err
		}

		scoring.Apply(units)
		zones := aggregate.Zones(aggregate.Areas(units))
		sort.SliceStable(zones, func(i, j int) bool { return zones[i].Score > zones[j].Score })

		top, _ := cmd.Flags().GetInt("top")
		if top > 0 && len(zones) > top {
			zones = zones[:top]
		}

		formatZones(os.Stdout, zones)
		return nil
	},
}

func formatZones(out io.Writer, zones []model.Zone) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "RANK\tZONE\tSCORE\tLABEL\tBLOCKS\tUNITS\tAVAIL\tSTATUS")
	_, _ = fmt.Fprintln(w, "----\t----\t-----\t-----\t------\t-----\t-----\t------")

	for i, z := range zones {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%.1f\t%s\t%d\t%d\t%.0f\t%s\n",
			i+1, z.ID, z.Score, z.Label, z.BlockCount, z.UnitCount, z.AvailablePorts, z.Status)
	}
	_ = w.Flush()
}

func init() {
	rankCmd.Flags().Int("top", 0, "show only the top N zones (0 = all)")
	addFilterFlags(rankCmd)
	rootCmd.AddCommand(rankCmd)
}
