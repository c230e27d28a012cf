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

var areasCmd = &cobra.Command{
	Use:   "areas <dataset>",
	Short: "Score a dataset and print the area block breakdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("areas"); err != nil {
			return err
		}

		units, _, err := loadFiltered(cmd, args[0])
		if err != nil {
			return err
		}

		scoring.Apply(units)
		blocks := aggregate.Areas(units)
		sort.SliceStable(blocks, func(i, j int) bool { return blocks[i].Score > blocks[j].Score })

		if regions, _ := cmd.Flags().GetBool("regions"); regions {
			formatRegions(os.Stdout, blocks)
			return nil
		}

		formatBlocks(os.Stdout, blocks)
		return nil
	},
}

// formatRegions prints the distinct province/district/locality combinations
// present in the dataset, with block counts.
func formatRegions(out io.Writer, blocks []model.AreaBlock) {
	type region struct{ province, district, locality string }

	counts := make(map[region]int)
	var order []region
	for _, b := range blocks {
		r := region{b.Province, b.District, b.Locality}
		if _, seen := counts[r]; !seen {
			order = append(order, r)
		}
		counts[r]++
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].province != order[j].province {
			return order[i].province < order[j].province
		}
		if order[i].district != order[j].district {
			return order[i].district < order[j].district
		}
		return order[i].locality < order[j].locality
	})

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "PROVINCE\tDISTRICT\tLOCALITY\tBLOCKS")
	_, _ = fmt.Fprintln(w, "--------\t--------\t--------\t------")
	for _, r := range order {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", r.province, r.district, r.locality, counts[r])
	}
	_ = w.Flush()
}

func formatBlocks(out io.Writer, blocks []model.AreaBlock) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "AREA\tLOCALITY\tSCORE\tLABEL\tUNITS\tAVAIL\tAGE\tSTATUS")
	_, _ = fmt.Fprintln(w, "----\t--------\t-----\t-----\t-----\t-----\t---\t------")

	for _, b := range blocks {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%.1f\t%s\t%d\t%.0f\t%.0f\t%s\n",
			b.ID, b.Locality, b.Score, b.Label, b.UnitCount, b.AvailablePorts, b.AvgAgeDays, b.Status)
	}
	_ = w.Flush()
}

func init() {
	areasCmd.Flags().Bool("regions", false, "list distinct province/district/locality combinations instead of blocks")
	addFilterFlags(areasCmd)
	rootCmd.AddCommand(areasCmd)
}
