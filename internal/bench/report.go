package bench

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/natevvv/graph-search/internal/store"
)

// WriteSummary prints one aligned line per finder and queue configuration
func WriteSummary(w io.Writer, summaries []store.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "navigator\tqueue\truns\tinvalid\tavg time\tpq pops\tpq updates\trelaxed\tsettled\trejected\t")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\t\n",
			s.Navigator, s.Queue, s.Count, s.Invalid, s.AverageDuration,
			s.AveragePqPops, s.AveragePqUpdates, s.AverageRelaxed, s.AverageSettled, s.AverageRejected)
	}
	return tw.Flush()
}
