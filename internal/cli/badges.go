package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/pocketpaws/paws/internal/daemon"
	"github.com/pocketpaws/paws/internal/domain"
)

func init() {
	badgesCmd.AddCommand(badgesRecomputeCmd)
	rootCmd.AddCommand(badgesCmd)
}

var badgesCmd = &cobra.Command{
	Use:   "badges",
	Short: "List badges by category",
	RunE:  runBadges,
}

func runBadges(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	byCat := d.Badges.Badges()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BADGE\tCATEGORY\tPROGRESS\tUNLOCKED")
	for _, cat := range domain.BadgeCategories() {
		for _, b := range byCat[cat] {
			unlocked := "-"
			if b.Unlocked && b.UnlockedAt != nil {
				unlocked = b.UnlockedAt.Format("2006-01-02")
			} else if b.Unlocked {
				unlocked = "yes"
			}
			fmt.Fprintf(w, "%s %s\t%s\t%.0f%%\t%s\n", b.Icon, b.Name, cat, b.Progress*100, unlocked)
		}
	}
	return w.Flush()
}

var badgesRecomputeCmd = &cobra.Command{
	Use:   "recompute",
	Short: "Re-evaluate badge progress against current statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := daemon.New()
		if err != nil {
			return err
		}
		defer d.Close()

		stats := d.Profile.Snapshot(d.Streak.Current())
		newly, err := d.Badges.Recompute(stats, time.Now())
		if err != nil {
			return err
		}
		if len(newly) == 0 {
			fmt.Println("No new badges.")
			return nil
		}
		for _, b := range newly {
			fmt.Printf("Unlocked: %s %s\n", b.Icon, b.Name)
		}
		return nil
	},
}
