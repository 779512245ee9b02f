package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/pocketpaws/paws/internal/daemon"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show a progression summary",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	p := d.Profile.Profile()
	rec := d.Streak.Record()

	fmt.Printf("Level %d  (%d XP, %.0f%% to next)\n", p.Level, p.XP, d.Profile.ProgressToNextLevel()*100)
	fmt.Printf("Coins: %d\n", p.Coins)
	fmt.Printf("Streak: %d day(s)  (longest %d, %d freeze(s) banked)\n", rec.Current, rec.Longest, rec.Freezes)
	fmt.Printf("Quest batch %d/%d  (%.0f%% complete)\n",
		d.Quests.CurrentBatch(), d.Quests.MaxBatch(), d.Quests.BatchCompletion()*100)
	fmt.Printf("Badges unlocked: %d\n", d.Badges.UnlockedCount())

	if pending := d.Quests.PendingRewards(); len(pending) > 0 {
		fmt.Printf("Unclaimed rewards: %d — run 'paws quests claim <id>'\n", len(pending))
	}
	return nil
}
