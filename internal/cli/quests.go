package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/pocketpaws/paws/internal/daemon"
)

func init() {
	questsIncrementCmd.Flags().IntVar(&questAmount, "amount", 1, "Amount to add")
	questsCmd.AddCommand(questsIncrementCmd)
	questsCmd.AddCommand(questsClaimCmd)
	questsCmd.AddCommand(questsCompleteBatchCmd)
	rootCmd.AddCommand(questsCmd)
}

var questAmount int

var questsCmd = &cobra.Command{
	Use:   "quests",
	Short: "List the quest catalog and progress",
	RunE:  runQuests,
}

func runQuests(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	current := d.Quests.CurrentBatch()
	fmt.Printf("Batch %d of %d\n\n", current, d.Quests.MaxBatch())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tQUEST\tBATCH\tPROGRESS\tREWARD")
	for _, q := range d.Quests.Quests() {
		marker := ""
		if q.Batch == current {
			marker = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%d%s\t%d/%d\t%d XP, %d coins\n",
			q.ID, q.Title, q.Batch, marker, q.Completed, q.Target, q.RewardXP, q.RewardCoins)
	}
	return w.Flush()
}

var questsIncrementCmd = &cobra.Command{
	Use:   "increment <id>",
	Short: "Add progress to a quest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := daemon.New()
		if err != nil {
			return err
		}
		defer d.Close()

		if err := d.Quests.IncrementQuest(args[0], questAmount); err != nil {
			return err
		}
		fmt.Printf("Progress added to %s (+%s)\n", args[0], strconv.Itoa(questAmount))
		return nil
	},
}

var questsClaimCmd = &cobra.Command{
	Use:   "claim <id>",
	Short: "Claim a completed quest's reward",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := daemon.New()
		if err != nil {
			return err
		}
		defer d.Close()

		level, leveledUp, err := d.Quests.ClaimReward(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Reward claimed for %s\n", args[0])
		if leveledUp {
			fmt.Printf("Level up! You are now level %d\n", level)
		}
		return nil
	},
}

var questsCompleteBatchCmd = &cobra.Command{
	Use:    "complete-batch",
	Short:  "Force-complete every quest in the active batch (debug)",
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := daemon.New()
		if err != nil {
			return err
		}
		defer d.Close()

		d.Quests.CompleteAllInCurrentBatch()
		fmt.Printf("Batch complete — now on batch %d\n", d.Quests.CurrentBatch())
		return nil
	},
}
