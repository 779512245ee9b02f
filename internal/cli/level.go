package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/pocketpaws/paws/internal/daemon"
)

func init() {
	rootCmd.AddCommand(levelCmd)
}

var levelCmd = &cobra.Command{
	Use:   "level",
	Short: "Show level and XP progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := daemon.New()
		if err != nil {
			return err
		}
		defer d.Close()

		p := d.Profile.Profile()
		progress := d.Profile.ProgressToNextLevel()

		filled := int(progress * 20)
		bar := strings.Repeat("█", filled) + strings.Repeat("░", 20-filled)

		fmt.Printf("Level %d\n", p.Level)
		fmt.Printf("[%s] %.0f%%\n", bar, progress*100)
		fmt.Printf("%d XP total, %d coins\n", p.XP, p.Coins)
		return nil
	},
}
