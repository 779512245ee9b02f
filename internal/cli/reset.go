package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/pocketpaws/paws/internal/daemon"
)

func init() {
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear all progression state",
	Long:  `Delete every quest, streak, badge, and profile record and return to first-run defaults.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes {
			fmt.Print("This wipes all progression. Type 'reset' to confirm: ")
			line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if strings.TrimSpace(line) != "reset" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		d, err := daemon.New()
		if err != nil {
			return err
		}
		defer d.Close()

		if err := d.ResetAll(); err != nil {
			return err
		}
		fmt.Println("Progression cleared.")
		return nil
	},
}
