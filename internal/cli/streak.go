package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/pocketpaws/paws/internal/daemon"
)

func init() {
	streakCmd.AddCommand(streakCheckCmd)
	streakCmd.AddCommand(streakFreezeCmd)
	streakFreezeCmd.AddCommand(streakFreezeConsumeCmd)
	rootCmd.AddCommand(streakCmd)
}

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show the daily streak",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := daemon.New()
		if err != nil {
			return err
		}
		defer d.Close()

		rec := d.Streak.Record()
		fmt.Printf("Current streak: %d day(s)\n", rec.Current)
		fmt.Printf("Longest streak: %d day(s)\n", rec.Longest)
		fmt.Printf("Total active days: %d\n", rec.TotalDays)
		fmt.Printf("Freezes banked: %d\n", rec.Freezes)
		if rec.LastLogin != nil {
			fmt.Printf("Last check-in: %s\n", rec.LastLogin.Format("2006-01-02"))
		}
		return nil
	},
}

var streakCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Record today's check-in",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := daemon.New()
		if err != nil {
			return err
		}
		defer d.Close()

		res, err := d.Streak.CheckDaily(time.Now())
		if err != nil {
			return err
		}
		if !res.Updated {
			fmt.Println("Already checked in today.")
			return nil
		}
		fmt.Printf("Checked in — streak is %d day(s)\n", res.Record.Current)
		return nil
	},
}

var streakFreezeCmd = &cobra.Command{
	Use:   "freeze",
	Short: "Bank a streak freeze credit",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := daemon.New()
		if err != nil {
			return err
		}
		defer d.Close()

		if err := d.Streak.AddFreeze(); err != nil {
			return err
		}
		fmt.Printf("Freeze banked — %d available\n", d.Streak.Record().Freezes)
		return nil
	},
}

var streakFreezeConsumeCmd = &cobra.Command{
	Use:   "consume",
	Short: "Spend a freeze to cover a missed day",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := daemon.New()
		if err != nil {
			return err
		}
		defer d.Close()

		if err := d.Streak.ConsumeFreezeOnMiss(time.Now()); err != nil {
			return err
		}
		fmt.Println("Freeze spent — check in now to keep the streak alive.")
		return nil
	},
}
