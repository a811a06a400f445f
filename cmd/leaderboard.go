/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/BananINT/frontend/internal/clock"
	"github.com/BananINT/frontend/internal/economy"
	"github.com/BananINT/frontend/internal/session"
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the global leaderboard",
	Run: func(cmd *cobra.Command, args []string) {
		sess, err := session.New(cmd.Context(), newAuthorityClient(), newIdentity(), clock.RealClock{}, sessionConfig())
		if err != nil {
			fmt.Printf("Error loading session: %v\n", err)
			os.Exit(1)
		}
		sess.ForceSync(cmd.Context())

		board := sess.Leaderboard()
		if len(board) == 0 {
			fmt.Println("Leaderboard is empty (or the server is unreachable).")
			return
		}
		fmt.Println("=== BananINT Leaderboard ===")
		for i, entry := range board {
			rank := entry.Rank
			if rank == 0 {
				rank = i + 1
			}
			fmt.Printf("%3d. %-24s %12s bananas  (prestige %d)\n",
				rank, entry.Name, economy.FormatMagnitude(entry.Bananas), entry.PrestigeCount)
		}
	},
}

func init() {
	rootCmd.AddCommand(leaderboardCmd)
}
