/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/BananINT/frontend/internal/clock"
	"github.com/BananINT/frontend/internal/economy"
	"github.com/BananINT/frontend/internal/session"
)

var nameCmd = &cobra.Command{
	Use:   "name <display-name>",
	Short: "Set your display name and submit your score",
	Long: `Submits your current run to the leaderboard under the given display
name. The name is persisted locally and reused for later submissions.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := strings.TrimSpace(strings.Join(args, " "))

		sess, err := session.New(cmd.Context(), newAuthorityClient(), newIdentity(), clock.RealClock{}, sessionConfig())
		if err != nil {
			fmt.Printf("Error loading session: %v\n", err)
			os.Exit(1)
		}

		board, err := sess.SubmitScore(cmd.Context(), name)
		if err != nil {
			fmt.Printf("Submission failed: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Score submitted as %s.\n", name)
		for i, entry := range board {
			if i >= 10 {
				break
			}
			marker := "  "
			if entry.Name == name {
				marker = "->"
			}
			fmt.Printf("%s %3d. %-24s %12s bananas\n",
				marker, i+1, entry.Name, economy.FormatMagnitude(entry.Bananas))
		}
	},
}

func init() {
	rootCmd.AddCommand(nameCmd)
}
