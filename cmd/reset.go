/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/BananINT/frontend/internal/clock"
	"github.com/BananINT/frontend/internal/session"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe this session's progress on the server",
	Long: `Asks the server to reset the current session to a brand-new run. This
wipes bananas, upgrades, prestige and skins permanently. Prestige via the
play screen if you want golden bananas instead.`,
	Run: func(cmd *cobra.Command, args []string) {
		if !resetYes {
			fmt.Print("This permanently wipes your run. Type 'reset' to confirm: ")
			scanner := bufio.NewScanner(os.Stdin)
			if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "reset" {
				fmt.Println("Aborted.")
				return
			}
		}

		sess, err := session.New(cmd.Context(), newAuthorityClient(), newIdentity(), clock.RealClock{}, sessionConfig())
		if err != nil {
			fmt.Printf("Error loading session: %v\n", err)
			os.Exit(1)
		}
		if err := sess.Reset(cmd.Context()); err != nil {
			fmt.Printf("Reset failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Run reset. Fresh bananas await.")
	},
}

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}
