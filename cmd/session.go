/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage the persisted session identity",
	Long: `Shows or changes the session id this client plays as. The id is stored
in the config file and sent to the server on every request, so switching
it swaps you onto a different run the next time you play.`,
}

var sessionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current session id and player name",
	Run: func(cmd *cobra.Command, args []string) {
		identity := newIdentity()
		id := identity.Resolve()
		if id == "" {
			fmt.Println("No session yet. One will be minted on your first play.")
			return
		}
		fmt.Printf("Session: %s\n", id)
		if name := identity.Name(); name != "" {
			fmt.Printf("Player:  %s\n", name)
		}
	},
}

var sessionSwitchCmd = &cobra.Command{
	Use:   "switch <session-id>",
	Short: "Switch to an existing session id",
	Long: `Replaces the persisted session id. Local state is discarded, not merged;
the next play loads the target session's authoritative state from the
server and credits its offline earnings.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		identity := newIdentity()
		if err := identity.Persist(args[0]); err != nil {
			fmt.Printf("Error saving session id: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Now playing as %s.\n", args[0])
	},
}

var sessionNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Forget the current session and start fresh",
	Run: func(cmd *cobra.Command, args []string) {
		identity := newIdentity()
		if err := identity.Clear(); err != nil {
			fmt.Printf("Error clearing session: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Session cleared. The server mints a new one next time you play.")
	},
}

func init() {
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionSwitchCmd)
	sessionCmd.AddCommand(sessionNewCmd)
	rootCmd.AddCommand(sessionCmd)
}
