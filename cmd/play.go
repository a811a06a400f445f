/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/BananINT/frontend/internal/clock"
	"github.com/BananINT/frontend/internal/session"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start an interactive play session",
	Long: `Starts the full-screen banana clicker. The session loads your persisted
identity, credits any offline earnings, and keeps syncing with the server
in the background while you play.`,
	Run: func(cmd *cobra.Command, args []string) {
		sess, err := session.New(cmd.Context(), newAuthorityClient(), newIdentity(), clock.RealClock{}, sessionConfig())
		if err != nil {
			fmt.Printf("Error starting session: %v\n", err)
			os.Exit(1)
		}
		sess.Start()
		defer sess.Close()

		if err := RunTUI(sess, serverURL()); err != nil {
			fmt.Printf("Fatal TUI Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
}
