/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/BananINT/frontend/internal/api"
	"github.com/BananINT/frontend/internal/session"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bananint",
	Short: "Terminal client for the BananINT incremental economy",
	Long: `bananint is the terminal frontend for the BananINT banana economy.

It keeps an optimistic local copy of your run, reconciles it with the
authoritative server on a timer, and credits offline earnings when you
come back. Start playing with:

  bananint play`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.bananint.yaml)")
	rootCmd.PersistentFlags().String("server", "", "base URL of the banana authority (overrides server_url)")
	if err := viper.BindPFlag("server_url", rootCmd.PersistentFlags().Lookup("server")); err != nil {
		cobra.CheckErr(err)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".bananint" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".bananint")
	}

	viper.SetEnvPrefix("bananint")
	viper.AutomaticEnv() // read in environment variables that match

	// A missing config file is fine, the session layer creates one when it
	// first persists an identity.
	_ = viper.ReadInConfig()
}

func serverURL() string {
	if u := viper.GetString("server_url"); u != "" {
		return u
	}
	return "http://localhost:8080"
}

func newAuthorityClient() *api.Client {
	return api.NewClient(serverURL())
}

func newIdentity() *session.Identity {
	return session.NewIdentity(viper.GetViper())
}

// sessionConfig starts from the defaults and applies any tuning keys found
// in the config file. Zero or missing keys keep the default.
func sessionConfig() session.Config {
	cfg := session.DefaultConfig()
	if v := viper.GetInt("click_cooldown_ms"); v > 0 {
		cfg.ClickCooldown = time.Duration(v) * time.Millisecond
	}
	if v := viper.GetInt("tick_interval_ms"); v > 0 {
		cfg.TickInterval = time.Duration(v) * time.Millisecond
	}
	if v := viper.GetInt("sync_interval_seconds"); v > 0 {
		cfg.Sync.Interval = time.Duration(v) * time.Second
	}
	if v := viper.GetInt("sync_staleness_floor_seconds"); v > 0 {
		cfg.Sync.StalenessFloor = time.Duration(v) * time.Second
	}
	if v := viper.GetInt("click_batch_threshold"); v > 0 {
		cfg.Sync.BatchThreshold = v
	}
	return cfg
}
