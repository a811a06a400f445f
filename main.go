/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/BananINT/frontend/cmd"

func main() {
	cmd.Execute()
}
