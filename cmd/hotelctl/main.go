package main

import (
	"fmt"
	"os"

	"hotelbook/cmd/hotelctl/commands"
	"hotelbook/config"
)

func main() {
	config.LoadConfig()

	if err := commands.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
