package main

import (
	"os"

	"github.com/spf13/cobra"
)

var dotenv string

func main() {
	root := &cobra.Command{
		Use:          "forum",
		Short:        "Threaded discussion board API",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&dotenv, "env", ".env", "optional dotenv file")
	root.AddCommand(serveCmd(), seedCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
