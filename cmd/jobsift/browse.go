package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/akhilm/jobsift/internal/browse"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the saved collection interactively (TUI)",
	Long:  "Opens a list/detail TUI over the persisted postings with role filtering.",
	RunE:  runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	st, closeStore, err := setupStore(cfg)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	postings, err := st.Load()
	if err != nil {
		logger.Error("failed to load collection", "error", err)
		os.Exit(1)
	}
	if len(postings) == 0 {
		fmt.Println("No saved postings yet — run `jobsift run` first.")
		return nil
	}

	return browse.Run(postings)
}
