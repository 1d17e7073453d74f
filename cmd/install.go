package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/denisAlshanov/mediafetch/internal/services/extractor"
)

var installCmd = &cobra.Command{
	Use:   "install-ytdlp",
	Short: "Download a yt-dlp binary into the user cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := extractor.Install(cmd.Context()); err != nil {
			return fmt.Errorf("installing yt-dlp: %w", err)
		}
		fmt.Println("yt-dlp is installed")
		return nil
	},
}
