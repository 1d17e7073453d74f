// Package main provides the entry point for the Media Fetch service.
// @title Media Fetch API
// @version 1.0
// @description Download video and audio from any site yt-dlp supports, with optional cookie authentication.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @BasePath /

package main

import (
	_ "github.com/denisAlshanov/mediafetch/docs" // Import for swagger docs
)

func main() {
	Execute()
}
