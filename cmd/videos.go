package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/marquee/youtube"
)

// trailerCmd represents the trailer command
var trailerCmd = &cobra.Command{
	Use:   "trailer <title>",
	Short: "Find the official trailer for a title",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTrailer,
}

// videosCmd represents the videos command
var videosCmd = &cobra.Command{
	Use:   "videos <query>",
	Short: "Search videos",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runVideos,
}

func init() {
	rootCmd.AddCommand(trailerCmd, videosCmd)
}

func requireYouTube() error {
	if youtubeClient == nil {
		return fmt.Errorf("youtube.api_key is not configured")
	}
	return nil
}

func runTrailer(cmd *cobra.Command, args []string) error {
	if err := requireYouTube(); err != nil {
		return err
	}

	title := strings.Join(args, " ")
	video, err := youtubeClient.FindTrailer(cmd.Context(), title)
	if errors.Is(err, youtube.ErrNoTrailer) {
		fmt.Printf("No trailer found for %q.\n", title)
		return nil
	}
	if err != nil {
		fmt.Println(userMessage(err))
		return nil
	}

	fmt.Printf("\n%s\n", video.Title)
	if video.ChannelTitle != "" {
		fmt.Printf("  %s\n", video.ChannelTitle)
	}
	fmt.Printf("  Watch: %s\n", video.WatchURL())
	fmt.Printf("  Embed: %s\n", video.EmbedURL())
	return nil
}

func runVideos(cmd *cobra.Command, args []string) error {
	if err := requireYouTube(); err != nil {
		return err
	}

	query := strings.Join(args, " ")
	videos, err := youtubeClient.SearchVideos(cmd.Context(), query)
	if err != nil {
		fmt.Println(userMessage(err))
		return nil
	}
	if len(videos) == 0 {
		fmt.Printf("No videos found for %q.\n", query)
		return nil
	}

	fmt.Printf("\nVideos for %q (%d):\n\n", query, len(videos))
	for i, v := range videos {
		prefix := "├"
		if i == len(videos)-1 {
			prefix = "╰"
		}
		published := ""
		if !v.PublishedAt.IsZero() {
			published = " · " + v.PublishedAt.Format("2006-01-02")
		}
		fmt.Printf("%s── %s\n", prefix, v.Title)
		fmt.Printf("    %s%s  %s\n", v.ChannelTitle, published, v.WatchURL())
	}
	return nil
}
