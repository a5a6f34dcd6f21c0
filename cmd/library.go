package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/marquee/tmdb"
)

var (
	profileImage    string
	profileChildren bool
)

// mylistCmd represents the watchlist command
var mylistCmd = &cobra.Command{
	Use:   "mylist",
	Short: "Show your saved titles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		movies, err := store.Watchlist(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Print(formatter.FormatMovieList("My List", movies, tmdb.FormatOptions{
			ShowDetails:  showDetails,
			ShowOverview: showDetails,
		}))
		return nil
	},
}

var mylistAddCmd = &cobra.Command{
	Use:   "add <id>",
	Short: "Save a movie to your list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id, err := parseMovieID(args[0])
		if err != nil {
			return err
		}
		if err := requireTMDB(); err != nil {
			return err
		}

		movie, err := tmdbClient.MovieDetails(ctx, id)
		if err != nil {
			fmt.Println(userMessage(err))
			return nil
		}

		added, err := store.AddToWatchlist(ctx, *movie)
		if err != nil {
			return err
		}
		if !added {
			fmt.Printf("%s is already in My List.\n", movie.DisplayTitle())
			return nil
		}
		fmt.Printf("✓ Added %s to My List.\n", movie.DisplayTitle())
		return nil
	},
}

var mylistRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a movie from your list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseMovieID(args[0])
		if err != nil {
			return err
		}

		removed, err := store.RemoveFromWatchlist(cmd.Context(), id)
		if err != nil {
			return err
		}
		if !removed {
			fmt.Printf("Movie %d is not in My List.\n", id)
			return nil
		}
		fmt.Printf("Removed movie %d from My List.\n", id)
		return nil
	},
}

// profilesCmd represents the profiles command
var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Show who's watching",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		profiles, err := store.Profiles(ctx)
		if err != nil {
			return err
		}
		selected, err := store.SelectedProfile(ctx)
		if err != nil {
			return err
		}

		fmt.Println("\nWho's watching?")
		for _, p := range profiles {
			marker := " "
			if p.ID == selected.ID {
				marker = "▸"
			}
			kind := ""
			if p.IsChildren {
				kind = " (children)"
			}
			fmt.Printf("%s %-12s%s  %s\n", marker, p.Name, kind, p.ID)
		}
		return nil
	},
}

var profilesSelectCmd = &cobra.Command{
	Use:   "select <name|id>",
	Short: "Switch the active profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		profile, err := store.FindProfile(ctx, args[0])
		if err != nil {
			return err
		}
		if err := store.SelectProfile(ctx, profile.ID); err != nil {
			return err
		}
		fmt.Printf("Now watching as %s.\n", profile.Name)
		return nil
	},
}

var profilesRenameCmd = &cobra.Command{
	Use:   "rename <name|id> <new name>",
	Short: "Edit a profile",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		profile, err := store.FindProfile(ctx, args[0])
		if err != nil {
			return err
		}

		children := profile.IsChildren
		if cmd.Flags().Changed("children") {
			children = profileChildren
		}

		updated, err := store.UpdateProfile(ctx, profile.ID, strings.Join(args[1:], " "), profileImage, children)
		if err != nil {
			return err
		}
		fmt.Printf("Renamed %s to %s.\n", profile.Name, updated.Name)
		return nil
	},
}

// likedCmd represents the liked titles command
var likedCmd = &cobra.Command{
	Use:   "liked",
	Short: "Show titles you liked",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		liked, err := store.Liked(cmd.Context())
		if err != nil {
			return err
		}
		if len(liked) == 0 {
			fmt.Println("You have not liked anything yet.")
			return nil
		}
		fmt.Printf("\nLiked (%d):\n", len(liked))
		for _, title := range liked {
			fmt.Printf("  ♥ %s\n", title)
		}
		return nil
	},
}

var likeCmd = &cobra.Command{
	Use:   "like <title>",
	Short: "Like a title",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := strings.Join(args, " ")
		if err := store.Like(cmd.Context(), title); err != nil {
			return err
		}
		fmt.Printf("♥ Liked %s.\n", title)
		return nil
	},
}

var unlikeCmd = &cobra.Command{
	Use:   "unlike <title>",
	Short: "Remove a like",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := strings.Join(args, " ")
		if err := store.Unlike(cmd.Context(), title); err != nil {
			return err
		}
		fmt.Printf("Removed like from %s.\n", title)
		return nil
	},
}

func init() {
	mylistCmd.AddCommand(mylistAddCmd, mylistRemoveCmd)

	profilesRenameCmd.Flags().StringVar(&profileImage, "image", "", "avatar image name")
	profilesRenameCmd.Flags().BoolVar(&profileChildren, "children", false, "mark as a children profile")
	profilesCmd.AddCommand(profilesSelectCmd, profilesRenameCmd)

	likedCmd.AddCommand(likeCmd, unlikeCmd)

	rootCmd.AddCommand(mylistCmd, profilesCmd, likedCmd)
}

func parseMovieID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid movie id %q", s)
	}
	return id, nil
}
