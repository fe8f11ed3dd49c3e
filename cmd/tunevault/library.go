package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ytget/tunevault/internal/catalog"
)

var playlistsCmd = &cobra.Command{
	Use:   "playlists",
	Short: "List playlists in the catalog",
	RunE:  runPlaylists,
}

var tracksCmd = &cobra.Command{
	Use:   "tracks <playlist-id>",
	Short: "List the tracks of a playlist",
	Args:  cobra.ExactArgs(1),
	RunE:  runTracks,
}

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "List favorite tracks",
	RunE:  runFavorites,
}

func init() {
	rootCmd.AddCommand(playlistsCmd)
	rootCmd.AddCommand(tracksCmd)
	rootCmd.AddCommand(favoritesCmd)
}

func openCatalog() (*catalog.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return catalog.Open(cfg.DBPath)
}

func runPlaylists(cmd *cobra.Command, args []string) error {
	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	playlists, err := store.GetAllPlaylists()
	if err != nil {
		return err
	}

	if len(playlists) == 0 {
		fmt.Println("catalog is empty")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tUPLOADER\tTRACKS\tADDED")
	for _, p := range playlists {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			p.PlaylistID, p.Title, p.Uploader, p.TrackCount, p.CreatedAt.Format("2006-01-02"))
	}
	return w.Flush()
}

func runTracks(cmd *cobra.Command, args []string) error {
	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	tracks, err := store.GetTracksByPlaylistID(args[0])
	if err != nil {
		return err
	}

	if len(tracks) == 0 {
		fmt.Println("no tracks for playlist", args[0])
		return nil
	}

	printTracks(tracks)
	return nil
}

func runFavorites(cmd *cobra.Command, args []string) error {
	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	tracks, err := store.GetFavorites()
	if err != nil {
		return err
	}

	if len(tracks) == 0 {
		fmt.Println("no favorites yet")
		return nil
	}

	printTracks(tracks)
	return nil
}

func printTracks(tracks []*catalog.Track) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTRACK\tTITLE\tARTIST\tSTATUS\tFILE")
	for _, t := range tracks {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.TrackID, t.Title, t.Artist, t.Status, t.FilePath)
	}
	w.Flush()
}
