package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/llehouerou/xiamiu/internal/catalog"
	"github.com/llehouerou/xiamiu/internal/lrclib"
	"github.com/llehouerou/xiamiu/internal/lyrics"
	"github.com/llehouerou/xiamiu/internal/ui/render"
)

var showFlags struct {
	json   bool
	lyrics bool
}

var showCmd = &cobra.Command{
	Use:   "show {artist|album|song|genre} <id>",
	Short: "Print the detail page of one catalog entry",
	Long: `Print an artist, album, song or genre with the same sections as the
interactive detail page. Sections that fail to load are reported on stderr
and left out.`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"artist", "album", "song", "genre"},
	RunE:      runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showFlags.json, "json", false, "print the page as JSON")
	showCmd.Flags().BoolVar(&showFlags.lyrics, "lyrics", false, "include song lyrics (falls back to lrclib.net)")
}

func runShow(cmd *cobra.Command, args []string) error {
	id := args[1]
	switch args[0] {
	case "artist":
		return showArtist(cmd, id)
	case "album":
		return showAlbum(cmd, id)
	case "song":
		return showSong(cmd, id)
	case "genre":
		if _, err := strconv.Atoi(id); err != nil {
			return fmt.Errorf("genre %q: want a numeric id", id)
		}
		return showGenre(cmd, id)
	}
	return fmt.Errorf("unknown kind %q (want artist, album, song or genre)", args[0])
}

// part is one optional section of a detail page.
type part struct {
	name string
	run  func(ctx context.Context) error
}

// fetchParts loads the sections concurrently. A failed section is reported
// and left empty; it never fails the page.
func fetchParts(ctx context.Context, cmd *cobra.Command, parts ...part) {
	errs := make([]error, len(parts))
	var g errgroup.Group
	g.SetLimit(4)
	for i, p := range parts {
		g.Go(func() error {
			errs[i] = p.run(ctx)
			return nil
		})
	}
	_ = g.Wait()

	for i, err := range errs {
		if err == nil {
			continue
		}
		logger.Warn("section load failed", zap.String("section", parts[i].name), zap.Error(err))
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s unavailable: %v\n", parts[i].name, err)
	}
}

type artistPage struct {
	Artist   catalog.Artist    `json:"artist"`
	Info     string            `json:"info,omitempty"`
	Albums   []catalog.Album   `json:"albums"`
	Comments []catalog.Comment `json:"comments"`
}

func showArtist(cmd *cobra.Command, id string) error {
	ctx := cmd.Context()
	artist, err := client.Artist(ctx, id)
	if err != nil {
		return fmt.Errorf("artist %s: %w", id, err)
	}

	p := artistPage{Artist: artist}
	fetchParts(ctx, cmd,
		part{"biography", func(ctx context.Context) error {
			meta, err := client.ArtistMeta(ctx, id)
			p.Info = meta.Info
			return err
		}},
		part{"albums", func(ctx context.Context) (err error) {
			p.Albums, err = client.ArtistAlbums(ctx, id)
			return err
		}},
		part{"comments", func(ctx context.Context) (err error) {
			p.Comments, err = client.Comments(ctx, catalog.TargetArtist, id)
			return err
		}},
	)

	out := cmd.OutOrStdout()
	if showFlags.json {
		p.Albums, p.Comments = orEmpty(p.Albums), orEmpty(p.Comments)
		return printJSON(out, p)
	}

	fmt.Fprintln(out, titleStyle.Render(render.Sanitize(artist.Name)))
	printField(out, "Region", artist.Region)
	printText(out, p.Info)
	printHeading(out, "Albums")
	rows := make([][]string, len(p.Albums))
	for i, a := range p.Albums {
		rows[i] = []string{a.AlbumID, render.Sanitize(a.Name), a.ReleaseDate, render.Stars(a.Star)}
	}
	if err := printTable(out, []string{"ID", "Name", "Released", "Rating"}, rows); err != nil {
		return err
	}
	return printComments(out, p.Comments)
}

type albumPage struct {
	Album       catalog.Album        `json:"album"`
	Artist      string               `json:"artist,omitempty"`
	Info        string               `json:"info,omitempty"`
	Rating      *catalog.Rating      `json:"rating,omitempty"`
	Songs       []catalog.Song       `json:"songs"`
	SongRatings []catalog.SongRating `json:"song_ratings,omitempty"`
	Comments    []catalog.Comment    `json:"comments"`
}

func showAlbum(cmd *cobra.Command, id string) error {
	ctx := cmd.Context()
	album, err := client.Album(ctx, id)
	if err != nil {
		return fmt.Errorf("album %s: %w", id, err)
	}

	p := albumPage{Album: album}
	fetchParts(ctx, cmd,
		part{"artist", func(ctx context.Context) error {
			a, err := client.Artist(ctx, album.ArtistID)
			p.Artist = a.Name
			return err
		}},
		part{"description", func(ctx context.Context) error {
			meta, err := client.AlbumMeta(ctx, id)
			p.Info = meta.Info
			return err
		}},
		part{"listener rating", func(ctx context.Context) error {
			r, err := client.AlbumRating(ctx, id)
			if err == nil {
				p.Rating = &r
			}
			return err
		}},
		part{"songs", func(ctx context.Context) (err error) {
			p.Songs, err = client.AlbumSongs(ctx, id)
			return err
		}},
		part{"song ratings", func(ctx context.Context) (err error) {
			p.SongRatings, err = client.AlbumSongsRating(ctx, id)
			return err
		}},
		part{"comments", func(ctx context.Context) (err error) {
			p.Comments, err = client.Comments(ctx, catalog.TargetAlbum, id)
			return err
		}},
	)

	out := cmd.OutOrStdout()
	if showFlags.json {
		p.Songs, p.Comments = orEmpty(p.Songs), orEmpty(p.Comments)
		return printJSON(out, p)
	}

	fmt.Fprintln(out, titleStyle.Render(render.Sanitize(album.Name)))
	printField(out, "Artist", render.Sanitize(p.Artist))
	printField(out, "Released", album.ReleaseDate)
	printField(out, "Category", album.Category)
	printField(out, "Language", album.Language)
	printField(out, "Label", album.RecordLabel)
	printField(out, "Rating", render.Stars(album.Star))
	if p.Rating != nil {
		printField(out, "Listeners", render.Rating(p.Rating.Average, p.Rating.Count))
	}
	printText(out, p.Info)

	ratings := make(map[string]catalog.SongRating, len(p.SongRatings))
	for _, r := range p.SongRatings {
		ratings[r.SongID] = r
	}
	printHeading(out, "Songs")
	rows := make([][]string, len(p.Songs))
	for i, s := range p.Songs {
		r := ratings[s.SongID]
		rows[i] = []string{
			strconv.Itoa(i + 1), s.SongID, render.Sanitize(s.Name),
			render.Stars(s.Star), render.Rating(r.Average, r.Count),
		}
	}
	if err := printTable(out, []string{"#", "ID", "Name", "Rating", "Listeners"}, rows); err != nil {
		return err
	}
	return printComments(out, p.Comments)
}

type songPage struct {
	Song     catalog.Song      `json:"song"`
	Album    string            `json:"album,omitempty"`
	Artist   string            `json:"artist,omitempty"`
	Rating   *catalog.Rating   `json:"rating,omitempty"`
	Lyrics   []string          `json:"lyrics,omitempty"`
	Comments []catalog.Comment `json:"comments"`
}

func showSong(cmd *cobra.Command, id string) error {
	ctx := cmd.Context()
	song, err := client.Song(ctx, id)
	if err != nil {
		return fmt.Errorf("song %s: %w", id, err)
	}

	p := songPage{Song: song}
	fetchParts(ctx, cmd,
		part{"album", func(ctx context.Context) error {
			album, err := client.Album(ctx, song.AlbumID)
			if err != nil {
				return err
			}
			p.Album = album.Name
			artist, err := client.Artist(ctx, album.ArtistID)
			p.Artist = artist.Name
			return err
		}},
		part{"listener rating", func(ctx context.Context) error {
			r, err := client.SongRating(ctx, id)
			if err == nil {
				p.Rating = &r
			}
			return err
		}},
		part{"comments", func(ctx context.Context) (err error) {
			p.Comments, err = client.Comments(ctx, catalog.TargetSong, id)
			return err
		}},
	)

	if showFlags.lyrics {
		var lrc *lrclib.Client
		if cfg.LRCLibEnabled() {
			lrc = lrclib.New()
		}
		src := lyrics.NewSource(client, lrc, logger.Logger)
		res := src.Fetch(ctx, lyrics.Track{SongID: id, Artist: p.Artist, Title: song.Name, Album: p.Album})
		switch {
		case res.Err != nil:
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: lyrics unavailable: %v\n", res.Err)
		case res.Lyrics != nil:
			p.Lyrics = res.Lyrics.Text()
		}
	}

	out := cmd.OutOrStdout()
	if showFlags.json {
		p.Comments = orEmpty(p.Comments)
		return printJSON(out, p)
	}

	fmt.Fprintln(out, titleStyle.Render(render.Sanitize(song.Name)))
	printField(out, "Artist", render.Sanitize(p.Artist))
	printField(out, "Album", render.Sanitize(p.Album))
	printField(out, "Rating", render.Stars(song.Star))
	if p.Rating != nil {
		printField(out, "Listeners", render.Rating(p.Rating.Average, p.Rating.Count))
	}
	if len(p.Lyrics) > 0 {
		printHeading(out, "Lyrics")
		for _, line := range p.Lyrics {
			fmt.Fprintln(out, render.Sanitize(line))
		}
	}
	return printComments(out, p.Comments)
}

type genrePage struct {
	Genre   catalog.Genre    `json:"genre"`
	Artists []catalog.Artist `json:"artists"`
	Albums  []catalog.Album  `json:"albums"`
}

func showGenre(cmd *cobra.Command, id string) error {
	ctx := cmd.Context()
	genre, err := client.Genre(ctx, id)
	if err != nil {
		return fmt.Errorf("genre %s: %w", id, err)
	}

	p := genrePage{Genre: genre}
	fetchParts(ctx, cmd,
		part{"artists", func(ctx context.Context) (err error) {
			p.Artists, err = client.GenreArtists(ctx, id)
			return err
		}},
		part{"albums", func(ctx context.Context) (err error) {
			p.Albums, err = client.GenreAlbums(ctx, id)
			return err
		}},
	)

	out := cmd.OutOrStdout()
	if showFlags.json {
		p.Artists, p.Albums = orEmpty(p.Artists), orEmpty(p.Albums)
		return printJSON(out, p)
	}

	fmt.Fprintln(out, titleStyle.Render(render.Sanitize(genre.Name)))
	printText(out, genre.Info)
	printHeading(out, fmt.Sprintf("Artists (%s)", render.Count(len(p.Artists))))
	rows := make([][]string, len(p.Artists))
	for i, a := range p.Artists {
		rows[i] = artistColumns.row(a)
	}
	if err := printTable(out, artistColumns.headers, rows); err != nil {
		return err
	}
	printHeading(out, fmt.Sprintf("Albums (%s)", render.Count(len(p.Albums))))
	rows = make([][]string, len(p.Albums))
	for i, a := range p.Albums {
		rows[i] = albumColumns.row(a)
	}
	return printTable(out, albumColumns.headers, rows)
}

func printText(w io.Writer, text string) {
	if text == "" {
		return
	}
	fmt.Fprintln(w)
	for _, line := range render.Wrap(text, 78) {
		fmt.Fprintln(w, line)
	}
}

func printComments(w io.Writer, comments []catalog.Comment) error {
	printHeading(w, fmt.Sprintf("Comments (%s)", render.Count(len(comments))))
	if len(comments) == 0 {
		_, err := fmt.Fprintln(w, mutedStyle.Render("No comments yet."))
		return err
	}
	rows := make([][]string, len(comments))
	for i, c := range comments {
		rows[i] = []string{
			strconv.Itoa(c.ID), strconv.Itoa(c.UserID), c.ReviewDate,
			render.Stars(c.Star), render.Sanitize(c.Comment),
		}
	}
	return printTable(w, []string{"ID", "User", "Date", "Stars", "Comment"}, rows)
}
