package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var searchJSON bool

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search artists, albums and songs",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "print the result as JSON")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return errors.New("empty query")
	}

	res, err := client.Search(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("search %q: %w", query, err)
	}

	out := cmd.OutOrStdout()
	if searchJSON {
		res.Artists, res.Albums, res.Songs = orEmpty(res.Artists), orEmpty(res.Albums), orEmpty(res.Songs)
		return printJSON(out, res)
	}
	if res.Empty() {
		_, err := fmt.Fprintf(out, "No results for %q.\n", query)
		return err
	}

	if err := printSection(out, "Artists", res.Artists, artistColumns); err != nil {
		return err
	}
	if err := printSection(out, "Albums", res.Albums, albumColumns); err != nil {
		return err
	}
	return printSection(out, "Songs", res.Songs, songColumns)
}

func printSection[T any](out io.Writer, title string, items []T, cols columns[T]) error {
	if len(items) == 0 {
		return nil
	}
	printHeading(out, fmt.Sprintf("%s (%d)", title, len(items)))
	rows := make([][]string, len(items))
	for i, item := range items {
		rows[i] = cols.row(item)
	}
	return printTable(out, cols.headers, rows)
}
