package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fitcheckapp/backend/internal/client"
	"github.com/spf13/cobra"
)

var feedOffset int

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Browse the outfit feed",
	Long:  "Fetches pages of the reverse-chronological outfit feed, paging the way the app does on scroll.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showFeed()
	},
}

func init() {
	feedCmd.Flags().IntVar(&feedOffset, "offset", 0, "Starting offset")
	rootCmd.AddCommand(feedCmd)
}

func showFeed() error {
	api := newAPIClient()
	ctx := context.Background()

	page, err := api.GetFeed(ctx, feedOffset, client.DefaultPageSize)
	if err != nil {
		return fmt.Errorf("failed to fetch feed: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "POST\tUSER\tCAPTION\tLIKES\tCOMMENTS")
	printFeedPage(w, page)

	// Page forward the way the app's scroll handler does, driving the
	// paginator with synthetic bottom-of-page events
	paginator := client.NewFeedPaginator(feedOffset, page.Total, func(offset int) {
		next, err := api.GetFeed(ctx, offset, client.DefaultPageSize)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to fetch page at offset %d: %v\n", offset, err)
			return
		}
		printFeedPage(w, next)
	})
	for i := 0; i < 2; i++ {
		paginator.OnScroll(100, 100)
	}

	return w.Flush()
}

func printFeedPage(w *tabwriter.Writer, page *client.FeedPage) {
	for _, p := range page.Posts {
		caption := p.Caption
		if len(caption) > 40 {
			caption = caption[:37] + "..."
		}
		caption = strings.ReplaceAll(caption, "\t", " ")
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n",
			p.ID, p.User.Username, caption, len(p.Likes), p.CommentCount)
	}
}

func newAPIClient() *client.APIClient {
	api := client.NewAPIClient(apiURL)
	if authToken != "" {
		api.SetToken(authToken)
	}
	return api
}
