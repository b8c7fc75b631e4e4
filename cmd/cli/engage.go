package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fitcheckapp/backend/internal/client"
	"github.com/spf13/cobra"
)

var likeCmd = &cobra.Command{
	Use:   "like <post-id>",
	Short: "Toggle your like on a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return togglePost(args[0], "like")
	},
}

var saveCmd = &cobra.Command{
	Use:   "save <post-id>",
	Short: "Toggle a post in your saved collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return togglePost(args[0], "save")
	},
}

func init() {
	rootCmd.AddCommand(likeCmd)
	rootCmd.AddCommand(saveCmd)
}

// togglePost runs the same optimistic toggle flow the app uses: the
// local snapshot flips first and reverts if the request fails.
func togglePost(postID, kind string) error {
	api := newAPIClient()
	ctx := context.Background()

	summaries, err := api.BatchFetchPosts(ctx, []string{postID})
	if err != nil {
		return fmt.Errorf("failed to fetch post: %w", err)
	}
	if len(summaries) == 0 {
		return fmt.Errorf("post %s not found", postID)
	}

	// The CLI starts from an empty snapshot, so each invocation adds
	// membership; the server treats repeats as no-ops
	post := client.Post{ID: postID}

	ctrl := client.NewMutationController(api, &client.StaticAuth{UserID: userID})
	ctrl.OnUpdate = func(p client.Post) {
		switch ctrl.State() {
		case client.StateOptimistic:
			fmt.Printf("%sd %s\n", kind, p.ID)
		case client.StateReverted:
			fmt.Fprintf(os.Stderr, "%s failed, reverted\n", kind)
		}
	}
	ctrl.OnNotice = func(msg string) {
		fmt.Fprintln(os.Stderr, msg)
	}

	if kind == "like" {
		err = ctrl.ToggleLike(ctx, post)
	} else {
		err = ctrl.ToggleSave(ctx, post)
	}
	if errors.Is(err, client.ErrSignInRequired) {
		return fmt.Errorf("set FITCHECK_USER or pass --user to act as a user")
	}
	return err
}
