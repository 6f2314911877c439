package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/resumeroast/internal/client/posts"
)

// Leaderboard lists posts ranked by rating, vote count breaking ties.
func (a *App) Leaderboard(ctx context.Context) error {
	ranked, err := a.posts.Leaderboard(ctx)
	if err != nil {
		return err
	}

	if len(ranked) == 0 {
		fmt.Fprintln(a.out, "Nothing rated yet.")
		return nil
	}
	for i := range ranked {
		fmt.Fprintf(a.out, "%3d. %s\n", i+1, postLine(&ranked[i]))
	}
	return nil
}

// Mine lists the caller's own posts with their leaderboard rank, when ranked.
func (a *App) Mine(ctx context.Context) error {
	mine, err := a.posts.Mine(ctx)
	if err != nil {
		if errors.Is(err, posts.ErrSignInRequired) {
			fmt.Fprintln(a.out, "Sign in to see your posts.")
			return nil
		}
		return err
	}

	if len(mine) == 0 {
		fmt.Fprintln(a.out, "You have not posted a resume yet. Try 'upload'.")
		return nil
	}

	ranks := a.posts.RankMap(ctx)
	for i := range mine {
		line := postLine(&mine[i])
		if rank, ok := ranks[mine[i].PostID]; ok {
			line += fmt.Sprintf(" (#%d on the leaderboard)", rank)
		}
		fmt.Fprintf(a.out, "%3d. %s\n", i+1, line)
	}
	return nil
}

// UploadResume posts a local file. Everything after the path is the caption.
func (a *App) UploadResume(ctx context.Context, args []string) error {
	path := args[0]
	caption := strings.Join(args[1:], " ")

	file, err := os.Open(path)
	if err != nil {
		a.notifier.Error("Could not read " + path + ".")
		return err
	}
	defer file.Close()

	err = a.posts.Upload(ctx, filepath.Base(path), file, caption)
	if errors.Is(err, posts.ErrSignInRequired) {
		return nil
	}
	return err
}
