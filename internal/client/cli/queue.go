package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/resumeroast/internal/client/posts"
	"github.com/dmitrijs2005/resumeroast/internal/client/voting"
)

// Queue shows the resume up next for rating. Signed-out users get the static
// demo resume and a sign-in hint instead.
func (a *App) Queue(ctx context.Context) error {
	if err := a.vote.Load(ctx); err != nil {
		return err
	}

	if a.vote.PreviewOnly() {
		demo := voting.PreviewPost()
		fmt.Fprintf(a.out, "%s (%s, %s)\n", demo.Owner.Username, demo.Owner.Headline, demo.Owner.Organization)
		fmt.Fprintln(a.out, demo.Caption)
		return nil
	}

	current := a.vote.Current()
	if current == nil {
		fmt.Fprintln(a.out, "All caught up! No resumes left to rate.")
		return nil
	}

	fmt.Fprintf(a.out, "Up next (%d left): %s\n", a.vote.Len(), postLine(current))
	if preview := posts.PreviewURL(current.URL, current.FileType, current.FileName); preview != "" {
		fmt.Fprintln(a.out, "Preview:", preview)
	}
	fmt.Fprintln(a.out, "Rate it: 1 Pass, 2 Needs work, 3 Solid, 4 Strong, 5 Hire")
	return nil
}

// RateCurrent scores the resume at the head of the queue and shows the next
// one.
func (a *App) RateCurrent(ctx context.Context, arg string) error {
	score, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: rate <score 1-5>")
		return nil
	}

	if !a.vote.Loaded() && !a.vote.PreviewOnly() {
		if err := a.vote.Load(ctx); err != nil {
			return err
		}
	}
	if a.vote.Current() == nil && !a.vote.PreviewOnly() {
		fmt.Fprintln(a.out, "All caught up! No resumes left to rate.")
		return nil
	}

	err = a.vote.Rate(ctx, score)
	switch {
	case errors.Is(err, voting.ErrSignInRequired):
		return nil
	case errors.Is(err, voting.ErrInvalidScore):
		fmt.Fprintln(a.out, "Scores go from 1 (Pass) to 5 (Hire).")
		return nil
	case err != nil:
		return err
	}

	a.notifier.Success(fmt.Sprintf("Rated %d (%s).", score, voting.ScoreLabels[score]))
	return a.Queue(ctx)
}
