package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/resumeroast/internal/client/feed"
	"github.com/dmitrijs2005/resumeroast/internal/client/models"
	"github.com/dmitrijs2005/resumeroast/internal/client/posts"
)

func (a *App) parseGoto(raw string) (feed.URL, error) {
	return feed.ParseURL(raw)
}

// confirm asks a yes/no question; anything but y/yes declines.
func (a *App) confirm(question string) bool {
	answer, err := getSimpleText(a.reader, question+" [y/N]", a.out)
	if err != nil {
		return false
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	}
	return false
}

func postLine(p *models.Post) string {
	line := fmt.Sprintf("%s by %s", posts.DisplayName(p.FileName, p.URL), p.Owner.Username)
	if p.Votes() > 0 {
		line += fmt.Sprintf(" [%.1f, %d votes]", p.Rating(), p.Votes())
	} else {
		line += " [unrated]"
	}
	return line
}

func (a *App) renderFeed() {
	feedPosts := a.nav.Posts()
	if len(feedPosts) == 0 {
		fmt.Fprintln(a.out, "The feed is empty.")
		return
	}
	for i := range feedPosts {
		fmt.Fprintf(a.out, "%3d. %s\n", i+1, postLine(&feedPosts[i]))
	}
}

// renderActive prints the open post, if any, and points the comment thread at
// it. This is the terminal's stand-in for the post modal.
func (a *App) renderActive(ctx context.Context) {
	post := a.nav.ActivePost()
	if post == nil {
		return
	}

	fmt.Fprintf(a.out, "--- %s ---\n", postLine(post))
	if post.Caption != "" {
		fmt.Fprintln(a.out, post.Caption)
	}
	if preview := posts.PreviewURL(post.URL, post.FileType, post.FileName); preview != "" {
		fmt.Fprintln(a.out, "Preview:", preview)
	}

	a.thread.SetPost(post.PostID)
	if err := a.thread.Load(ctx); err == nil {
		fmt.Fprintf(a.out, "%d comments. ", a.thread.Count())
	}
	nav := ""
	if a.nav.HasPrev() {
		nav += "'prev' "
	}
	if a.nav.HasNext() {
		nav += "'next' "
	}
	fmt.Fprintf(a.out, "%s'close' to exit.\n", nav)
}
