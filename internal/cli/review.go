package cli

import (
	"fmt"
	"time"

	"github.com/shootdeck/shootdeck/internal/review"
)

type ReviewIssueCmd struct {
	EventID string `arg:"" help:"ID of the completed shoot."`
}

func (c *ReviewIssueCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	flow := review.New(ctx.Store)
	tok, err := flow.Issue(c.EventID, time.Now())
	if err != nil {
		return err
	}

	fmt.Printf("Review link issued: /api/v1/reviews/%s\n", tok.Token)
	fmt.Println("The link works exactly once; share it with the client.")
	return nil
}

type ReviewListCmd struct {
	EventID string `arg:"" help:"ID of the shoot whose reviews to show."`
}

func (c *ReviewListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	reviews, err := ctx.Store.ReviewsByEvent(c.EventID)
	if err != nil {
		return err
	}
	if len(reviews) == 0 {
		fmt.Println("No reviews yet")
		return nil
	}

	for _, r := range reviews {
		fmt.Printf("%s  %d/5  %s\n", r.SubmittedAt.Format("2006-01-02"), r.Rating, r.ClientName)
		if r.Comment != "" {
			fmt.Printf("    %s\n", r.Comment)
		}
	}
	return nil
}
