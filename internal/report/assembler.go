// Package report assembles the composite report aggregate: one report joined
// with its comments, ratings, attachments and resolved user/category/state.
package report

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/sistema-informes/reports-gateway/internal/analytics"
	"github.com/sistema-informes/reports-gateway/internal/source"
)

// ErrNotFound indicates the requested report id does not resolve.
var ErrNotFound = errors.New("report not found")

// Aggregate is the joined object for one report. User, Category and State
// are best-effort resolutions and stay nil when unresolved; the list fields
// are never nil.
type Aggregate struct {
	Report      source.Report
	Comments    []source.Comment
	Ratings     []source.Rating
	Attachments []source.Attachment
	User        *source.User
	Category    *source.Category
	State       *source.State
	Format      string
	PDFBase64   *string
}

// Assembler joins the collections needed for a report aggregate.
type Assembler struct {
	src *source.Client
}

// NewAssembler creates an assembler backed by the given source client.
func NewAssembler(src *source.Client) *Assembler {
	return &Assembler{src: src}
}

// Assemble fetches the seven collections concurrently (they are independent
// REST calls), resolves the target report and joins its related records.
// An unknown report id fails with ErrNotFound.
func (a *Assembler) Assemble(ctx context.Context, reportID string) (*Aggregate, error) {
	var (
		reports     []source.Report
		comments    []source.Comment
		ratings     []source.Rating
		attachments []source.Attachment
		users       []source.User
		categories  []source.Category
		states      []source.State
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { reports = a.src.Reports(ctx); return nil })
	g.Go(func() error { comments = a.src.Comments(ctx); return nil })
	g.Go(func() error { ratings = a.src.Ratings(ctx); return nil })
	g.Go(func() error { attachments = a.src.Attachments(ctx); return nil })
	g.Go(func() error { users = a.src.Users(ctx); return nil })
	g.Go(func() error { categories = a.src.Categories(ctx); return nil })
	g.Go(func() error { states = a.src.States(ctx); return nil })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var target *source.Report
	for i := range reports {
		if source.SameID(reports[i].ID, reportID) {
			target = &reports[i]
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, reportID)
	}

	agg := &Aggregate{
		Report:      *target,
		Comments:    analytics.CommentsByReport(comments, target.ID),
		Ratings:     analytics.RatingsByReport(ratings, target.ID),
		Attachments: analytics.AttachmentsByReport(attachments, target.ID),
	}

	for i := range users {
		if source.SameID(users[i].ID, target.UserID) {
			agg.User = &users[i]
			break
		}
	}
	for i := range categories {
		if source.SameID(categories[i].ID, target.CategoryID) {
			agg.Category = &categories[i]
			break
		}
	}
	for i := range states {
		if strings.EqualFold(states[i].Name, target.Status) {
			agg.State = &states[i]
			break
		}
	}

	return agg, nil
}
