// Package graph provides GraphQL resolvers for the reports gateway.
package graph

//go:generate go run github.com/99designs/gqlgen generate

import (
	"github.com/sistema-informes/reports-gateway/internal/report"
	"github.com/sistema-informes/reports-gateway/internal/source"
)

// Resolver is the root resolver for GraphQL queries.
type Resolver struct {
	src       *source.Client
	assembler *report.Assembler
}

// NewResolver creates a new resolver with the given dependencies.
func NewResolver(src *source.Client) *Resolver {
	return &Resolver{
		src:       src,
		assembler: report.NewAssembler(src),
	}
}
