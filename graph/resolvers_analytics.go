// Package graph provides GraphQL resolvers for the reports gateway.
// This file contains the cross-entity analytics resolvers. All aggregation
// happens in memory over freshly fetched collections; the REST backend
// offers no filtering of its own.
package graph

import (
	"context"

	"github.com/sistema-informes/reports-gateway/internal/analytics"
	"github.com/sistema-informes/reports-gateway/internal/source"
)

func limitOrDefault(limit *int, fallback int) int {
	if limit != nil && *limit > 0 {
		return *limit
	}
	return fallback
}

// StatsReportes tallies all reports into the open/in-progress/closed
// buckets.
func (r *queryResolver) StatsReportes(ctx context.Context) (*StatsReportes, error) {
	t := analytics.StatusTally(r.src.Reports(ctx))
	return &StatsReportes{
		Total:     t.Total,
		Abiertos:  t.Open,
		Cerrados:  t.Closed,
		EnProceso: t.InProgress,
	}, nil
}

// ReportesPorArea filters reports whose location contains the given text.
func (r *queryResolver) ReportesPorArea(ctx context.Context, area string) ([]*source.Report, error) {
	return asPtrs(analytics.FilterByArea(r.src.Reports(ctx), area)), nil
}

// ReportesPorCategoria filters reports by category name.
func (r *queryResolver) ReportesPorCategoria(ctx context.Context, categoria string) ([]*source.Report, error) {
	reports := r.src.Reports(ctx)
	categories := r.src.Categories(ctx)
	return asPtrs(analytics.FilterByCategory(reports, categories, categoria)), nil
}

// ReportesPorEstado filters reports by case-folded status.
func (r *queryResolver) ReportesPorEstado(ctx context.Context, estado string) ([]*source.Report, error) {
	return asPtrs(analytics.FilterByStatus(r.src.Reports(ctx), estado)), nil
}

// ReportesPorUsuario filters reports by author id.
func (r *queryResolver) ReportesPorUsuario(ctx context.Context, usuario string) ([]*source.Report, error) {
	return asPtrs(analytics.FilterByUser(r.src.Reports(ctx), usuario)), nil
}

// ActividadReciente merges report creations and comments into one feed
// sorted by date descending.
func (r *queryResolver) ActividadReciente(ctx context.Context, limit *int) ([]string, error) {
	reports := r.src.Reports(ctx)
	comments := r.src.Comments(ctx)
	return analytics.RecentActivity(reports, comments, limitOrDefault(limit, 10)), nil
}

// TopAreas ranks areas by report count.
func (r *queryResolver) TopAreas(ctx context.Context, limit *int) ([]*TopArea, error) {
	ranking := analytics.TopAreas(r.src.Reports(ctx), limitOrDefault(limit, 5))
	out := make([]*TopArea, len(ranking))
	for i, entry := range ranking {
		out[i] = &TopArea{Area: entry.Area, Cantidad: entry.Count}
	}
	return out, nil
}

// PromedioPuntuaciones is the mean of all rating values in the system.
func (r *queryResolver) PromedioPuntuaciones(ctx context.Context) (float64, error) {
	return analytics.AverageRating(r.src.Ratings(ctx)), nil
}

// EtiquetasMasUsadas ranks tags by list position. No tag-to-report relation
// exists in the source data, so this is a placeholder heuristic rather than
// real usage counting.
func (r *queryResolver) EtiquetasMasUsadas(ctx context.Context, limit *int) ([]*KPI, error) {
	ranking := analytics.TopTags(r.src.Tags(ctx), limitOrDefault(limit, 5))
	return kpis(ranking), nil
}

// ReportesPorFecha filters reports created within [desde, hasta], inclusive.
func (r *queryResolver) ReportesPorFecha(ctx context.Context, desde string, hasta string) ([]*source.Report, error) {
	return asPtrs(analytics.FilterByDateRange(r.src.Reports(ctx), desde, hasta)), nil
}

// UsuariosMasActivos ranks users by number of authored reports.
func (r *queryResolver) UsuariosMasActivos(ctx context.Context, limit *int) ([]*KPI, error) {
	reports := r.src.Reports(ctx)
	users := r.src.Users(ctx)
	return kpis(analytics.TopUsers(reports, users, limitOrDefault(limit, 5))), nil
}

// ReportsAnalytics is the English-alias analytics object for the frontend.
func (r *queryResolver) ReportsAnalytics(ctx context.Context) (*ReportsAnalytics, error) {
	t := analytics.StatusTally(r.src.Reports(ctx))
	return &ReportsAnalytics{
		Total: t.Total,
		ByStatus: []*KPI{
			{Clave: "Abierto", Valor: t.Open},
			{Clave: "En Proceso", Valor: t.InProgress},
			{Clave: "Cerrado", Valor: t.Closed},
		},
	}, nil
}

func kpis(ranking []analytics.KPI) []*KPI {
	out := make([]*KPI, len(ranking))
	for i, entry := range ranking {
		out[i] = &KPI{Clave: entry.Key, Valor: entry.Value}
	}
	return out
}
