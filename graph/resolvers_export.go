// Package graph provides GraphQL resolvers for the reports gateway.
// This file contains the composite reportAnalytics resolver and its PDF
// export path.
package graph

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/sistema-informes/reports-gateway/internal/pdf"
	"github.com/sistema-informes/reports-gateway/internal/report"
)

// ReportAnalytics joins one report with all of its related data. With
// formato="pdf" the response additionally carries the rendered document,
// base64-encoded.
func (r *queryResolver) ReportAnalytics(ctx context.Context, reporteID string, formato *string) (*ReportAnalytics, error) {
	format := "json"
	if formato != nil && *formato != "" {
		format = strings.ToLower(*formato)
	}

	agg, err := r.assembler.Assemble(ctx, reporteID)
	if err != nil {
		if errors.Is(err, report.ErrNotFound) {
			return nil, queryError("Reporte "+reporteID+" no encontrado", "NOT_FOUND")
		}
		return nil, err
	}
	agg.Format = format

	out := &ReportAnalytics{
		Reporte:      &agg.Report,
		Comentarios:  asPtrs(agg.Comments),
		Puntuaciones: asPtrs(agg.Ratings),
		Archivos:     asPtrs(agg.Attachments),
		Usuario:      agg.User,
		Categoria:    agg.Category,
		Estado:       agg.State,
		Formato:      format,
	}

	if format == "pdf" {
		raw, err := pdf.Render(agg, time.Now())
		if err != nil {
			return nil, queryError("error generando PDF: "+err.Error(), "RENDER_FAILED")
		}
		encoded := base64.StdEncoding.EncodeToString(raw)
		out.PdfBase64 = &encoded
	}

	return out, nil
}

// queryError builds a field-level error carrying a stable code extension.
func queryError(message, code string) *gqlerror.Error {
	return &gqlerror.Error{
		Message:    message,
		Extensions: map[string]interface{}{"code": code},
	}
}
