// Package pdf renders a composite report aggregate as a paginated PDF
// document with a fixed section order.
package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/sistema-informes/reports-gateway/internal/analytics"
	"github.com/sistema-informes/reports-gateway/internal/report"
)

const (
	maxComments = 10
	maxRatings  = 5
	indent      = 8.0
)

// Render serializes the aggregate into a PDF. Section order is fixed: header,
// report fields, creator user, category, state, comments (first 10), ratings
// (first 5, average over the full set), attachments (all), footer. Missing
// values render as "N/A"; empty lists render an explicit empty note so no
// section is ever omitted.
func Render(agg *report.Aggregate, generatedAt time.Time) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.SetMargins(18, 18, 18)
	doc.AddPage()

	heading := func(text string) {
		doc.SetFont("Helvetica", "B", 14)
		doc.CellFormat(0, 8, tr(text), "", 1, "L", false, 0, "")
		doc.Ln(1)
	}
	line := func(text string) {
		doc.SetFont("Helvetica", "", 11)
		doc.SetX(doc.GetX() + indent)
		doc.MultiCell(0, 5.5, tr(text), "", "L", false)
	}
	note := func(text string) {
		doc.SetFont("Helvetica", "I", 9)
		doc.SetX(doc.GetX() + indent)
		doc.CellFormat(0, 5, tr(text), "", 1, "L", false, 0, "")
	}

	// Header
	doc.SetFont("Helvetica", "B", 20)
	doc.CellFormat(0, 12, tr("REPORTE ANALÍTICO COMPLETO"), "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(0, 6, tr("Generado: "+generatedAt.Format("02/01/2006 15:04:05")), "", 1, "C", false, 0, "")
	doc.Ln(4)

	// Report fields
	r := agg.Report
	heading("Información del Reporte")
	line("ID: " + orNA(r.ID))
	line("Título: " + orNA(r.Title))
	line("Descripción: " + orNA(r.Description))
	line("Estado: " + orNA(r.Status))
	line("Prioridad: " + orNA(r.Priority))
	line("Ubicación: " + orNA(r.Location))
	line("Creado: " + orNA(r.CreatedAt))
	doc.Ln(4)

	if agg.User != nil {
		heading("Usuario Creador")
		line("Nombre: " + orNA(agg.User.Name))
		line("Email: " + orNA(agg.User.Email))
		doc.Ln(4)
	}

	if agg.Category != nil {
		heading("Categoría")
		line("Nombre: " + orNA(agg.Category.Name))
		line("Descripción: " + orNA(agg.Category.Description))
		doc.Ln(4)
	}

	if agg.State != nil {
		heading("Estado")
		line("Estado: " + orNA(agg.State.Name))
		doc.Ln(4)
	}

	// Comments: first 10, then a "+N more" note
	heading(fmt.Sprintf("Comentarios (%d)", len(agg.Comments)))
	if len(agg.Comments) == 0 {
		line("Sin comentarios")
	} else {
		for i, c := range agg.Comments {
			if i == maxComments {
				break
			}
			line(fmt.Sprintf("%d. %s", i+1, orNA(c.Content)))
			note("Fecha: " + orNA(c.Date))
		}
		if extra := len(agg.Comments) - maxComments; extra > 0 {
			note(fmt.Sprintf("... y %d comentarios más", extra))
		}
	}
	doc.Ln(4)

	// Ratings: average over the full set, first 5 listed
	heading(fmt.Sprintf("Puntuaciones (%d)", len(agg.Ratings)))
	if len(agg.Ratings) == 0 {
		line("Sin puntuaciones")
	} else {
		line(fmt.Sprintf("Promedio: %.2f / 5.0", analytics.AverageRating(agg.Ratings)))
		for i, p := range agg.Ratings {
			if i == maxRatings {
				break
			}
			line(fmt.Sprintf("%d. Valor: %g/5", i+1, p.Value))
		}
		if extra := len(agg.Ratings) - maxRatings; extra > 0 {
			note(fmt.Sprintf("... y %d puntuaciones más", extra))
		}
	}
	doc.Ln(4)

	// Attachments: all of them, with clickable URLs when present
	heading(fmt.Sprintf("Archivos Adjuntos (%d)", len(agg.Attachments)))
	if len(agg.Attachments) == 0 {
		line("Sin archivos adjuntos")
	} else {
		for i, a := range agg.Attachments {
			name := a.Name
			if name == "" {
				name = "Archivo sin nombre"
			}
			line(fmt.Sprintf("%d. %s", i+1, name))
			if a.URL != "" {
				doc.SetFont("Helvetica", "", 8)
				doc.SetTextColor(0, 0, 255)
				doc.SetX(doc.GetX() + indent)
				doc.WriteLinkString(4, tr("URL: "+a.URL), a.URL)
				doc.Ln(5)
				doc.SetTextColor(0, 0, 0)
			}
		}
	}
	doc.Ln(6)

	// Footer
	doc.SetFont("Helvetica", "", 8)
	doc.SetTextColor(128, 128, 128)
	doc.CellFormat(0, 4, tr("Sistema de Informes - Universidad"), "", 1, "C", false, 0, "")
	doc.CellFormat(0, 4, tr("Reporte generado automáticamente por GraphQL"), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
