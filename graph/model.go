// Package graph provides hand-maintained GraphQL view types. Canonical
// entity models live in internal/source and are bound via gqlgen.yml.
package graph

import (
	"github.com/sistema-informes/reports-gateway/internal/source"
)

// Health is the service health status.
type Health struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ReportConnection wraps the report list in the items+total shape the
// frontend expects.
type ReportConnection struct {
	Items  []*source.Report `json:"items"`
	Total  int              `json:"total"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

// KPI is a key/count pair used by the ranking queries.
type KPI struct {
	Clave string `json:"clave"`
	Valor int    `json:"valor"`
}

// StatsReportes is the status tally of all reports.
type StatsReportes struct {
	Total     int `json:"total"`
	Abiertos  int `json:"abiertos"`
	Cerrados  int `json:"cerrados"`
	EnProceso int `json:"enProceso"`
}

// TopArea is one entry of the area ranking.
type TopArea struct {
	Area     string `json:"area"`
	Cantidad int    `json:"cantidad"`
}

// ReportsAnalytics is the English-alias analytics object.
type ReportsAnalytics struct {
	Total    int    `json:"total"`
	ByStatus []*KPI `json:"byStatus"`
}

// ReportAnalytics is the composite aggregate for one report. The optional
// relations stay nil when they do not resolve; PdfBase64 is only populated
// when the caller requested the pdf format.
type ReportAnalytics struct {
	Reporte      *source.Report       `json:"reporte"`
	Comentarios  []*source.Comment    `json:"comentarios"`
	Puntuaciones []*source.Rating     `json:"puntuaciones"`
	Archivos     []*source.Attachment `json:"archivos"`
	Usuario      *source.User         `json:"usuario"`
	Categoria    *source.Category     `json:"categoria"`
	Estado       *source.State        `json:"estado"`
	Formato      string               `json:"formato"`
	PdfBase64    *string              `json:"pdfBase64"`
}
