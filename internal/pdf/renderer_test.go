package pdf

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sistema-informes/reports-gateway/internal/report"
	"github.com/sistema-informes/reports-gateway/internal/source"
)

var renderTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func fullAggregate() *report.Aggregate {
	return &report.Aggregate{
		Report: source.Report{
			ID:          "5",
			Title:       "Fuga de agua",
			Description: "Fuga en el pasillo principal",
			Status:      "Abierto",
			Priority:    "Alta",
			Location:    "Edificio A",
			CreatedAt:   "2024-05-01T10:00:00",
		},
		Comments: []source.Comment{
			{ID: "1", ReportID: "5", Content: "Sigue igual", Date: "2024-05-02"},
		},
		Ratings: []source.Rating{
			{ID: "1", ReportID: "5", Value: 4},
			{ID: "2", ReportID: "5", Value: 2},
		},
		Attachments: []source.Attachment{
			{ID: "1", ReportID: "5", Name: "foto.png", URL: "http://x/foto.png"},
		},
		User:     &source.User{ID: "2", Name: "Ana", Email: "ana@example.com"},
		Category: &source.Category{ID: "3", Name: "Infraestructura"},
		State:    &source.State{ID: "1", Name: "Abierto"},
		Format:   "pdf",
	}
}

func TestRender_ProducesPDFBytes(t *testing.T) {
	raw, err := Render(fullAggregate(), renderTime)
	require.NoError(t, err)
	require.NotEmpty(t, raw)
	assert.Equal(t, "%PDF", string(raw[:4]))
}

func TestRender_EmptyListsStillRenderSections(t *testing.T) {
	agg := fullAggregate()
	agg.Comments = nil
	agg.Ratings = nil
	agg.Attachments = nil

	raw, err := Render(agg, renderTime)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(raw[:4]))
}

func TestRender_MissingRelationsAndFields(t *testing.T) {
	agg := &report.Aggregate{
		Report: source.Report{ID: "9"},
		Format: "pdf",
	}

	raw, err := Render(agg, renderTime)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(raw[:4]))
}

func TestRender_LongListsAreTruncatedNotFatal(t *testing.T) {
	agg := fullAggregate()
	agg.Comments = nil
	for i := 0; i < 25; i++ {
		agg.Comments = append(agg.Comments, source.Comment{
			ID:       fmt.Sprintf("%d", i+1),
			ReportID: "5",
			Content:  fmt.Sprintf("comentario %d", i+1),
			Date:     "2024-05-02",
		})
	}
	for i := 0; i < 12; i++ {
		agg.Ratings = append(agg.Ratings, source.Rating{
			ID: fmt.Sprintf("r%d", i), ReportID: "5", Value: 3,
		})
	}

	raw, err := Render(agg, renderTime)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(raw[:4]))

	short, err := Render(fullAggregate(), renderTime)
	require.NoError(t, err)
	// truncated long lists still add pages/content over the short variant
	assert.Greater(t, len(raw), len(short))
}

func TestOrNA(t *testing.T) {
	assert.Equal(t, "N/A", orNA(""))
	assert.Equal(t, "valor", orNA("valor"))
}
