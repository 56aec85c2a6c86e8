package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sistema-informes/reports-gateway/internal/source"
)

func TestStatusTally(t *testing.T) {
	reports := []source.Report{
		{ID: "1", Status: "Abierto"},
		{ID: "2", Status: "Cerrado"},
		{ID: "3", Status: "Abierto"},
	}

	tally := StatusTally(reports)
	assert.Equal(t, Tally{Total: 3, Open: 2, Closed: 1, InProgress: 0}, tally)
}

func TestStatusTally_SynonymsAndUnmatched(t *testing.T) {
	reports := []source.Report{
		{ID: "1", Status: "OPEN"},
		{ID: "2", Status: "cerrados"},
		{ID: "3", Status: "En Proceso"},
		{ID: "4", Status: "in progress"},
		{ID: "5", Status: "pendiente"},
	}

	tally := StatusTally(reports)
	assert.Equal(t, 5, tally.Total)
	assert.Equal(t, 1, tally.Open)
	assert.Equal(t, 1, tally.Closed)
	assert.Equal(t, 2, tally.InProgress)
	// "pendiente" counts toward the total only
	assert.Less(t, tally.Open+tally.InProgress+tally.Closed, tally.Total)
}

func TestTopAreas(t *testing.T) {
	reports := []source.Report{
		{ID: "1", Location: "Edificio A"},
		{ID: "2", Location: "Edificio B"},
		{ID: "3", Location: "Edificio A"},
		{ID: "4", Location: ""},
		{ID: "5", Location: "Edificio B"},
		{ID: "6", Location: "Edificio A"},
	}

	ranking := TopAreas(reports, 2)
	require.Len(t, ranking, 2)
	assert.Equal(t, AreaCount{Area: "Edificio A", Count: 3}, ranking[0])
	assert.Equal(t, AreaCount{Area: "Edificio B", Count: 2}, ranking[1])
}

func TestTopAreas_TiesKeepFirstSeenOrder(t *testing.T) {
	reports := []source.Report{
		{ID: "1", Location: "B"},
		{ID: "2", Location: "A"},
		{ID: "3", Location: "B"},
		{ID: "4", Location: "A"},
	}

	ranking := TopAreas(reports, 5)
	require.Len(t, ranking, 2)
	assert.Equal(t, "B", ranking[0].Area)
	assert.Equal(t, "A", ranking[1].Area)
}

func TestTopAreas_EmptyLocationSentinel(t *testing.T) {
	ranking := TopAreas([]source.Report{{ID: "1"}, {ID: "2"}}, 5)
	require.Len(t, ranking, 1)
	assert.Equal(t, UnknownArea, ranking[0].Area)
	assert.Equal(t, 2, ranking[0].Count)
}

func TestTopUsers_ResolvesNamesWithFallback(t *testing.T) {
	reports := []source.Report{
		{ID: "1", UserID: "2"},
		{ID: "2", UserID: "2"},
		{ID: "3", UserID: "7"},
	}
	users := []source.User{{ID: "2", Name: "Ana"}}

	ranking := TopUsers(reports, users, 5)
	require.Len(t, ranking, 2)
	assert.Equal(t, KPI{Key: "Ana", Value: 2}, ranking[0])
	assert.Equal(t, KPI{Key: "User #7", Value: 1}, ranking[1])
}

func TestTopTags_PositionHeuristic(t *testing.T) {
	tags := []source.Tag{
		{ID: "1", Name: "urgente"},
		{ID: "2", Name: "mantenimiento"},
		{ID: "3", Name: "limpieza"},
	}

	ranking := TopTags(tags, 2)
	require.Len(t, ranking, 2)
	assert.Equal(t, KPI{Key: "urgente", Value: 3}, ranking[0])
	assert.Equal(t, KPI{Key: "mantenimiento", Value: 2}, ranking[1])
}

func TestAverageRating(t *testing.T) {
	assert.Equal(t, 0.0, AverageRating(nil))
	assert.Equal(t, 0.0, AverageRating([]source.Rating{}))

	ratings := []source.Rating{
		{ID: "1", ReportID: "5", Value: 4},
		{ID: "2", ReportID: "5", Value: 2},
	}
	assert.InDelta(t, 3.0, AverageRating(ratings), 0.0001)
}

func TestAverageRatingFor(t *testing.T) {
	ratings := []source.Rating{
		{ID: "1", ReportID: "5", Value: 4},
		{ID: "2", ReportID: "5", Value: 2},
		{ID: "3", ReportID: "6", Value: 5},
	}
	assert.InDelta(t, 3.0, AverageRatingFor(ratings, "5"), 0.0001)
	assert.Equal(t, 0.0, AverageRatingFor(ratings, "99"))
}

func TestFilterByArea(t *testing.T) {
	reports := []source.Report{
		{ID: "1", Location: "Edificio A, piso 2"},
		{ID: "2", Location: "Biblioteca"},
	}
	assert.Len(t, FilterByArea(reports, "edificio"), 1)
	assert.Empty(t, FilterByArea(reports, "gimnasio"))
}

func TestFilterByCategory(t *testing.T) {
	reports := []source.Report{
		{ID: "1", CategoryID: "3"},
		{ID: "2", CategoryID: "4"},
	}
	categories := []source.Category{{ID: "3", Name: "Infraestructura"}}

	matched := FilterByCategory(reports, categories, "infraestructura")
	require.Len(t, matched, 1)
	assert.Equal(t, "1", matched[0].ID)

	assert.Empty(t, FilterByCategory(reports, categories, "desconocida"))
}

func TestFilterByStatusAndPriority(t *testing.T) {
	reports := []source.Report{
		{ID: "1", Status: "Abierto", Priority: "Alta"},
		{ID: "2", Status: "cerrado", Priority: "media"},
	}
	assert.Len(t, FilterByStatus(reports, "ABIERTO"), 1)
	assert.Len(t, FilterByPriority(reports, "Media"), 1)
}

func TestFilterByUser_MixedIDTypes(t *testing.T) {
	reports := []source.Report{
		{ID: "1", UserID: "2"},
		{ID: "2", UserID: "3"},
	}
	assert.Len(t, FilterByUser(reports, "2.0"), 1)
}

func TestFilterByDateRange(t *testing.T) {
	reports := []source.Report{
		{ID: "1", CreatedAt: "2024-05-01T10:00:00"},
		{ID: "2", CreatedAt: "2024-06-15T08:30:00"},
		{ID: "3", CreatedAt: "no es fecha"},
		{ID: "4", CreatedAt: "2024-07-01T00:00:00"},
	}

	matched := FilterByDateRange(reports, "2024-05-01", "2024-06-30")
	require.Len(t, matched, 2)
	assert.Equal(t, "1", matched[0].ID)
	assert.Equal(t, "2", matched[1].ID)
}

func TestFilterByDateRange_InclusiveBounds(t *testing.T) {
	reports := []source.Report{{ID: "1", CreatedAt: "2024-05-01"}}
	assert.Len(t, FilterByDateRange(reports, "2024-05-01", "2024-05-01"), 1)
}

func TestRecentActivity_OrderingAndTruncation(t *testing.T) {
	reports := []source.Report{
		{ID: "1", Title: "viejo", CreatedAt: "2024-01-01T00:00:00"},
		{ID: "2", Title: "nuevo", CreatedAt: "2024-03-01T00:00:00"},
	}
	comments := []source.Comment{
		{ID: "1", ReportID: "2", Content: "comentario intermedio", Date: "2024-02-01T00:00:00"},
	}

	feed := RecentActivity(reports, comments, 10)
	require.Len(t, feed, 3)
	assert.Equal(t, "Reporte creado: nuevo", feed[0])
	assert.Contains(t, feed[1], "Comentario en reporte #2")
	assert.Equal(t, "Reporte creado: viejo", feed[2])

	assert.Len(t, RecentActivity(reports, comments, 2), 2)
}

func TestRecentActivity_EqualDatesReportsFirst(t *testing.T) {
	date := "2024-02-01T00:00:00"
	reports := []source.Report{{ID: "1", Title: "reporte", CreatedAt: date}}
	comments := []source.Comment{{ID: "1", ReportID: "1", Content: "comentario", Date: date}}

	feed := RecentActivity(reports, comments, 10)
	require.Len(t, feed, 2)
	assert.Equal(t, "Reporte creado: reporte", feed[0])
}

func TestJoinHelpers_StringNormalizedIDs(t *testing.T) {
	comments := []source.Comment{
		{ID: "1", ReportID: "5", UserID: "2"},
		{ID: "2", ReportID: "6", UserID: "2"},
	}
	assert.Len(t, CommentsByReport(comments, "5"), 1)
	assert.Len(t, CommentsByUser(comments, "2"), 2)

	ratings := []source.Rating{{ID: "1", ReportID: "5", UserID: "3"}}
	assert.Len(t, RatingsByReport(ratings, "5.0"), 1)
	assert.Len(t, RatingsByUser(ratings, "3"), 1)

	attachments := []source.Attachment{{ID: "1", ReportID: "5"}}
	assert.Len(t, AttachmentsByReport(attachments, "5"), 1)
	assert.Empty(t, AttachmentsByReport(attachments, "7"))
}
