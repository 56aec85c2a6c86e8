package report

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sistema-informes/reports-gateway/internal/source"
)

const testBase = "http://backend"

func newTestAssembler(t *testing.T) *Assembler {
	t.Helper()
	hc := &http.Client{}
	httpmock.ActivateNonDefault(hc)
	t.Cleanup(httpmock.DeactivateAndReset)
	return NewAssembler(source.NewClient(testBase, "", 0, hc))
}

func stubCollections(t *testing.T) {
	t.Helper()
	stub := func(path, body string) {
		httpmock.RegisterResponder("GET", testBase+path,
			httpmock.NewStringResponder(http.StatusOK, body))
	}
	stub("/api/v1/reports",
		`[{"id":5,"title":"Fuga","status":"Abierto","user_id":2,"category_id":3,"location":"Edificio A"},
		  {"id":6,"title":"Otro","status":"Cerrado","user_id":9,"category_id":9}]`)
	stub("/api/v1/comments",
		`[{"id":1,"report_id":5,"user_id":2,"content":"uno"},
		  {"id":2,"report_id":"5","user_id":3,"content":"dos"},
		  {"id":3,"report_id":6,"user_id":2,"content":"ajeno"}]`)
	stub("/api/v1/ratings",
		`[{"id":1,"report_id":5,"user_id":2,"value":4},
		  {"id":2,"report_id":5,"user_id":3,"value":2}]`)
	stub("/api/v1/attachments",
		`[{"id":1,"report_id":5,"name":"foto.png","url":"http://x/foto.png"}]`)
	stub("/api/v1/users", `[{"id":2,"name":"Ana","email":"ana@example.com"}]`)
	stub("/api/v1/categories", `[{"id":3,"name":"Infraestructura"}]`)
	stub("/api/v1/states", `[{"id":1,"name":"abierto","final":false}]`)
}

func TestAssemble_JoinsRelatedCollections(t *testing.T) {
	a := newTestAssembler(t)
	stubCollections(t)

	agg, err := a.Assemble(context.Background(), "5")
	require.NoError(t, err)

	assert.Equal(t, "5", agg.Report.ID)
	assert.Equal(t, "Fuga", agg.Report.Title)

	require.Len(t, agg.Comments, 2)
	for _, c := range agg.Comments {
		assert.True(t, source.SameID(c.ReportID, "5"))
	}
	require.Len(t, agg.Ratings, 2)
	for _, r := range agg.Ratings {
		assert.True(t, source.SameID(r.ReportID, "5"))
	}
	require.Len(t, agg.Attachments, 1)
	assert.True(t, source.SameID(agg.Attachments[0].ReportID, "5"))

	require.NotNil(t, agg.User)
	assert.Equal(t, "Ana", agg.User.Name)
	require.NotNil(t, agg.Category)
	assert.Equal(t, "Infraestructura", agg.Category.Name)
	// state resolves by case-folded name match against the report status
	require.NotNil(t, agg.State)
	assert.Equal(t, "abierto", agg.State.Name)
}

func TestAssemble_UnknownReportFailsNotFound(t *testing.T) {
	a := newTestAssembler(t)
	stubCollections(t)

	_, err := a.Assemble(context.Background(), "999")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAssemble_UnresolvedRelationsStayNil(t *testing.T) {
	a := newTestAssembler(t)
	stubCollections(t)

	agg, err := a.Assemble(context.Background(), "6")
	require.NoError(t, err)
	assert.Nil(t, agg.User)
	assert.Nil(t, agg.Category)
	assert.Nil(t, agg.State)
	assert.NotNil(t, agg.Comments)
	require.Len(t, agg.Comments, 1)
}

func TestAssemble_DegradedCollectionsStillAssemble(t *testing.T) {
	a := newTestAssembler(t)
	// Only the reports endpoint works; everything else is unreachable.
	httpmock.RegisterResponder("GET", testBase+"/api/v1/reports",
		httpmock.NewStringResponder(http.StatusOK, `[{"id":5,"title":"Solo","status":"Abierto"}]`))
	httpmock.RegisterNoResponder(httpmock.NewStringResponder(http.StatusInternalServerError, "down"))

	agg, err := a.Assemble(context.Background(), "5")
	require.NoError(t, err)
	assert.Equal(t, "Solo", agg.Report.Title)
	assert.Empty(t, agg.Comments)
	assert.Empty(t, agg.Ratings)
	assert.Empty(t, agg.Attachments)
	assert.Nil(t, agg.User)
}
