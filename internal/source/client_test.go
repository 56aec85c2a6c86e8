package source

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBase = "http://backend"

func newTestClient(t *testing.T) *Client {
	t.Helper()
	hc := &http.Client{}
	httpmock.ActivateNonDefault(hc)
	t.Cleanup(httpmock.DeactivateAndReset)
	return NewClient(testBase, "", 0, hc)
}

func TestReports_FallsBackToAliasPath(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder("GET", testBase+"/api/v1/reports",
		httpmock.NewStringResponder(http.StatusInternalServerError, "boom"))
	httpmock.RegisterResponder("GET", testBase+"/reportes",
		httpmock.NewStringResponder(http.StatusOK,
			`[{"id_reporte":1,"titulo":"uno"},{"id_reporte":2,"titulo":"dos"}]`))

	reports := c.Reports(context.Background())
	require.Len(t, reports, 2)
	assert.Equal(t, "1", reports[0].ID)
	assert.Equal(t, "uno", reports[0].Title)
	assert.Equal(t, "2", reports[1].ID)
}

func TestReports_AllPathsFailYieldsEmptyCollection(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder("GET", testBase+"/api/v1/reports",
		httpmock.NewStringResponder(http.StatusInternalServerError, "boom"))
	httpmock.RegisterResponder("GET", testBase+"/reportes",
		httpmock.NewStringResponder(http.StatusNotFound, "nope"))

	reports := c.Reports(context.Background())
	require.NotNil(t, reports)
	assert.Empty(t, reports)
}

func TestReports_UnparseableBodyTriggersFallback(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder("GET", testBase+"/api/v1/reports",
		httpmock.NewStringResponder(http.StatusOK, "<html>not json</html>"))
	httpmock.RegisterResponder("GET", testBase+"/reportes",
		httpmock.NewStringResponder(http.StatusOK, `[{"id_reporte":3,"titulo":"tres"}]`))

	reports := c.Reports(context.Background())
	require.Len(t, reports, 1)
	assert.Equal(t, "3", reports[0].ID)
}

func TestReports_RecordsWithoutIDAreDropped(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder("GET", testBase+"/api/v1/reports",
		httpmock.NewStringResponder(http.StatusOK,
			`[{"id":1,"title":"ok"},{"title":"sin id"}]`))

	reports := c.Reports(context.Background())
	require.Len(t, reports, 1)
	assert.Equal(t, "1", reports[0].ID)
}

func TestClient_SendsAcceptAndBearerHeaders(t *testing.T) {
	hc := &http.Client{}
	httpmock.ActivateNonDefault(hc)
	t.Cleanup(httpmock.DeactivateAndReset)
	c := NewClient(testBase, "backend-token", 0, hc)

	var gotAccept, gotAuth string
	httpmock.RegisterResponder("GET", testBase+"/api/v1/users",
		func(req *http.Request) (*http.Response, error) {
			gotAccept = req.Header.Get("Accept")
			gotAuth = req.Header.Get("Authorization")
			return httpmock.NewStringResponse(http.StatusOK, `[]`), nil
		})

	c.Users(context.Background())
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "Bearer backend-token", gotAuth)
}

func TestAttachments_TriesThreeCandidatePaths(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder("GET", testBase+"/api/v1/attachments",
		httpmock.NewStringResponder(http.StatusNotFound, ""))
	httpmock.RegisterResponder("GET", testBase+"/api/v1/files",
		httpmock.NewStringResponder(http.StatusNotFound, ""))
	httpmock.RegisterResponder("GET", testBase+"/archivos",
		httpmock.NewStringResponder(http.StatusOK,
			`[{"id_archivo":1,"id_reporte":5,"nombre_archivo":"foto.png","url":"http://x/foto.png"}]`))

	attachments := c.Attachments(context.Background())
	require.Len(t, attachments, 1)
	assert.Equal(t, "foto.png", attachments[0].Name)
	assert.Equal(t, "5", attachments[0].ReportID)
}

func TestSingle_PropagatesLastError(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder("GET", testBase+"/api/v1/reports/9",
		httpmock.NewStringResponder(http.StatusInternalServerError, ""))
	httpmock.RegisterResponder("GET", testBase+"/reportes/9",
		httpmock.NewStringResponder(http.StatusNotFound, ""))

	_, err := c.Single(context.Background(), "/api/v1/reports/9", "/reportes/9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/reportes/9")
}

func TestSingle_ReturnsFirstSuccess(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder("GET", testBase+"/api/v1/reports/9",
		httpmock.NewStringResponder(http.StatusOK, `{"id":9,"title":"found"}`))

	record, err := c.Single(context.Background(), "/api/v1/reports/9", "/reportes/9")
	require.NoError(t, err)
	assert.Equal(t, "found", record["title"])
}
