package chart

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventcam/wheeltrack/internal/wheel"
)

func sampleSeries() wheel.AngleSeries {
	return wheel.AngleSeries{
		{SliceIndex: 0, Degrees: 0, Defined: true},
		{SliceIndex: 1, Defined: false},
		{SliceIndex: 2, Degrees: 30.5, Defined: true},
	}
}

func TestRenderEvolution(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, RenderEvolution(&buf, sampleSeries(), "recording.csv"))

	html := buf.String()
	assert.Contains(t, html, "Evolution of the detected angles")
	assert.Contains(t, html, "recording.csv")
	assert.Contains(t, html, "30.5")
}

func TestHandler(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	Handler(sampleSeries(), "run")(rec, httptest.NewRequest(http.MethodGet, "/chart", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "angle")
}
