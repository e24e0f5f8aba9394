package resolve

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRockAuto(t *testing.T, handler http.HandlerFunc) *RockAutoSource {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	source := NewRockAutoSource(2 * time.Second)
	source.baseURL = server.URL
	return source
}

func TestRockAutoSource_Lookup(t *testing.T) {
	const page = `<html><body>
<div id="buyersguidepopup-outer_b"><table>
<tr><td>2008 HONDA ACCORD</td></tr>
<tr><td>2009-2010 TOYOTA CAMRY</td></tr>
<tr><td>CHEVY SILVERADO 1500</td></tr>
</table></div>
</body></html>`

	var gotPart string
	source := newTestRockAuto(t, func(w http.ResponseWriter, r *http.Request) {
		gotPart = r.URL.Query().Get("partnum")
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla/5.0")
		assert.NotEmpty(t, r.Header.Get("Accept-Language"))
		_, _ = w.Write([]byte(page))
	})

	makes, err := source.Lookup(context.Background(), "12345-ABC", "Head Gasket")
	require.NoError(t, err)

	assert.Equal(t, "12345-ABC", gotPart)
	assert.Equal(t, []string{"Honda", "Toyota", "Chevrolet"}, makes)
}

func TestRockAutoSource_LookupNoApplications(t *testing.T) {
	const page = `<html><body>
<div id="buyersguidepopup-outer_b">No applications found for this part.</div>
</body></html>`

	source := newTestRockAuto(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(page))
	})

	makes, err := source.Lookup(context.Background(), "XYZ", "")
	require.NoError(t, err)
	assert.Empty(t, makes)
}

func TestRockAutoSource_LookupPlainTextGuide(t *testing.T) {
	// Some guides render applications without a table.
	const page = `<html><body>
<div id="buyersguidepopup-outer_b">Fits FORD and NISSAN trucks.</div>
</body></html>`

	source := newTestRockAuto(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(page))
	})

	makes, err := source.Lookup(context.Background(), "TRK-1", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Ford", "Nissan"}, makes)
}

func TestRockAutoSource_LookupMissingGuide(t *testing.T) {
	source := newTestRockAuto(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><p>nothing here</p></body></html>`))
	})

	makes, err := source.Lookup(context.Background(), "ABC", "")
	require.NoError(t, err)
	assert.Empty(t, makes, "a page without the guide block is a miss, not an error")
}

func TestRockAutoSource_LookupServerError(t *testing.T) {
	source := newTestRockAuto(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := source.Lookup(context.Background(), "ABC", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestRockAutoSource_LookupCanceledContext(t *testing.T) {
	source := newTestRockAuto(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html></html>`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := source.Lookup(ctx, "ABC", "")
	require.Error(t, err)
}
