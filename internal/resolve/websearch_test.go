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

func TestExtractMakesFromSearchText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "year-make pattern",
			text: "Compatible with 2008 HONDA Accord and 2010 TOYOTA Camry models",
			want: []string{"Honda", "Toyota"},
		},
		{
			name: "make near automotive vocabulary",
			text: "Genuine NISSAN replacement part for pickup models",
			want: []string{"Nissan"},
		},
		{
			name: "make without automotive context is ignored",
			text: "NISSAN dealership announces quarterly earnings results today",
			want: nil,
		},
		{
			name: "result capped at three makes",
			text: "2008 FORD 2009 HONDA 2010 TOYOTA 2011 NISSAN",
			want: []string{"Ford", "Honda", "Toyota"},
		},
		{
			name: "unknown words never extracted",
			text: "2008 WIDGET deluxe part",
			want: nil,
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractMakesFromSearchText(tt.text)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWebSearchSource_Lookup(t *testing.T) {
	const page = `<html><body>
<div>Head gasket set fits 2006 SUBARU Outback and 2007 SUBARU Legacy</div>
</body></html>`

	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		_, _ = w.Write([]byte(page))
	}))
	t.Cleanup(server.Close)

	source := NewWebSearchSource(2 * time.Second)
	source.baseURL = server.URL

	makes, err := source.Lookup(context.Background(), "10105AA770", "Head Gasket Set")
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "10105AA770")
	assert.Contains(t, gotQuery, "Head Gasket Set")
	assert.Equal(t, []string{"Subaru"}, makes)
}

func TestWebSearchSource_LookupServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	t.Cleanup(server.Close)

	source := NewWebSearchSource(2 * time.Second)
	source.baseURL = server.URL

	_, err := source.Lookup(context.Background(), "ABC", "")
	require.Error(t, err)
}
