package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/mamadbah2/abattoir/internal/config"
)

func TestWriteRowAppendsValues(t *testing.T) {
	var body struct {
		Values [][]any `json:"values"`
	}
	var query map[string][]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "/spreadsheets/sheet-123/values/")
		assert.True(t, strings.HasSuffix(r.URL.Path, ":append"), r.URL.Path)
		query = r.URL.Query()
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"spreadsheetId":"sheet-123"}`))
	}))
	defer srv.Close()

	repo, err := NewGoogleSheetRepository(context.Background(),
		config.SheetsConfig{SpreadsheetID: "sheet-123"},
		nil,
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)

	err = repo.WriteRow(context.Background(), "Reports!A:N", []interface{}{"2024-06-03", "Matoto", 1200.5})
	require.NoError(t, err)

	require.Len(t, body.Values, 1)
	assert.Equal(t, []any{"2024-06-03", "Matoto", 1200.5}, body.Values[0])
	assert.Equal(t, []string{"USER_ENTERED"}, query["valueInputOption"])
	assert.Equal(t, []string{"INSERT_ROWS"}, query["insertDataOption"])
}

func TestWriteRowRejectsEmptyRange(t *testing.T) {
	repo := &GoogleSheetRepository{}
	assert.Error(t, repo.WriteRow(context.Background(), "", nil))
}

func TestNewRequiresSpreadsheetID(t *testing.T) {
	_, err := NewGoogleSheetRepository(context.Background(), config.SheetsConfig{}, nil, option.WithoutAuthentication())
	assert.Error(t, err)
}
