package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"meterrecon/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// multipartUpload builds a two-file multipart body plus extra form fields.
func multipartUpload(t *testing.T, file1, file2 []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	if file1 != nil {
		part, err := w.CreateFormFile("file1", "file1.xlsx")
		require.NoError(t, err)
		_, err = part.Write(file1)
		require.NoError(t, err)
	}
	if file2 != nil {
		part, err := w.CreateFormFile("file2", "file2.xlsx")
		require.NoError(t, err)
		_, err = part.Write(file2)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestHandleDiff(t *testing.T) {
	router := Router(newTestService(t, nil))

	file1 := testkit.BuildWorkbook(t, testkit.ReadingsRows([2]interface{}{"M1", 10}))
	file2 := testkit.BuildWorkbook(t, testkit.ReadingsRows([2]interface{}{"M1", 15}))
	body, contentType := multipartUpload(t, file1, file2, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/diff", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "diff_result.xlsx")
	assert.Equal(t, "15/03/2024 -> 15/03/2024", rec.Header().Get(SummaryRangeHeader))
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestHandleDiffMissingFile(t *testing.T) {
	router := Router(newTestService(t, nil))

	file1 := testkit.BuildWorkbook(t, testkit.ReadingsRows([2]interface{}{"M1", 10}))
	body, contentType := multipartUpload(t, file1, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/diff", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "file2")
}

func TestHandleMergeSchemaErrorPayload(t *testing.T) {
	router := Router(newTestService(t, nil))

	readings := testkit.BuildWorkbook(t, testkit.ReadingsRows([2]interface{}{"M1", 10}))
	mapping := testkit.BuildWorkbook(t, [][]interface{}{
		{"Meter Serial Number", "Notes"},
		{"M1", "installed 2020"},
	})
	body, contentType := multipartUpload(t, readings, mapping, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/merge", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "usage point")
	assert.Equal(t, []string{"Meter Serial Number", "Notes"}, resp.DetectedHeaders)
	assert.NotEmpty(t, resp.SampleRow)
}

func TestHandleMergeWithOverrides(t *testing.T) {
	router := Router(newTestService(t, nil))

	readings := testkit.BuildWorkbook(t, [][]interface{}{
		{"Device", "Reading"},
		{"M1", "10"},
	})
	mapping := testkit.BuildWorkbook(t, [][]interface{}{
		{"Device", "Site Ref"},
		{"M1", "UP-9"},
	})
	body, contentType := multipartUpload(t, readings, mapping, map[string]string{
		"usage_point_column": "Site Ref",
		"join_column":        "Device",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/merge", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "merge_result.xlsx")
}

func TestHandleRunsEmpty(t *testing.T) {
	router := Router(newTestService(t, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/runs", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp RunsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Runs)
}

func TestHealthz(t *testing.T) {
	router := Router(newTestService(t, nil))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSanitizeASCII(t *testing.T) {
	assert.Equal(t, "01/03/2024 -> 20/03/2024", SanitizeASCII("01/03/2024 -> 20/03/2024", 200))
	assert.Equal(t, "abc", SanitizeASCII("a‮béc", 200))
	assert.Equal(t, "ab", SanitizeASCII("abcd", 2))
	assert.Equal(t, "", SanitizeASCII("\n\t", 200))
}
