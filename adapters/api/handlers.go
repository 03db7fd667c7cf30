package api

import (
	"fmt"
	"io"
	"net/http"

	"meterrecon/domain/recon"
	"meterrecon/internal/errors"

	"github.com/gin-gonic/gin"
)

const (
	// SummaryRangeHeader carries the ASCII-sanitized date-range summary of a
	// diff response.
	SummaryRangeHeader = "X-Summary-Date-Range"

	// summaryRangeMaxLen bounds the metadata header value.
	summaryRangeMaxLen = 200

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Router assembles the gin engine with all routes.
func Router(s *Service) *gin.Engine {
	gin.SetMode(s.cfg.Server.GinMode)
	router := gin.Default()

	router.GET("/", s.handleDocs)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api")
	apiGroup.POST("/diff", s.handleDiff)
	apiGroup.POST("/merge", s.handleMerge)
	apiGroup.GET("/runs", s.handleRuns)

	return router
}

// handleDiff serves POST /api/diff: two workbook uploads in, one diff report
// workbook out, with the date-range summary in a response header.
func (s *Service) handleDiff(c *gin.Context) {
	defer s.recoverBoundary(c)

	file1, ok := formFilePayload(c, "file1")
	if !ok {
		return
	}
	file2, ok := formFilePayload(c, "file2")
	if !ok {
		return
	}

	result, err := s.Diff(c.Request.Context(), file1, file2)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="diff_result.xlsx"`)
	c.Header(SummaryRangeHeader, SanitizeASCII(result.SummaryRange, summaryRangeMaxLen))
	c.Data(http.StatusOK, xlsxContentType, result.Workbook)
}

// handleMerge serves POST /api/merge: a readings upload plus a mapping
// upload, with optional column overrides that bypass detection.
func (s *Service) handleMerge(c *gin.Context) {
	defer s.recoverBoundary(c)

	readings, ok := formFilePayload(c, "file1")
	if !ok {
		return
	}
	mapping, ok := formFilePayload(c, "file2")
	if !ok {
		return
	}
	usageOverride := c.PostForm("usage_point_column")
	joinOverride := c.PostForm("join_column")

	result, err := s.Merge(c.Request.Context(), readings, mapping, usageOverride, joinOverride)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="merge_result.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, result.Workbook)
}

// handleRuns serves GET /api/runs: recent run history, newest first.
func (s *Service) handleRuns(c *gin.Context) {
	runs, err := s.RecentRuns(c.Request.Context(), 20)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, RunsResponse{Runs: runs})
}

// formFilePayload reads one multipart upload; a missing file is an
// input-shape error reported before any processing.
func formFilePayload(c *gin.Context, field string) (FilePayload, bool) {
	header, err := c.FormFile(field)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("missing input file %q", field)})
		return FilePayload{}, false
	}
	f, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("could not open upload %q: %v", field, err)})
		return FilePayload{}, false
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("could not read upload %q: %v", field, err)})
		return FilePayload{}, false
	}
	return FilePayload{Name: header.Filename, Data: data}, true
}

// writeError maps service errors onto the error payload contract.
func (s *Service) writeError(c *gin.Context, err error) {
	switch e := err.(type) {
	case *recon.SchemaError:
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:           e.Message,
			DetectedHeaders: e.Headers,
			SampleRow:       e.SampleRow,
		})
	default:
		status := http.StatusInternalServerError
		switch errors.GetCode(err) {
		case errors.CodeInvalidInput, errors.CodeWorkbookInvalid:
			status = http.StatusBadRequest
		}
		if status == http.StatusInternalServerError {
			s.logger.Error("[API] request failed: %v", err)
		}
		c.JSON(status, ErrorResponse{Error: err.Error()})
	}
}

// recoverBoundary converts an unexpected panic into a generic failure
// payload; a partial or corrupt workbook must never leak.
func (s *Service) recoverBoundary(c *gin.Context) {
	if r := recover(); r != nil {
		s.logger.Error("[API] unexpected failure: %v", r)
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
			Error: fmt.Sprintf("unexpected failure: %v", r),
		})
	}
}

// SanitizeASCII strips non-ASCII and control runes and truncates to max
// characters, keeping the value safe for an HTTP header.
func SanitizeASCII(s string, max int) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r < 32 || r > 126 {
			continue
		}
		out = append(out, r)
		if len(out) == max {
			break
		}
	}
	return string(out)
}
