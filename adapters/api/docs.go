package api

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

//go:embed usage.md
var usageMarkdown []byte

// handleDocs serves the rendered usage guide at the root path.
func (s *Service) handleDocs(c *gin.Context) {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	body := markdown.ToHTML(usageMarkdown, p, renderer)
	c.Data(http.StatusOK, "text/html; charset=utf-8", body)
}
