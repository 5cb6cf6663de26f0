package httpapi

import (
	_ "embed"
	"net/http"

	"github.com/gomarkdown/markdown"
	mhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

//go:embed api.md
var apiDoc []byte

// handleDocs renders the embedded API reference as HTML. Parser and renderer
// are single-use, so both are rebuilt per request.
func handleDocs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		extensions := parser.CommonExtensions | parser.AutoHeadingIDs | parser.NoEmptyLineBeforeBlock
		p := parser.NewWithExtensions(extensions)
		doc := p.Parse(apiDoc)

		htmlFlags := mhtml.CommonFlags | mhtml.HrefTargetBlank
		renderer := mhtml.NewRenderer(mhtml.RendererOptions{Flags: htmlFlags})

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(markdown.Render(doc, renderer))
	}
}
