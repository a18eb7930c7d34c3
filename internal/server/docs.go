package server

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// swaggerUITemplate is the HTML page served at /docs. Swagger UI is loaded
// from a public CDN against the locally served spec.
const swaggerUITemplate = `<!DOCTYPE html>
<html>
<head>
    <title>{{.Title}}</title>
    <meta charset="utf-8">
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist/swagger-ui.css">
</head>
<body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist/swagger-ui-bundle.js"></script>
    <script>
        window.onload = function() {
            SwaggerUIBundle({
                url: "{{.OpenAPIPath}}",
                dom_id: '#swagger-ui',
                layout: "BaseLayout"
            });
        }
    </script>
</body>
</html>`

func (s *Server) handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := s.spec.Encode(w, "json"); err != nil {
		s.logger.Error("encode spec", zap.Error(err))
	}
}

func (s *Server) handleDocs(w http.ResponseWriter, _ *http.Request) {
	replacer := strings.NewReplacer(
		"{{.Title}}", s.spec.Info.Title,
		"{{.OpenAPIPath}}", "/openapi.json",
	)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	// Serving docs must never crash the application.
	_, _ = w.Write([]byte(replacer.Replace(swaggerUITemplate)))
}
