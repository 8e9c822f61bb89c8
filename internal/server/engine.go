package server

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/dhis2-sre/im-events/internal/middleware"
	"github.com/dhis2-sre/im-events/internal/tracing"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

//go:embed templates/*.html
var templates embed.FS

// GetEngine returns a Gin engine with middleware, HTML templates and the health endpoint below
// basePath. Views register their routes on a group of the same basePath.
func GetEngine(logger *slog.Logger, basePath string, allowedOrigins []string) *gin.Engine {
	r := gin.New()

	corsConfig := cors.DefaultConfig()
	if len(allowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = allowedOrigins
	}
	corsConfig.AddExposeHeaders(middleware.CorrelationIDHeader)
	r.Use(cors.New(corsConfig))

	r.Use(otelgin.Middleware(tracing.ServiceName))
	r.Use(gin.Recovery())
	r.Use(middleware.CorrelationID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.ErrorHandler())

	r.SetHTMLTemplate(Templates())

	router := r.Group(basePath)
	router.GET("/health", health)

	return r
}

// Templates parses the embedded HTML templates of all views.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templates, "templates/*.html"))
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "up"})
}
