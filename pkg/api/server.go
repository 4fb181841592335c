// Package api Persona REST API
//
// @title           Persona REST API
// @version         1.0.0
// @description     REST API for the persona record log.
// @host            localhost:8080
// @BasePath        /api/v1
//
// @securityDefinitions.apikey ApiKeyAuth
// @in              header
// @name            X-API-Key
package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggo/swag"

	"github.com/Judith-olmand/persona/pkg/store"
)

// StartServer starts the HTTP server with all routes configured. It
// blocks until the listener fails.
func StartServer(log *store.PersonaLog, config ServerConfig) error {
	if SwaggerInfo != nil {
		SwaggerInfo.Host = fmt.Sprintf("localhost:%d", config.Port)
	}

	metrics := NewMetrics()
	server := NewServer(log, config, metrics)

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API key authentication for the record routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(apiKeyMiddleware(metrics, config.APIKey))

		r.Get("/health", metrics.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))

		r.Post("/personas", metrics.InstrumentHandler("POST", "/api/v1/personas", server.handleAppend))
		r.Get("/personas", metrics.InstrumentHandler("GET", "/api/v1/personas", server.handleList))
		r.Get("/personas/latest", metrics.InstrumentHandler("GET", "/api/v1/personas/latest", server.handleLatest))
		r.Post("/personas/decode", metrics.InstrumentHandler("POST", "/api/v1/personas/decode", server.handleDecode))

		r.Get("/stats", metrics.InstrumentHandler("GET", "/api/v1/stats", server.handleStats))
	})

	// Swagger documentation (unprotected)
	r.Get("/swagger/*", func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if path == "/swagger/" || path == "/swagger/index.html" {
			w.Header().Set("Content-Type", "text/html")
			html := `<!DOCTYPE html>
<html>
<head>
	 <title>Persona API Documentation</title>
	 <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@3.25.0/swagger-ui.css" />
</head>
<body>
	 <div id="swagger-ui"></div>
	 <script src="https://unpkg.com/swagger-ui-dist@3.25.0/swagger-ui-bundle.js"></script>
	 <script>
	   window.onload = function() {
	     SwaggerUIBundle({
	       url: '/swagger/swagger.json',
	       dom_id: '#swagger-ui',
	       presets: [
	         SwaggerUIBundle.presets.apis,
	         SwaggerUIBundle.presets.standalone
	       ]
	     });
	   };
	 </script>
</body>
</html>`
			w.Write([]byte(html))
			return
		}

		if path == "/swagger/swagger.json" {
			doc, err := swag.ReadDoc("swagger")
			if err != nil {
				http.Error(w, "Failed to generate Swagger documentation", http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(doc))
			return
		}

		http.NotFound(w, r)
	})

	// Start background metrics updater
	go server.startMetricsUpdater()

	bind := config.Bind
	if bind == "" {
		bind = "127.0.0.1"
	}
	addr := fmt.Sprintf("%s:%d", bind, config.Port)
	fmt.Printf("Starting Persona REST API server on %s\n", addr)
	fmt.Printf("Metrics available at: http://%s/metrics\n", addr)

	return http.ListenAndServe(addr, r)
}
