// Package api exposes the calculators as a read-only JSON service: the
// forward timetable, GeoJSON isochrones, and the place tables. All
// state is per-request; nothing here mutates.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/anis00/mawaquit/internal/config"
)

// Server wires the route handlers to a gin engine.
type Server struct {
	cfg    config.Config
	engine *gin.Engine
}

// NewServer builds the engine and registers all routes. Callers set the
// gin mode before constructing.
func NewServer(cfg config.Config) *Server {
	s := &Server{cfg: cfg, engine: gin.New()}
	s.engine.Use(requestLogger(), gin.Recovery())

	api := s.engine.Group("/api")
	api.GET("/methods", s.listMethods)
	api.GET("/times", s.getTimes)
	api.GET("/isochrones", s.getIsochrones)
	api.GET("/countries", s.listCountries)
	api.GET("/places", s.listPlaces)
	api.GET("/places/nearest", s.nearestPlace)

	return s
}

// Run serves until the listener fails.
func (s *Server) Run(addr string) error {
	log.Info().Str("addr", addr).Msg("api listening")
	return s.engine.Run(addr)
}

// ServeHTTP makes the server mountable and testable as an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}
