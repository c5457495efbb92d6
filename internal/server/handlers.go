package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/bandseeking/bandseeking-go/internal/constants"
	"github.com/bandseeking/bandseeking-go/internal/domain"
	"github.com/bandseeking/bandseeking-go/internal/location"
	"github.com/bandseeking/bandseeking-go/pkg/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LocationResponse struct {
	ZipCode  string `json:"zip_code"`
	Display  string `json:"display"`
	Resolved bool   `json:"resolved"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// Health reports the database, the Redis location cache and the geocoder
// circuit. Only an unreachable database makes the service unhealthy; Redis
// and the geocoder are fallback tiers.
func (s *Server) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), constants.ServerConfig.HealthCheckTimeout)
	defer cancel()

	status := http.StatusOK
	body := gin.H{"status": "ok"}

	if s.deps.Database != nil {
		if err := s.deps.Database.Ping(ctx); err != nil {
			s.logger.Warn("Health check: database unreachable", zap.Error(err))
			status = http.StatusServiceUnavailable
			body["status"] = "unavailable"
			body["database"] = "disconnected"
		} else {
			body["database"] = "connected"
		}
	}
	if s.deps.Cache != nil {
		if s.deps.Cache.IsConnected(ctx) {
			body["redis"] = "connected"
		} else {
			body["redis"] = "disconnected"
		}
	}
	if s.deps.Geocoder != nil {
		body["geocoder"] = s.deps.Geocoder.CircuitStatus()
	}
	c.JSON(status, body)
}

// GetLocation resolves a postal code through the full fallback chain. An
// unresolvable code is still a 200 with the raw code as display value.
func (s *Server) GetLocation(c *gin.Context) {
	zip := strings.TrimSpace(c.Param("zip"))
	display := s.deps.Locations.ResolveWait(c.Request.Context(), zip)

	c.JSON(http.StatusOK, LocationResponse{
		ZipCode:  zip,
		Display:  display,
		Resolved: location.IsPostalCode(zip) && display != zip,
	})
}

func (s *Server) GetProfileCompletion(c *gin.Context) {
	username := c.Param("username")

	report, err := s.deps.Profiles.Report(c.Request.Context(), username)
	if err != nil {
		if errors.IsNotFound(err) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Profile not found"})
			return
		}
		s.logger.Error("Failed to build completion report", zap.String("username", username), zap.Error(err))
		c.JSON(errors.StatusCode(err), ErrorResponse{Error: "Failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// ScoreProfile scores a profile sent in the body without touching storage.
func (s *Server) ScoreProfile(c *gin.Context) {
	var p domain.Profile
	if err := c.ShouldBindJSON(&p); err != nil {
		verr := errors.NewValidationError("Invalid profile JSON", "body", nil).WithCause(err)
		c.JSON(errors.StatusCode(verr), ErrorResponse{Error: verr.Message})
		return
	}

	c.JSON(http.StatusOK, s.deps.Profiles.Build(c.Request.Context(), &p))
}

func (s *Server) GetEncouragement(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": s.deps.Encourager.Pick()})
}
