// Package api exposes the counseling services over HTTP.
package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alexanderramin/counsel/internal/service"
)

// Services are the use cases the router serves.
type Services struct {
	Students service.StudentService
	Planning service.PlanningService
	Meetings service.MeetingService
	Sessions service.PlanningSessionService

	// Location interprets wall-clock dates in requests. Nil means time.Local.
	Location *time.Location
}

// NewRouter builds the engine with every route registered. A nil logger
// disables request logging.
func NewRouter(svc Services, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	loc := svc.Location
	if loc == nil {
		loc = time.Local
	}
	r := gin.New()
	r.Use(requestLogger(logger), gin.Recovery())

	r.GET("/healthz", healthHandler)

	group := r.Group("/api")
	{
		group.GET("/students", ListStudentsHandler(svc.Students))
		group.GET("/students/:id", GetStudentHandler(svc.Students))
		group.GET("/students/:id/on-track", OnTrackHandler(svc.Students))
		group.GET("/students/:id/topics", TopicsHandler(svc.Planning))
		group.POST("/students/:id/agenda", BuildAgendaHandler(svc.Planning))
		group.GET("/students/:id/agenda-text", AgendaTextHandler(svc.Planning, loc))

		group.GET("/students/:id/meetings", ListMeetingsHandler(svc.Meetings))
		group.POST("/students/:id/meetings", ScheduleMeetingHandler(svc.Meetings))
		group.GET("/meetings/:mid", GetMeetingHandler(svc.Meetings))
		group.POST("/meetings/:mid/complete", CompleteMeetingHandler(svc.Meetings))
		group.POST("/meetings/:mid/cancel", CancelMeetingHandler(svc.Meetings))

		group.POST("/students/:id/planning-sessions", StartSessionHandler(svc.Sessions))
		group.GET("/planning-sessions/:sid", GetSessionHandler(svc.Sessions))
		group.POST("/planning-sessions/:sid/actions", ApplySessionActionHandler(svc.Sessions))
		group.DELETE("/planning-sessions/:sid", DeleteSessionHandler(svc.Sessions))
	}

	return r
}

// requestLogger writes one line per request.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("error", c.Errors.String()))
		}
		switch status := c.Writer.Status(); {
		case status >= 500:
			logger.Error("http_request", fields...)
		case status >= 400:
			logger.Warn("http_request", fields...)
		default:
			logger.Info("http_request", fields...)
		}
	}
}
