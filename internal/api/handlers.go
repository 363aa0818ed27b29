package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/counsel/internal/domain"
	"github.com/alexanderramin/counsel/internal/planner"
	"github.com/alexanderramin/counsel/internal/service"
)

// GET /healthz
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GET /api/students
func ListStudentsHandler(students service.StudentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := students.List(c.Request.Context())
		if err != nil {
			abortWithError(c, err)
			return
		}
		if list == nil {
			list = []domain.Student{}
		}
		c.JSON(http.StatusOK, gin.H{"students": list})
	}
}

// GET /api/students/:id
func GetStudentHandler(students service.StudentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := students.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, data)
	}
}

// GET /api/students/:id/on-track
func OnTrackHandler(students service.StudentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, err := students.OnTrack(c.Request.Context(), c.Param("id"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"report": report,
			"stale":  report.Stale(),
		})
	}
}

// GET /api/students/:id/topics?ai=true
func TopicsHandler(planning service.PlanningService) gin.HandlerFunc {
	return func(c *gin.Context) {
		useAI, err := boolQuery(c, "ai")
		if err != nil {
			abortBadRequest(c, err)
			return
		}
		result, err := planning.RecommendTopics(c.Request.Context(), c.Param("id"), useAI)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// POST /api/students/:id/agenda
func BuildAgendaHandler(planning service.PlanningService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.AgendaRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortBadRequest(c, err)
			return
		}
		result, err := planning.BuildAgenda(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// GET /api/students/:id/agenda-text?date=YYYY-MM-DDTHH:MM&ai=true
func AgendaTextHandler(planning service.PlanningService, loc *time.Location) gin.HandlerFunc {
	return func(c *gin.Context) {
		useAI, err := boolQuery(c, "ai")
		if err != nil {
			abortBadRequest(c, err)
			return
		}
		var meetingDate *time.Time
		if raw := c.Query("date"); raw != "" {
			t, err := planner.ParseScheduledDate(raw, loc)
			if err != nil {
				abortBadRequest(c, err)
				return
			}
			meetingDate = &t
		}
		result, err := planning.AgendaText(c.Request.Context(), c.Param("id"), meetingDate, useAI)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// GET /api/students/:id/meetings
func ListMeetingsHandler(meetings service.MeetingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := meetings.ListByStudent(c.Request.Context(), c.Param("id"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		if list == nil {
			list = []*domain.Meeting{}
		}
		c.JSON(http.StatusOK, gin.H{"meetings": list})
	}
}

// POST /api/students/:id/meetings
func ScheduleMeetingHandler(meetings service.MeetingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req domain.MeetingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortBadRequest(c, err)
			return
		}
		req.StudentID = c.Param("id")
		m, err := meetings.Schedule(c.Request.Context(), req)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusCreated, m)
	}
}

// GET /api/meetings/:mid
func GetMeetingHandler(meetings service.MeetingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		m, err := meetings.Get(c.Request.Context(), c.Param("mid"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, m)
	}
}

// POST /api/meetings/:mid/complete
func CompleteMeetingHandler(meetings service.MeetingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var summary domain.MeetingSummary
		if err := c.ShouldBindJSON(&summary); err != nil {
			abortBadRequest(c, err)
			return
		}
		if err := meetings.Complete(c.Request.Context(), c.Param("mid"), summary); err != nil {
			abortWithError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// POST /api/meetings/:mid/cancel
func CancelMeetingHandler(meetings service.MeetingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := meetings.Cancel(c.Request.Context(), c.Param("mid")); err != nil {
			abortWithError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func boolQuery(c *gin.Context, key string) (bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("query %s: %q is not a boolean", key, raw)
	}
	return v, nil
}
