package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/counsel/internal/planner"
	"github.com/alexanderramin/counsel/internal/service"
)

type startSessionRequest struct {
	Variant string `json:"variant"`
}

// POST /api/students/:id/planning-sessions
func StartSessionHandler(sessions service.PlanningSessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req startSessionRequest
		// An empty body starts the default flow.
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			abortBadRequest(c, err)
			return
		}
		sess, err := sessions.Start(c.Request.Context(), c.Param("id"), planner.ParseVariant(req.Variant))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusCreated, sess)
	}
}

// GET /api/planning-sessions/:sid
func GetSessionHandler(sessions service.PlanningSessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := sessions.Get(c.Request.Context(), c.Param("sid"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, sess)
	}
}

// POST /api/planning-sessions/:sid/actions
func ApplySessionActionHandler(sessions service.PlanningSessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var action service.SessionAction
		if err := c.ShouldBindJSON(&action); err != nil {
			abortBadRequest(c, err)
			return
		}
		out, err := sessions.Apply(c.Request.Context(), c.Param("sid"), action)
		if err != nil {
			abortWithError(c, err)
			return
		}
		status := http.StatusOK
		if out.Meeting != nil {
			status = http.StatusCreated
		}
		c.JSON(status, out)
	}
}

// DELETE /api/planning-sessions/:sid
func DeleteSessionHandler(sessions service.PlanningSessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := sessions.Delete(c.Request.Context(), c.Param("sid")); err != nil {
			abortWithError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
