package webhook

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rjcarver/manna/internal/models"
	"github.com/rjcarver/manna/internal/scripture"
)

// historyEntry is the JSON shape of one logged message.
type historyEntry struct {
	ID        uint   `json:"id"`
	Direction string `json:"direction"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}

func (s *Server) handleHistory(c *gin.Context) {
	phone := c.Param("phone")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	msgs, err := s.store.History(phone, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]historyEntry, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, historyEntry{
			ID:        m.ID,
			Direction: m.Direction,
			Body:      m.Body,
			CreatedAt: m.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	c.JSON(http.StatusOK, gin.H{"phone": phone, "messages": out})
}

// scheduleEntry is the JSON shape of one scheduled passage.
type scheduleEntry struct {
	ID                uint   `json:"id"`
	Kind              string `json:"kind"`
	Reference         string `json:"reference"`
	Book              string `json:"book"`
	Chapter           int    `json:"chapter"`
	StartVerse        int    `json:"start_verse"`
	EndVerse          int    `json:"end_verse"`
	TimeOfDay         string `json:"time_of_day,omitempty"`
	Recipient         string `json:"recipient,omitempty"`
	Recurrence        string `json:"recurrence,omitempty"`
	Status            string `json:"status,omitempty"`
	IncludeReflection bool   `json:"include_reflection"`
}

func toScheduleEntry(p models.ScheduledPassage) scheduleEntry {
	return scheduleEntry{
		ID:                p.ID,
		Kind:              p.Kind,
		Reference:         scripture.Reference(p.Book, p.Chapter, p.StartVerse, p.EndVerse),
		Book:              p.Book,
		Chapter:           p.Chapter,
		StartVerse:        p.StartVerse,
		EndVerse:          p.EndVerse,
		TimeOfDay:         p.TimeOfDay,
		Recipient:         p.Recipient,
		Recurrence:        p.Recurrence,
		Status:            p.Status,
		IncludeReflection: p.IncludeReflection,
	}
}

func (s *Server) handleListSchedules(c *gin.Context) {
	rows, err := s.store.PendingSchedules()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]scheduleEntry, 0, len(rows))
	for _, p := range rows {
		out = append(out, toScheduleEntry(p))
	}
	c.JSON(http.StatusOK, gin.H{"schedules": out})
}

// createScheduleRequest is the JSON body for POST /api/schedules.
type createScheduleRequest struct {
	Book              string `json:"book" binding:"required"`
	Chapter           int    `json:"chapter" binding:"required"`
	StartVerse        int    `json:"start_verse" binding:"required"`
	EndVerse          int    `json:"end_verse"`
	TimeOfDay         string `json:"time_of_day" binding:"required"`
	Recipient         string `json:"recipient" binding:"required"`
	Recurrence        string `json:"recurrence"`
	IncludeReflection bool   `json:"include_reflection"`
}

func (s *Server) handleCreateSchedule(c *gin.Context) {
	var req createScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	row, err := s.store.EnqueueSchedule(models.ScheduledPassage{
		Book:              req.Book,
		Chapter:           req.Chapter,
		StartVerse:        req.StartVerse,
		EndVerse:          req.EndVerse,
		TimeOfDay:         req.TimeOfDay,
		Recipient:         req.Recipient,
		Recurrence:        req.Recurrence,
		IncludeReflection: req.IncludeReflection,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, toScheduleEntry(*row))
}

func (s *Server) handleDeleteSchedule(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid schedule id"})
		return
	}
	if err := s.store.DeleteSchedule(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (s *Server) handleReadingPlan(c *gin.Context) {
	rows, err := s.store.ReadingPlan()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]scheduleEntry, 0, len(rows))
	for _, p := range rows {
		out = append(out, toScheduleEntry(p))
	}
	c.JSON(http.StatusOK, gin.H{"plan": out})
}

// addPlanRequest is the JSON body for POST /api/plan.
type addPlanRequest struct {
	Book              string `json:"book" binding:"required"`
	Chapter           int    `json:"chapter" binding:"required"`
	StartVerse        int    `json:"start_verse" binding:"required"`
	EndVerse          int    `json:"end_verse"`
	IncludeReflection bool   `json:"include_reflection"`
}

func (s *Server) handleAddPlanItem(c *gin.Context) {
	var req addPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	row, err := s.store.AddPlanItem(req.Book, req.Chapter, req.StartVerse, req.EndVerse, req.IncludeReflection)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, toScheduleEntry(*row))
}

func (s *Server) handleGetState(c *gin.Context) {
	key := c.Param("key")
	value, err := s.store.GetState(key, "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "value": value})
}

// setStateRequest is the JSON body for PUT /api/state/:key.
type setStateRequest struct {
	Value string `json:"value"`
}

func (s *Server) handleSetState(c *gin.Context) {
	var req setStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	key := c.Param("key")
	if err := s.store.SetState(key, req.Value); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "value": req.Value})
}
