package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"prize-draw-backend/internal/features/draw/models"
	drawservice "prize-draw-backend/internal/features/draw/service"
	rosterservice "prize-draw-backend/internal/features/roster/service"
	"prize-draw-backend/internal/utils/random"
)

type DrawHandler struct {
	service           *drawservice.DrawService
	defaultRoundCount int
}

func NewDrawHandler(service *drawservice.DrawService, defaultRoundCount int) *DrawHandler {
	return &DrawHandler{service: service, defaultRoundCount: defaultRoundCount}
}

func (h *DrawHandler) RegisterRoutes(router *gin.RouterGroup) {
	draw := router.Group("/draw")
	{
		draw.GET("/state", h.getState)
		draw.GET("/round", h.getCurrentRound)
		draw.GET("/eligible", h.getEligible)
		draw.POST("/participants", h.loadParticipants)
		draw.POST("/participants/import", h.importRoster)
		draw.POST("/plan", h.plan)
		draw.POST("/begin", h.begin)
		draw.POST("/select", h.draw)
		draw.POST("/confirm", h.confirm)
		draw.POST("/reject", h.reject)
		draw.POST("/reset", h.reset)
	}
}

type loadParticipantsRequest struct {
	Participants     []models.Participant `json:"participants" binding:"required"`
	PreserveProgress bool                 `json:"preserve_progress"`
}

// @Summary Load the participant roster
// @Tags draw
// @Accept json
// @Produce json
func (h *DrawHandler) loadParticipants(c *gin.Context) {
	var req loadParticipantsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state := h.service.LoadParticipants(c.Request.Context(), req.Participants, req.PreserveProgress)
	c.JSON(http.StatusOK, gin.H{
		"loaded": len(state.AllParticipants),
		"state":  state,
	})
}

// importRoster ingests a delimited roster file. Malformed rows are filtered
// and reported, never fatal. With shuffle=true the display order is
// randomized before loading.
func (h *DrawHandler) importRoster(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing roster file"})
		return
	}
	defer file.Close()

	participants, result, err := rosterservice.ParseRoster(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if shuffle, _ := strconv.ParseBool(c.Query("shuffle")); shuffle {
		if err := random.Shuffle(participants); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	preserve, _ := strconv.ParseBool(c.Query("preserve_progress"))
	state := h.service.LoadParticipants(c.Request.Context(), participants, preserve)

	c.JSON(http.StatusOK, gin.H{
		"loaded":  result.Loaded,
		"skipped": result.Skipped,
		"state":   state,
	})
}

type planRequest struct {
	RoundCount     int                   `json:"round_count" binding:"omitempty,min=1"`
	SelectionModel models.SelectionModel `json:"selection_model" binding:"required"`
}

// @Summary Generate the round plan
// @Tags draw
// @Accept json
// @Produce json
func (h *DrawHandler) plan(c *gin.Context) {
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings := models.RoundSettings{
		RoundCount:     req.RoundCount,
		SelectionModel: req.SelectionModel,
	}
	if settings.RoundCount == 0 {
		settings.RoundCount = h.defaultRoundCount
	}

	rounds, err := h.service.Plan(c.Request.Context(), settings)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rounds": rounds})
}

func (h *DrawHandler) begin(c *gin.Context) {
	if err := h.service.Begin(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.service.State())
}

func (h *DrawHandler) getState(c *gin.Context) {
	state := h.service.State()
	c.JSON(http.StatusOK, gin.H{
		"phase": h.service.Phase(),
		"state": state,
	})
}

func (h *DrawHandler) getCurrentRound(c *gin.Context) {
	round, ok := h.service.CurrentRound()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active round"})
		return
	}
	c.JSON(http.StatusOK, round)
}

func (h *DrawHandler) getEligible(c *gin.Context) {
	eligible := h.service.EligibleForCurrentRound()
	c.JSON(http.StatusOK, gin.H{
		"count":        len(eligible),
		"participants": eligible,
	})
}

// @Summary Draw a pending winner for the current round
// @Tags draw
// @Produce json
func (h *DrawHandler) draw(c *gin.Context) {
	name, err := h.service.Draw(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pending_winner": name})
}

type confirmRequest struct {
	PrizeLabel string `json:"prize_label"`
}

func (h *DrawHandler) confirm(c *gin.Context) {
	var req confirmRequest
	// Body is optional; an empty prize label gets a round-based default.
	_ = c.ShouldBindJSON(&req)

	winner, err := h.service.Confirm(c.Request.Context(), req.PrizeLabel)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, winner)
}

func (h *DrawHandler) reject(c *gin.Context) {
	if err := h.service.Reject(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.service.State())
}

func (h *DrawHandler) reset(c *gin.Context) {
	if err := h.service.Reset(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.service.State())
}

// respondError maps engine errors onto HTTP statuses. Empty-pool and
// exhausted-redraw conditions surface as 409 "nothing to draw", never as
// silent successes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, drawservice.ErrEmptyPool),
		errors.Is(err, drawservice.ErrNoEligibleParticipants):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, drawservice.ErrInvalidConfiguration):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, drawservice.ErrAlreadyStarted),
		errors.Is(err, drawservice.ErrNotStarted),
		errors.Is(err, drawservice.ErrDrawComplete),
		errors.Is(err, drawservice.ErrNoRounds),
		errors.Is(err, drawservice.ErrPendingWinner),
		errors.Is(err, drawservice.ErrNoPendingWinner):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
