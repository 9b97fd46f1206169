package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/skybound/internal/leaderboard"
)

// CodeBadRequest is reported for a body that is not a score submission.
const CodeBadRequest = "BAD_REQUEST"

// scoreRequest is the body of POST /score. Fields are pointers so a missing
// field can be told apart from a zero value.
type scoreRequest struct {
	Name  *string `json:"name"`
	Score *int    `json:"score"`
}

type handler struct {
	source leaderboard.Source
	logger *log.Logger
}

// list serves GET /leaderboard.
func (h *handler) list(c *gin.Context) {
	entries, err := h.source.List(c.Request.Context())
	if err != nil {
		h.storageFailure(c, "list", err)
		return
	}
	if entries == nil {
		entries = []leaderboard.RankedEntry{}
	}
	c.JSON(http.StatusOK, entries)
}

// submit serves POST /score.
func (h *handler) submit(c *gin.Context) {
	var req scoreRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == nil || req.Score == nil {
		c.JSON(http.StatusBadRequest, leaderboard.SubmitResult{Error: CodeBadRequest})
		return
	}

	name, err := leaderboard.NormalizeName(*req.Name)
	if err != nil {
		c.JSON(http.StatusBadRequest, leaderboard.SubmitResult{Error: leaderboard.CodeInvalidName})
		return
	}
	if err := leaderboard.ValidateScore(*req.Score); err != nil {
		c.JSON(http.StatusBadRequest, leaderboard.SubmitResult{Error: leaderboard.CodeInvalidScore})
		return
	}

	res, err := h.source.Submit(c.Request.Context(), name, *req.Score)
	if err != nil {
		h.storageFailure(c, "submit", err)
		return
	}
	if !res.Success {
		h.logger.Info("submission rejected", "name", name, "score", *req.Score, "code", res.Error)
	}
	c.JSON(http.StatusOK, res)
}

// winner serves GET /winner. An empty board answers null.
func (h *handler) winner(c *gin.Context) {
	entry, ok, err := h.source.Winner(c.Request.Context())
	if err != nil {
		h.storageFailure(c, "winner", err)
		return
	}
	if !ok {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// reset serves DELETE /reset.
func (h *handler) reset(c *gin.Context) {
	if err := h.source.Reset(c.Request.Context()); err != nil {
		h.storageFailure(c, "reset", err)
		return
	}
	h.logger.Info("leaderboard reset", "ip", c.ClientIP())
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handler) storageFailure(c *gin.Context, op string, err error) {
	h.logger.Error("leaderboard store failed", "op", op, "error", err, "request_id", c.GetString(requestIDKey))
	c.JSON(http.StatusInternalServerError, leaderboard.SubmitResult{Error: leaderboard.CodeStorage})
}
