package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/pikacalc/internal/domain/calculator"
	"github.com/yanqian/pikacalc/internal/domain/roster"
	"github.com/yanqian/pikacalc/internal/domain/session"
	"github.com/yanqian/pikacalc/internal/domain/stats"
	"github.com/yanqian/pikacalc/internal/domain/typechart"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	rosterSvc roster.Service
	calcSvc   calculator.Service
	session   *session.Store
	logger    *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(rosterSvc roster.Service, calcSvc calculator.Service, store *session.Store, logger *slog.Logger) *Handler {
	return &Handler{
		rosterSvc: rosterSvc,
		calcSvc:   calcSvc,
		session:   store,
		logger:    logger.With("component", "http.handler"),
	}
}

type typeView struct {
	Key  typechart.Type `json:"key"`
	Name string         `json:"name"`
}

// ListTypes returns the type universe in canonical order.
func (h *Handler) ListTypes(c *gin.Context) {
	out := make([]typeView, len(typechart.All))
	for i, t := range typechart.All {
		out[i] = typeView{Key: t, Name: typechart.FormatTypeName(t)}
	}
	c.JSON(http.StatusOK, gin.H{"types": out})
}

// ListNatures returns the 25 natures.
func (h *Handler) ListNatures(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"natures": stats.Natures()})
}

// ListSpreads returns the EV presets.
func (h *Handler) ListSpreads(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"spreads": stats.EVSpreads()})
}

// CalculateStats computes the six final stats for one build.
func (h *Handler) CalculateStats(c *gin.Context) {
	var req calculator.StatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.calcSvc.Calculate(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TargetLevel finds the lowest level at which a stat reaches the requested value.
func (h *Handler) TargetLevel(c *gin.Context) {
	var req calculator.TargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.calcSvc.TargetLevel(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Matchups accepts ?types=fire,flying or ?pokemon=charizard.
func (h *Handler) Matchups(c *gin.Context) {
	req := calculator.MatchupRequest{Pokemon: strings.TrimSpace(c.Query("pokemon"))}
	if raw := c.Query("types"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				req.Types = append(req.Types, t)
			}
		}
	}

	resp, err := h.calcSvc.Matchups(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}
