package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/pikacalc/internal/domain/roster"
)

type rosterResponse struct {
	Pokemon []roster.Species `json:"pokemon"`
	Count   int              `json:"count"`
}

// InitialPokemon returns the first page of the roster, ?limit= overriding the configured size.
func (h *Handler) InitialPokemon(c *gin.Context) {
	limit, ok := queryInt(c, "limit", 0)
	if !ok {
		return
	}

	list, err := h.rosterSvc.Initial(c.Request.Context(), limit)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	h.session.SetPokemonList(list)
	c.JSON(http.StatusOK, rosterResponse{Pokemon: list, Count: len(list)})
}

// RemainingPokemon completes the roster from ?current= and answers once the load is done.
func (h *Handler) RemainingPokemon(c *gin.Context) {
	current, ok := queryInt(c, "current", 0)
	if !ok {
		return
	}

	list, err := h.rosterSvc.Remaining(c.Request.Context(), current, nil)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	h.session.SetPokemonList(list)
	c.JSON(http.StatusOK, rosterResponse{Pokemon: list, Count: len(list)})
}

// StreamRemainingPokemon streams one snapshot per batch using Server-Sent Events.
func (h *Handler) StreamRemainingPokemon(c *gin.Context) {
	current, ok := queryInt(c, "current", 0)
	if !ok {
		return
	}

	stream, err := h.rosterSvc.StreamRemaining(c.Request.Context(), current)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "stream_unsupported", "streaming not supported", nil))
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)

	for snap := range stream {
		payload, err := json.Marshal(snap)
		if err != nil {
			h.logger.Error("marshal snapshot failed", "error", err)
			continue
		}
		c.Writer.Write([]byte("data: "))
		c.Writer.Write(payload)
		c.Writer.Write([]byte("\n\n"))
		flusher.Flush()
		if snap.Final() {
			h.session.SetPokemonList(snap.Species)
		}
	}
}

// SearchPokemon filters the resident roster by name, id or type; ?limit= caps the result.
func (h *Handler) SearchPokemon(c *gin.Context) {
	limit, ok := queryInt(c, "limit", 0)
	if !ok {
		return
	}

	list := h.session.PokemonList()
	if len(list) == 0 {
		list = h.rosterSvc.Cached(c.Request.Context())
	}
	found := roster.Search(list, c.Query("q"))
	if limit > 0 && len(found) > limit {
		found = found[:limit]
	}
	c.JSON(http.StatusOK, rosterResponse{Pokemon: found, Count: len(found)})
}

// PokemonDetails resolves one species by name, slug or id.
func (h *Handler) PokemonDetails(c *gin.Context) {
	sp, err := h.rosterSvc.Lookup(c.Request.Context(), c.Param("ref"))
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, sp)
}

// queryInt reads a non-negative integer parameter, aborting with 400 when it is malformed.
func queryInt(c *gin.Context, name string, fallback int) (int, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", name+" must be a non-negative integer", err))
		return 0, false
	}
	return v, true
}
