package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/pikacalc/internal/domain/session"
)

type selectRequest struct {
	Pokemon string `json:"pokemon"`
}

type teamRequest struct {
	Name string `json:"name"`
}

// SelectedPokemon returns the selected species, or 404 when nothing is selected.
func (h *Handler) SelectedPokemon(c *gin.Context) {
	sp, ok := h.session.Selected()
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusNotFound, "not_found", "no pokemon selected", nil))
		return
	}
	c.JSON(http.StatusOK, sp)
}

// SelectPokemon resolves and selects a species; an empty reference clears the selection.
// The current build follows the selection.
func (h *Handler) SelectPokemon(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	if strings.TrimSpace(req.Pokemon) == "" {
		h.session.SelectPokemon(nil)
		c.Status(http.StatusNoContent)
		return
	}

	sp, err := h.rosterSvc.Lookup(c.Request.Context(), req.Pokemon)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	h.session.SelectPokemon(&sp)
	if _, err := h.session.UpdateBuild(session.BuildPatch{Pokemon: &sp}); err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, sp)
}

// CurrentBuild returns the build being edited.
func (h *Handler) CurrentBuild(c *gin.Context) {
	c.JSON(http.StatusOK, h.session.CurrentBuild())
}

// UpdateBuild merges the supplied fields into the current build.
func (h *Handler) UpdateBuild(c *gin.Context) {
	var patch session.BuildPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	b, err := h.session.UpdateBuild(patch)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, b)
}

// ResetBuild restores the default build.
func (h *Handler) ResetBuild(c *gin.Context) {
	c.JSON(http.StatusOK, h.session.ResetBuild())
}

// ListBuilds returns saved builds.
func (h *Handler) ListBuilds(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"builds": h.session.Builds()})
}

// SaveBuild stores the posted build, or the current build when the body is empty.
func (h *Handler) SaveBuild(c *gin.Context) {
	b, ok := h.buildFromBody(c)
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, h.session.SaveBuild(b))
}

// DeleteBuild removes a saved build.
func (h *Handler) DeleteBuild(c *gin.Context) {
	if err := h.session.DeleteBuild(c.Param("id")); err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

// ListTeams returns every team along with the selected team id.
func (h *Handler) ListTeams(c *gin.Context) {
	selected := ""
	if t, ok := h.session.SelectedTeam(); ok {
		selected = t.ID
	}
	c.JSON(http.StatusOK, gin.H{"teams": h.session.Teams(), "selected": selected})
}

// CreateTeam adds an empty named team.
func (h *Handler) CreateTeam(c *gin.Context) {
	var req teamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	team, err := h.session.CreateTeam(req.Name)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusCreated, team)
}

// DeleteTeam removes a team.
func (h *Handler) DeleteTeam(c *gin.Context) {
	if err := h.session.DeleteTeam(c.Param("id")); err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

// SelectTeam marks a team as the active one.
func (h *Handler) SelectTeam(c *gin.Context) {
	if err := h.session.SelectTeam(c.Param("id")); err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

// PlaceTeamMember puts the posted build (or the current build) at a team position.
func (h *Handler) PlaceTeamMember(c *gin.Context) {
	position, err := strconv.Atoi(c.Param("position"))
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "position must be an integer", err))
		return
	}
	b, ok := h.buildFromBody(c)
	if !ok {
		return
	}
	team, err := h.session.AddToTeam(c.Param("id"), b, position)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, team)
}

// Settings returns the user preferences.
func (h *Handler) Settings(c *gin.Context) {
	c.JSON(http.StatusOK, h.session.Settings())
}

// UpdateSettings merges the supplied preferences.
func (h *Handler) UpdateSettings(c *gin.Context) {
	var patch session.SettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	settings, err := h.session.UpdateSettings(patch)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *Handler) buildFromBody(c *gin.Context) (session.Build, bool) {
	if c.Request.ContentLength == 0 {
		return h.session.CurrentBuild(), true
	}
	var b session.Build
	if err := c.ShouldBindJSON(&b); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return session.Build{}, false
	}
	return b, true
}
