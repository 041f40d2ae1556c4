package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"comic_portfolio/models"
	"comic_portfolio/services"
	"comic_portfolio/storage"

	"github.com/gin-gonic/gin"
)

type ArtRequest struct {
	Title       string         `json:"title" binding:"required"`
	Subtitle    string         `json:"subtitle" binding:"required"`
	Description string         `json:"description"`
	Type        models.ArtType `json:"type" binding:"required,min=1,max=6"`
	Artist      uint           `json:"artist" binding:"required"`
	Tags        []uint         `json:"tags"`
	Characters  []uint         `json:"characters"`
}

type ArtPatchRequest struct {
	Title       *string         `json:"title"`
	Subtitle    *string         `json:"subtitle"`
	Description *string         `json:"description"`
	Type        *models.ArtType `json:"type" binding:"omitempty,min=1,max=6"`
	Artist      *uint           `json:"artist" binding:"omitempty,min=1"`
	Tags        []uint          `json:"tags"`
	Characters  []uint          `json:"characters"`
}

type artResponse struct {
	ID          uint           `json:"id"`
	Title       string         `json:"title"`
	Subtitle    string         `json:"subtitle"`
	Description string         `json:"description"`
	Image       *string        `json:"image"`
	Type        models.ArtType `json:"type"`
	Tags        []uint         `json:"tags"`
	Characters  []uint         `json:"characters"`
	Artist      uint           `json:"artist"`
	CreatedAt   time.Time      `json:"created_at"`
	CreatedBy   uint           `json:"created_by"`
}

func newArtResponse(a *models.Art) artResponse {
	return artResponse{
		ID:          a.ID,
		Title:       a.Title,
		Subtitle:    a.Subtitle,
		Description: a.Description,
		Image:       storage.URL(a.Image),
		Type:        a.Type,
		Tags:        a.TagIDs(),
		Characters:  a.CharacterIDs(),
		Artist:      a.ArtistID,
		CreatedAt:   a.CreatedAt,
		CreatedBy:   a.CreatedByID,
	}
}

func newArtResponses(arts []models.Art) []artResponse {
	out := make([]artResponse, 0, len(arts))
	for i := range arts {
		out = append(out, newArtResponse(&arts[i]))
	}
	return out
}

// parseIDList parses a comma separated list of ids such as "1,2,3".
func parseIDList(s string) ([]uint, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a valid id", p)
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

func (a *API) listArts(c *gin.Context) {
	tagIDs, err := parseIDList(c.Query("tags"))
	if err != nil {
		badRequest(c, fmt.Errorf("tags: %w", err))
		return
	}
	artistIDs, err := parseIDList(c.Query("artists"))
	if err != nil {
		badRequest(c, fmt.Errorf("artists: %w", err))
		return
	}

	arts, err := a.Arts.List(c.Request.Context(), services.ArtFilter{TagIDs: tagIDs, ArtistIDs: artistIDs})
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newArtResponses(arts))
}

func (a *API) getArt(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	art, err := a.Arts.Get(c.Request.Context(), id)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newArtResponse(art))
}

func (a *API) createArt(c *gin.Context) {
	var req ArtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	art, err := a.Arts.Create(c.Request.Context(), services.ArtInput{
		Title:        req.Title,
		Subtitle:     req.Subtitle,
		Description:  req.Description,
		Type:         req.Type,
		ArtistID:     req.Artist,
		TagIDs:       req.Tags,
		CharacterIDs: req.Characters,
	}, creator(c))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, newArtResponse(art))
}

func (a *API) replaceArt(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req ArtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	// Omitted relations are kept; an explicit empty list clears them.
	a.updateArt(c, id, services.ArtPatch{
		Title:        &req.Title,
		Subtitle:     &req.Subtitle,
		Description:  &req.Description,
		Type:         &req.Type,
		ArtistID:     &req.Artist,
		TagIDs:       req.Tags,
		CharacterIDs: req.Characters,
	})
}

func (a *API) patchArt(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req ArtPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	a.updateArt(c, id, services.ArtPatch{
		Title:        req.Title,
		Subtitle:     req.Subtitle,
		Description:  req.Description,
		Type:         req.Type,
		ArtistID:     req.Artist,
		TagIDs:       req.Tags,
		CharacterIDs: req.Characters,
	})
}

func (a *API) updateArt(c *gin.Context, id uint, patch services.ArtPatch) {
	art, err := a.Arts.Update(c.Request.Context(), id, patch)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newArtResponse(art))
}

func (a *API) deleteArt(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	image, err := a.Arts.Delete(c.Request.Context(), id)
	if err != nil {
		a.fail(c, err)
		return
	}
	if image != nil {
		a.removeMedia(*image)
	}
	c.Status(http.StatusNoContent)
}

func (a *API) uploadArtImage(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if _, err := a.Arts.Get(c.Request.Context(), id); err != nil {
		a.fail(c, err)
		return
	}

	rel, ok := a.saveUpload(c, "art")
	if !ok {
		return
	}

	art, previous, err := a.Arts.SetImage(c.Request.Context(), id, rel)
	if err != nil {
		a.removeMedia(rel)
		a.fail(c, err)
		return
	}
	if previous != nil {
		a.removeMedia(*previous)
	}

	c.JSON(http.StatusOK, gin.H{"id": art.ID, "image": storage.URL(art.Image)})
}
