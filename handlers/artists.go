package handlers

import (
	"log/slog"
	"net/http"

	"comic_portfolio/models"
	"comic_portfolio/services"
	"comic_portfolio/storage"

	"github.com/gin-gonic/gin"
)

type ArtistRequest struct {
	Name      string  `json:"name" binding:"required"`
	Instagram *string `json:"instagram" binding:"omitempty,max=128"`
	Deviant   *string `json:"deviant" binding:"omitempty,max=128"`
	Twitter   *string `json:"twitter" binding:"omitempty,max=128"`
	Oficial   *string `json:"oficial" binding:"omitempty,max=128"`
}

type ArtistPatchRequest struct {
	Name      *string `json:"name"`
	Instagram *string `json:"instagram" binding:"omitempty,max=128"`
	Deviant   *string `json:"deviant" binding:"omitempty,max=128"`
	Twitter   *string `json:"twitter" binding:"omitempty,max=128"`
	Oficial   *string `json:"oficial" binding:"omitempty,max=128"`
}

type artistResponse struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Slug      string  `json:"slug"`
	Image     *string `json:"image"`
	Instagram *string `json:"instagram"`
	Deviant   *string `json:"deviant"`
	Twitter   *string `json:"twitter"`
	Oficial   *string `json:"oficial"`
	CreatedBy uint    `json:"created_by"`
}

func newArtistResponse(a *models.Artist) artistResponse {
	return artistResponse{
		ID:        a.ID,
		Name:      a.Name,
		Slug:      a.Slug,
		Image:     storage.URL(a.Image),
		Instagram: a.Instagram,
		Deviant:   a.Deviant,
		Twitter:   a.Twitter,
		Oficial:   a.Oficial,
		CreatedBy: a.CreatedByID,
	}
}

func (a *API) listArtists(c *gin.Context) {
	artists, err := a.Artists.List(c.Request.Context(), c.Query("name"))
	if err != nil {
		a.fail(c, err)
		return
	}

	out := make([]artistResponse, 0, len(artists))
	for i := range artists {
		out = append(out, newArtistResponse(&artists[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (a *API) getArtist(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	artist, err := a.Artists.Get(c.Request.Context(), id)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newArtistResponse(artist))
}

func (a *API) createArtist(c *gin.Context) {
	var req ArtistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	artist, err := a.Artists.Create(c.Request.Context(), services.ArtistInput{
		Name:      req.Name,
		Instagram: req.Instagram,
		Deviant:   req.Deviant,
		Twitter:   req.Twitter,
		Oficial:   req.Oficial,
	}, creator(c))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, newArtistResponse(artist))
}

func (a *API) replaceArtist(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req ArtistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	a.updateArtist(c, id, services.ArtistPatch{
		Name:      &req.Name,
		Instagram: req.Instagram,
		Deviant:   req.Deviant,
		Twitter:   req.Twitter,
		Oficial:   req.Oficial,
	})
}

func (a *API) patchArtist(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req ArtistPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	a.updateArtist(c, id, services.ArtistPatch{
		Name:      req.Name,
		Instagram: req.Instagram,
		Deviant:   req.Deviant,
		Twitter:   req.Twitter,
		Oficial:   req.Oficial,
	})
}

func (a *API) updateArtist(c *gin.Context, id uint, patch services.ArtistPatch) {
	artist, err := a.Artists.Update(c.Request.Context(), id, patch)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newArtistResponse(artist))
}

func (a *API) deleteArtist(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	orphaned, err := a.Artists.Delete(c.Request.Context(), id)
	if err != nil {
		a.fail(c, err)
		return
	}
	for _, rel := range orphaned {
		a.removeMedia(rel)
	}
	c.Status(http.StatusNoContent)
}

func (a *API) uploadArtistImage(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if _, err := a.Artists.Get(c.Request.Context(), id); err != nil {
		a.fail(c, err)
		return
	}

	rel, ok := a.saveUpload(c, "artist")
	if !ok {
		return
	}

	artist, previous, err := a.Artists.SetImage(c.Request.Context(), id, rel)
	if err != nil {
		a.removeMedia(rel)
		a.fail(c, err)
		return
	}
	if previous != nil {
		a.removeMedia(*previous)
	}

	c.JSON(http.StatusOK, gin.H{"id": artist.ID, "image": storage.URL(artist.Image)})
}

func (a *API) listArtistArtworks(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	arts, err := a.Artists.Artworks(c.Request.Context(), id)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newArtResponses(arts))
}

// saveUpload stores the multipart "image" field under kind.
func (a *API) saveUpload(c *gin.Context, kind string) (string, bool) {
	fh, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image: no file was submitted"})
		return "", false
	}

	f, err := fh.Open()
	if err != nil {
		a.fail(c, err)
		return "", false
	}
	defer f.Close()

	rel, err := a.Media.SaveImage(kind, fh.Filename, f)
	if err != nil {
		a.fail(c, err)
		return "", false
	}
	return rel, true
}

func (a *API) removeMedia(rel string) {
	if err := a.Media.Remove(rel); err != nil {
		a.Logger.Warn("failed to remove media file",
			slog.String("path", rel),
			slog.String("error", err.Error()))
	}
}
