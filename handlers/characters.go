package handlers

import (
	"net/http"

	"comic_portfolio/models"
	"comic_portfolio/services"

	"github.com/gin-gonic/gin"
)

type CharacterRequest struct {
	PageID          string       `json:"page_id" binding:"max=10"`
	Name            string       `json:"name" binding:"required"`
	Sex             models.Sex   `json:"sex" binding:"required,oneof=M F"`
	Alive           *bool        `json:"alive" binding:"required"`
	FirstAppearance *models.Date `json:"first_appearance" binding:"required"`
}

type CharacterPatchRequest struct {
	PageID          *string      `json:"page_id" binding:"omitempty,max=10"`
	Name            *string      `json:"name"`
	Sex             *models.Sex  `json:"sex" binding:"omitempty,oneof=M F"`
	Alive           *bool        `json:"alive"`
	FirstAppearance *models.Date `json:"first_appearance"`
}

func (a *API) listCharacters(c *gin.Context) {
	characters, err := a.Characters.List(c.Request.Context(), c.Query("name"))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, characters)
}

func (a *API) getCharacter(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	character, err := a.Characters.Get(c.Request.Context(), id)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, character)
}

func (a *API) createCharacter(c *gin.Context) {
	var req CharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	character, err := a.Characters.Create(c.Request.Context(), services.CharacterInput{
		PageID:          req.PageID,
		Name:            req.Name,
		Sex:             req.Sex,
		Alive:           *req.Alive,
		FirstAppearance: *req.FirstAppearance,
	}, creator(c))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, character)
}

func (a *API) replaceCharacter(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req CharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	a.updateCharacter(c, id, services.CharacterPatch{
		PageID:          &req.PageID,
		Name:            &req.Name,
		Sex:             &req.Sex,
		Alive:           req.Alive,
		FirstAppearance: req.FirstAppearance,
	})
}

func (a *API) patchCharacter(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req CharacterPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	a.updateCharacter(c, id, services.CharacterPatch{
		PageID:          req.PageID,
		Name:            req.Name,
		Sex:             req.Sex,
		Alive:           req.Alive,
		FirstAppearance: req.FirstAppearance,
	})
}

func (a *API) updateCharacter(c *gin.Context, id uint, patch services.CharacterPatch) {
	character, err := a.Characters.Update(c.Request.Context(), id, patch)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, character)
}

func (a *API) deleteCharacter(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := a.Characters.Delete(c.Request.Context(), id); err != nil {
		a.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
