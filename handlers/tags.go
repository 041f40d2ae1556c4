package handlers

import (
	"encoding/json"
	"net/http"

	"comic_portfolio/services"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type TagRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required,max=255"`
	Group       *uint  `json:"group"`
}

type TagPatchRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description" binding:"omitempty,max=255"`
	Group       *uint   `json:"group"`
}

func (a *API) listTags(c *gin.Context) {
	tags, err := a.Tags.List(c.Request.Context())
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

func (a *API) getTag(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	tag, err := a.Tags.Get(c.Request.Context(), id)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

func (a *API) createTag(c *gin.Context) {
	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	tag, err := a.Tags.Create(c.Request.Context(), services.TagInput{
		Name:        req.Name,
		Description: req.Description,
		GroupID:     req.Group,
	}, creator(c))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, tag)
}

func (a *API) replaceTag(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	a.updateTag(c, id, services.TagPatch{
		Name:        &req.Name,
		Description: &req.Description,
		SetGroup:    true,
		GroupID:     req.Group,
	})
}

func (a *API) patchTag(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req TagPatchRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		badRequest(c, err)
		return
	}

	// "group": null clears the group, a missing key keeps it.
	var present map[string]json.RawMessage
	if body, ok := c.Get(gin.BodyBytesKey); ok {
		if err := json.Unmarshal(body.([]byte), &present); err != nil {
			badRequest(c, err)
			return
		}
	}
	_, setGroup := present["group"]

	a.updateTag(c, id, services.TagPatch{
		Name:        req.Name,
		Description: req.Description,
		SetGroup:    setGroup,
		GroupID:     req.Group,
	})
}

func (a *API) updateTag(c *gin.Context, id uint, patch services.TagPatch) {
	tag, err := a.Tags.Update(c.Request.Context(), id, patch)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

func (a *API) deleteTag(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := a.Tags.Delete(c.Request.Context(), id); err != nil {
		a.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
