package handlers

import (
	"net/http"

	"comic_portfolio/auth"
	"comic_portfolio/models"
	"comic_portfolio/services"

	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Name     string `json:"name" binding:"max=255"`
	Password string `json:"password" binding:"required,min=5"`
}

type TokenRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateMeRequest serves both PUT and PATCH on /api/me; absent fields are
// left unchanged.
type UpdateMeRequest struct {
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	Name     *string `json:"name" binding:"omitempty,max=255"`
	Password *string `json:"password" binding:"omitempty,min=5"`
}

type userResponse struct {
	ID      uint   `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsStaff bool   `json:"is_staff"`
}

func newUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Name: u.Name, IsStaff: u.IsStaff}
}

func (a *API) createToken(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := a.Users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		a.fail(c, err)
		return
	}

	token, err := a.Tokens.Generate(user)
	if err != nil {
		a.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (a *API) registerUser(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := a.Users.Create(c.Request.Context(), services.UserInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	}, false)
	if err != nil {
		a.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, newUserResponse(user))
}

func (a *API) listUsers(c *gin.Context) {
	users, err := a.Users.List(c.Request.Context())
	if err != nil {
		a.fail(c, err)
		return
	}

	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, newUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (a *API) getMe(c *gin.Context) {
	user, _ := auth.CurrentUser(c)
	c.JSON(http.StatusOK, newUserResponse(user))
}

func (a *API) updateMe(c *gin.Context) {
	user, _ := auth.CurrentUser(c)

	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	updated, err := a.Users.Update(c.Request.Context(), user.ID, services.UserPatch{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		a.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(updated))
}
