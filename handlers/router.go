package handlers

import (
	"log/slog"
	"net/http"

	"comic_portfolio/auth"
	"comic_portfolio/permissions"
	"comic_portfolio/services"
	"comic_portfolio/storage"

	"github.com/gin-gonic/gin"
)

type API struct {
	Users      *services.UserService
	Characters *services.CharacterService
	Artists    *services.ArtistService
	Arts       *services.ArtService
	Tags       *services.TagService
	Media      *storage.MediaStore
	Tokens     *auth.TokenService
	// TokenLimiter throttles POST /api/token; nil disables throttling.
	TokenLimiter *auth.RateLimiter
	Logger       *slog.Logger
	// ServeMedia exposes uploaded files under /media/.
	ServeMedia bool
}

func (a *API) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(a.Logger))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if a.ServeMedia {
		router.Static(storage.URLPrefix, a.Media.Root())
	}

	api := router.Group("/api")
	api.Use(auth.Authenticate(a.Tokens, a.Users))

	token := api.Group("/token")
	if a.TokenLimiter != nil {
		token.Use(auth.RateLimit(a.TokenLimiter))
	}
	token.POST("", a.createToken)

	me := api.Group("/me", auth.Authorize(permissions.Authenticated))
	{
		me.GET("", a.getMe)
		me.PUT("", a.updateMe)
		me.PATCH("", a.updateMe)
	}

	api.POST("/users", a.registerUser)
	api.GET("/users", auth.Authorize(permissions.AdminOnly), a.listUsers)

	characters := api.Group("/characters", auth.Authorize(permissions.AdminOrReadOnly))
	{
		characters.GET("", a.listCharacters)
		characters.POST("", a.createCharacter)
		characters.GET("/:id", a.getCharacter)
		characters.PUT("/:id", a.replaceCharacter)
		characters.PATCH("/:id", a.patchCharacter)
		characters.DELETE("/:id", a.deleteCharacter)
	}

	artists := api.Group("/artists", auth.Authorize(permissions.AdminOrReadOnly))
	{
		artists.GET("", a.listArtists)
		artists.POST("", a.createArtist)
		artists.GET("/:id", a.getArtist)
		artists.PUT("/:id", a.replaceArtist)
		artists.PATCH("/:id", a.patchArtist)
		artists.DELETE("/:id", a.deleteArtist)
		artists.POST("/:id/upload-image", a.uploadArtistImage)
		artists.GET("/:id/artworks", a.listArtistArtworks)
	}

	arts := api.Group("/arts", auth.Authorize(permissions.AdminOrReadOnly))
	{
		arts.GET("", a.listArts)
		arts.POST("", a.createArt)
		arts.GET("/:id", a.getArt)
		arts.PUT("/:id", a.replaceArt)
		arts.PATCH("/:id", a.patchArt)
		arts.DELETE("/:id", a.deleteArt)
		arts.POST("/:id/upload-image", a.uploadArtImage)
	}

	tags := api.Group("/tags", auth.Authorize(permissions.AdminOnly))
	{
		tags.GET("", a.listTags)
		tags.POST("", a.createTag)
		tags.GET("/:id", a.getTag)
		tags.PUT("/:id", a.replaceTag)
		tags.PATCH("/:id", a.patchTag)
		tags.DELETE("/:id", a.deleteTag)
	}

	return router
}
