package handlers

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"comic_portfolio/auth"
	"comic_portfolio/database/dbtest"
	"comic_portfolio/logger"
	"comic_portfolio/models"
	"comic_portfolio/services"
	"comic_portfolio/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	api    *API
	router *gin.Engine
	db     *gorm.DB
	admin  *models.User
	member *models.User
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db := dbtest.New(t)
	tokens, err := auth.NewTokenService("test-secret", time.Hour)
	require.NoError(t, err)

	api := &API{
		Users:      services.NewUserService(db),
		Characters: services.NewCharacterService(db),
		Artists:    services.NewArtistService(db),
		Arts:       services.NewArtService(db),
		Tags:       services.NewTagService(db),
		Media:      storage.NewMediaStore(t.TempDir(), 1<<20),
		Tokens:     tokens,
		Logger:     logger.Discard(),
		ServeMedia: true,
	}

	return &testServer{
		api:    api,
		router: api.Router(),
		db:     db,
		admin:  dbtest.CreateAdmin(t, db, "admin@example.com"),
		member: dbtest.CreateUser(t, db, "member@example.com"),
	}
}

func (s *testServer) token(t *testing.T, u *models.User) string {
	t.Helper()
	if u == nil {
		return ""
	}
	token, err := s.api.Tokens.Generate(u)
	require.NoError(t, err)
	return token
}

// do sends body as JSON, authenticated as u when u is not nil.
func (s *testServer) do(t *testing.T, method, path string, u *models.User, body any) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := s.token(t, u); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) upload(t *testing.T, path string, u *models.User, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token := s.token(t, u); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{B: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func (s *testServer) createCharacter(t *testing.T, name string) models.Character {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/characters", s.admin, gin.H{
		"page_id":          "1",
		"name":             name,
		"sex":              "M",
		"alive":            true,
		"first_appearance": "1962-08-01",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[models.Character](t, w)
}

func (s *testServer) createTag(t *testing.T, name string) models.Tag {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/tags", s.admin, gin.H{"name": name, "description": "d"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[models.Tag](t, w)
}

func (s *testServer) createArtist(t *testing.T, name string) artistResponse {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/artists", s.admin, gin.H{"name": name})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[artistResponse](t, w)
}

func (s *testServer) createArt(t *testing.T, title string, artist uint, tags, characters []uint) artResponse {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/arts", s.admin, gin.H{
		"title":      title,
		"subtitle":   "sub",
		"type":       1,
		"artist":     artist,
		"tags":       tags,
		"characters": characters,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[artResponse](t, w)
}
