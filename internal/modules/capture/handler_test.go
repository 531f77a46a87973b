package capture

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"snaplink/internal/modules/link"
)

func setupRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterVisitorRoutes(&r.RouterGroup, h)
	return r
}

func photoForm(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)
	fw, err := w.CreateFormFile("photo", "frame.jpg")
	require.NoError(t, err)
	_, err = fw.Write([]byte("\xff\xd8\xff\xe0 fake jpeg"))
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestUpload_RedirectsAfterIngest(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	links := new(MockLinks)
	links.On("GetByToken", mock.Anything, "tok").Return(&link.Link{
		Token:          "tok",
		DestinationURL: "https://example.com/landing",
	}, nil)
	links.On("BumpStats", mock.Anything, "tok", mock.Anything).Return(nil)

	service := NewService(repo, links, links, new(MockConfigs), factoryFor(&StubAdapter{}))
	router := setupRouter(NewHandler(service, links))

	body, contentType := photoForm(t, map[string]string{
		"user_agent":        "test-agent",
		"screen_resolution": "1920x1080",
	})
	req := httptest.NewRequest(http.MethodPost, "/p/tok/photo", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "https://example.com/landing", rec.Header().Get("Location"))
	require.Len(t, repo.created, 1)
	assert.Equal(t, "203.0.113.9", repo.created[0].IPAddress)
	assert.Equal(t, "test-agent", repo.created[0].UserAgent)
	assert.Equal(t, "1920x1080", repo.created[0].ScreenResolution)
}

func TestUpload_UnknownToken(t *testing.T) {
	repo := new(MockRepository)
	links := new(MockLinks)
	links.On("GetByToken", mock.Anything, "ghost").Return(nil, link.ErrNotFound)

	service := NewService(repo, links, links, new(MockConfigs), factoryFor(&StubAdapter{}))
	router := setupRouter(NewHandler(service, links))

	body, contentType := photoForm(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/p/ghost/photo", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	repo.AssertNotCalled(t, "Create")
}

func TestUpload_MissingPhoto(t *testing.T) {
	service := NewService(new(MockRepository), new(MockLinks), new(MockLinks), new(MockConfigs), factoryFor(&StubAdapter{}))
	router := setupRouter(NewHandler(service, new(MockLinks)))

	req := httptest.NewRequest(http.MethodPost, "/p/tok/photo", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestPage_UnknownToken(t *testing.T) {
	links := new(MockLinks)
	links.On("GetByToken", mock.Anything, "ghost").Return(nil, link.ErrNotFound)

	service := NewService(new(MockRepository), links, links, new(MockConfigs), factoryFor(&StubAdapter{}))
	router := setupRouter(NewHandler(service, links))

	req := httptest.NewRequest(http.MethodGet, "/p/ghost", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
