package wallpaper

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/zenith-gallery/core/internal/models"
	"go.uber.org/zap"
)

const testID = "0b6c3f5e-8d1a-4c1e-9f3a-2a7d5e6f7a8b"

func newTestRouter(store *fakeStore, admin bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc, _, _ := newTestService(store)
	r := gin.New()
	guard := func(c *gin.Context) {
		if !admin {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
	NewHandler(svc, zap.NewNop()).RegisterRoutes(r.Group(""), guard)
	return r
}

func serve(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandlerListAndCount(t *testing.T) {
	store := &fakeStore{rows: []models.Wallpaper{{Base: models.Base{ID: testID}}}}
	r := newTestRouter(store, false)

	w := serve(r, http.MethodGet, "/fondos?limit=2&offset=1&etiquetas=Playa,,noche", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "["))
	assert.Equal(t, []string{"t1", "t2"}, store.lastFilter.TagIDs)
	assert.Equal(t, 2, store.lastPage.Limit)
	assert.Equal(t, 1, store.lastPage.Offset)

	w = serve(r, http.MethodGet, "/fondos?offset=-1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(r, http.MethodGet, "/fondos/total", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Body.String())
}

func TestHandlerEmptyListIsArray(t *testing.T) {
	r := newTestRouter(&fakeStore{}, false)
	w := serve(r, http.MethodGet, "/fondos?tipo=desktop", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestHandlerIncrementDownloads(t *testing.T) {
	store := &fakeStore{rows: []models.Wallpaper{{Base: models.Base{ID: testID}, NumeroDescargas: 1}}}
	r := newTestRouter(store, false)

	for _, body := range []string{`{}`, `{"incremento":"2"}`, `{"incremento":1.5}`, `{"incremento":0}`, `nope`} {
		w := serve(r, http.MethodPatch, "/fondos/"+testID+"/descargas", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
	assert.Zero(t, store.incremented)

	w := serve(r, http.MethodPatch, "/fondos/"+testID+"/descargas", `{"incremento":2}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"numero_descargas":3`)

	w = serve(r, http.MethodPatch, "/fondos/0b6c3f5e-0000-4c1e-9f3a-2a7d5e6f7a8b/descargas", `{"incremento":1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandlerMutationsRequireAdmin(t *testing.T) {
	r := newTestRouter(&fakeStore{}, false)
	w := serve(r, http.MethodPost, "/fondos", `{"imagen":"abc"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	r = newTestRouter(&fakeStore{}, true)
	w = serve(r, http.MethodPost, "/fondos", `{"titulo":"Aurora"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(r, http.MethodPost, "/fondos", `{"titulo":"ab","imagen":"abc"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(r, http.MethodPost, "/fondos", `{"imagen":"abc","etiquetas":"playa"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(r, http.MethodPost, "/fondos", `{"imagen":"abc","etiquetas":["t1"]}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"etiquetas":["t1"]`)
	assert.Contains(t, w.Body.String(), `"colores":[]`)
}
