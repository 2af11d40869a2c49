package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/purse-ledger/internal/domain/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupCategoryRouter(settingsService *MockSettingsService) *gin.Engine {
	h := NewCategoryHandler(testLogger(), settingsService)
	router := newTestRouter()
	router.GET("/categories", h.List)
	router.POST("/categories", h.Create)
	router.PUT("/categories/:name", h.Rename)
	router.DELETE("/categories/:name", h.Delete)
	return router
}

func TestCategoryHandler_List(t *testing.T) {
	t.Run("NoCategories", func(t *testing.T) {
		settingsService := new(MockSettingsService)
		router := setupCategoryRouter(settingsService)

		settingsService.On("GetSettings", mock.Anything).Return(settings.Settings{}, nil)

		rr := performRequest(router, http.MethodGet, "/categories", "")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"data":[]}`, rr.Body.String())
	})

	t.Run("KeepsOrder", func(t *testing.T) {
		settingsService := new(MockSettingsService)
		router := setupCategoryRouter(settingsService)

		settingsService.On("GetSettings", mock.Anything).
			Return(settings.Settings{Categories: []string{"Rent", "Food", "Fun"}}, nil)

		rr := performRequest(router, http.MethodGet, "/categories", "")

		var resp []string
		decodeData(t, rr, &resp)
		assert.Equal(t, []string{"Rent", "Food", "Fun"}, resp)
	})
}

func TestCategoryHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{"Created", `{"name":"Travel"}`, nil, http.StatusCreated},
		{"Duplicate", `{"name":"Travel"}`, settings.ErrCategoryExists, http.StatusConflict},
		{"MissingName", `{}`, nil, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settingsService := new(MockSettingsService)
			router := setupCategoryRouter(settingsService)

			settingsService.On("AddCategory", mock.Anything, "Travel").
				Return(settings.Settings{Categories: []string{"Travel"}}, tt.err).Maybe()

			rr := performRequest(router, http.MethodPost, "/categories", tt.body)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusCreated {
				var resp []string
				decodeData(t, rr, &resp)
				assert.Equal(t, []string{"Travel"}, resp)
			}
		})
	}
}

func TestCategoryHandler_Rename(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		settingsService := new(MockSettingsService)
		router := setupCategoryRouter(settingsService)

		settingsService.On("RenameCategory", mock.Anything, "Food", "Groceries").
			Return(settings.Settings{Categories: []string{"Groceries"}}, nil)

		rr := performRequest(router, http.MethodPut, "/categories/Food", `{"name":"Groceries"}`)

		assert.Equal(t, http.StatusOK, rr.Code)
		settingsService.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		settingsService := new(MockSettingsService)
		router := setupCategoryRouter(settingsService)

		settingsService.On("RenameCategory", mock.Anything, "Nope", "Other").
			Return(settings.Settings{}, settings.ErrCategoryNotFound)

		rr := performRequest(router, http.MethodPut, "/categories/Nope", `{"name":"Other"}`)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "NOT_FOUND", decodeError(t, rr))
	})
}

func TestCategoryHandler_Delete(t *testing.T) {
	t.Run("Removed", func(t *testing.T) {
		settingsService := new(MockSettingsService)
		router := setupCategoryRouter(settingsService)

		settingsService.On("RemoveCategory", mock.Anything, "Food").Return(true, nil)

		rr := performRequest(router, http.MethodDelete, "/categories/Food", "")

		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("Unknown", func(t *testing.T) {
		settingsService := new(MockSettingsService)
		router := setupCategoryRouter(settingsService)

		settingsService.On("RemoveCategory", mock.Anything, "Food").Return(false, nil)

		rr := performRequest(router, http.MethodDelete, "/categories/Food", "")

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
