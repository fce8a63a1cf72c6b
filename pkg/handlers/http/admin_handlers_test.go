package http_test

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	settingsMocks "github.com/NeuralTrust/SpamShield/pkg/app/settings/mocks"
	"github.com/NeuralTrust/SpamShield/pkg/domain/settings"
	handlers "github.com/NeuralTrust/SpamShield/pkg/handlers/http"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetVersionHandler(t *testing.T) {
	app := fiber.New()
	app.Get("/version", handlers.NewGetVersionHandler(newLogger()).Handle)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/version", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestGetSettingsHandler_MasksKey(t *testing.T) {
	manager := settingsMocks.NewManager(t)
	manager.On("Get", mock.Anything).Return(settings.Settings{APIKey: "abcdef1234", BotDetectorEnabled: true}, nil).Once()

	app := fiber.New()
	app.Get("/api/v1/settings", handlers.NewGetSettingsHandler(newLogger(), manager).Handle)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/settings", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"api_key":"******1234"`)
	assert.Contains(t, string(body), `"enable_bot_detector":true`)
	assert.NotContains(t, string(body), "abcdef")
}

func TestUpdateSettingsHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(m *settingsMocks.Manager)
		wantStatus int
		wantBody   string
	}{
		{
			name: "valid",
			body: `{"api_key":"key123","enable_bot_detector":true}`,
			setup: func(m *settingsMocks.Manager) {
				m.On("Update", mock.Anything, settings.Settings{APIKey: "key123", BotDetectorEnabled: true}).Return(nil).Once()
			},
			wantStatus: fiber.StatusOK,
			wantBody:   `"api_key_configured":true`,
		},
		{
			name: "invalid value",
			body: `{"api_key":"<script>","enable_bot_detector":false}`,
			setup: func(m *settingsMocks.Manager) {
				m.On("Update", mock.Anything, mock.Anything).Return(settings.ErrInvalidConfiguration).Once()
			},
			wantStatus: fiber.StatusBadRequest,
			wantBody:   handlers.ErrInvalidConfiguration,
		},
		{
			name:       "malformed json",
			body:       `{"api_key":`,
			setup:      func(m *settingsMocks.Manager) {},
			wantStatus: fiber.StatusBadRequest,
			wantBody:   handlers.ErrInvalidJsonPayload,
		},
		{
			name: "store failure",
			body: `{"api_key":"key123"}`,
			setup: func(m *settingsMocks.Manager) {
				m.On("Update", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()
			},
			wantStatus: fiber.StatusInternalServerError,
			wantBody:   handlers.ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager := settingsMocks.NewManager(t)
			tt.setup(manager)

			app := fiber.New()
			app.Put("/api/v1/settings", handlers.NewUpdateSettingsHandler(newLogger(), manager).Handle)

			req := httptest.NewRequest(fiber.MethodPut, "/api/v1/settings", strings.NewReader(tt.body))
			req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Contains(t, string(body), tt.wantBody)
		})
	}
}

func TestLifecycleHandlers(t *testing.T) {
	manager := settingsMocks.NewManager(t)
	manager.On("Install", mock.Anything).Return(nil).Once()
	manager.On("Uninstall", mock.Anything).Return(errors.New("db down")).Once()

	app := fiber.New()
	app.Post("/api/v1/install", handlers.NewInstallHandler(newLogger(), manager).Handle)
	app.Post("/api/v1/uninstall", handlers.NewUninstallHandler(newLogger(), manager).Handle)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/api/v1/install", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodPost, "/api/v1/uninstall", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
