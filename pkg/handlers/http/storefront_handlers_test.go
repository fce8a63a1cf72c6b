package http_test

import (
	"errors"
	"io"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/NeuralTrust/SpamShield/pkg/app/blockpage"
	"github.com/NeuralTrust/SpamShield/pkg/app/integration"
	pluginMocks "github.com/NeuralTrust/SpamShield/pkg/app/integration/mocks"
	"github.com/NeuralTrust/SpamShield/pkg/domain/order"
	orderMocks "github.com/NeuralTrust/SpamShield/pkg/domain/order/mocks"
	handlers "github.com/NeuralTrust/SpamShield/pkg/handlers/http"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func postForm(t *testing.T, app *fiber.App, path string, values url.Values, headers map[string]string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestSubmitAccountHandler_Allowed(t *testing.T) {
	plugin := pluginMocks.NewPlugin(t)
	plugin.On("SubmitAccountBefore", mock.Anything, mock.MatchedBy(func(r *integration.Request) bool {
		return r.Value("email") == "a@b.c" &&
			r.Value("firstname") == "Ann" &&
			r.Referer == "https://shop.example/register" &&
			r.XForwardedFor == "10.0.0.1" &&
			r.UserAgent == "test-agent"
	})).Return(nil).Once()

	app := fiber.New()
	app.Post("/authentication", handlers.NewSubmitAccountHandler(newLogger(), plugin).Handle)

	status, body := postForm(t, app, "/authentication",
		url.Values{"email": {"a@b.c"}, "firstname": {"Ann"}},
		map[string]string{
			fiber.HeaderReferer:   "https://shop.example/register",
			"X-Forwarded-For":     "10.0.0.1",
			fiber.HeaderUserAgent: "test-agent",
		})

	assert.Equal(t, fiber.StatusCreated, status)
	assert.Contains(t, body, "registered")
}

func TestSubmitAccountHandler_BlockedWritesPage(t *testing.T) {
	plugin := pluginMocks.NewPlugin(t)
	plugin.On("SubmitAccountBefore", mock.Anything, mock.Anything).
		Return(&integration.BlockedError{Comment: "spam", Page: "<html>blocked</html>"}).Once()

	app := fiber.New()
	app.Post("/authentication", handlers.NewSubmitAccountHandler(newLogger(), plugin).Handle)

	req := httptest.NewRequest(fiber.MethodPost, "/authentication", strings.NewReader("email=a%40b.c"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "<html>blocked</html>", string(body))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/html")
}

func TestSubmitAccountHandler_MissingEmailStillChecked(t *testing.T) {
	plugin := pluginMocks.NewPlugin(t)
	plugin.On("SubmitAccountBefore", mock.Anything, mock.MatchedBy(func(r *integration.Request) bool {
		return r.Value("email") == "" && r.Value("firstname") == "Ann"
	})).Return(&integration.BlockedError{Page: "<html>blocked</html>"}).Once()

	app := fiber.New()
	app.Post("/authentication", handlers.NewSubmitAccountHandler(newLogger(), plugin).Handle)

	status, body := postForm(t, app, "/authentication", url.Values{"firstname": {"Ann"}}, nil)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Contains(t, body, "blocked")
}

func TestNewsletterHandler_MissingEmailStillChecked(t *testing.T) {
	plugin := pluginMocks.NewPlugin(t)
	plugin.On("NewsletterRegistrationBefore", mock.Anything, "", mock.Anything, false).Return("", nil).Once()

	app := fiber.New()
	app.Post("/newsletter", handlers.NewNewsletterHandler(newLogger(), plugin).Handle)

	status, _ := postForm(t, app, "/newsletter", url.Values{}, nil)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestContactHandler(t *testing.T) {
	t.Run("sent", func(t *testing.T) {
		plugin := pluginMocks.NewPlugin(t)
		plugin.On("FrontControllerInitAfter", mock.Anything, mock.MatchedBy(func(r *integration.Request) bool {
			return r.Controller == integration.ControllerContact && r.Has(integration.FieldSubmitMessage)
		})).Return(nil).Once()

		app := fiber.New()
		app.Post("/contact", handlers.NewContactHandler(newLogger(), plugin).Handle)

		status, _ := postForm(t, app, "/contact", url.Values{
			"from":                         {"a@b.c"},
			"message":                      {"hello"},
			integration.FieldSubmitMessage: {"1"},
		}, nil)
		assert.Equal(t, fiber.StatusOK, status)
	})

	t.Run("template unavailable", func(t *testing.T) {
		plugin := pluginMocks.NewPlugin(t)
		plugin.On("FrontControllerInitAfter", mock.Anything, mock.Anything).
			Return(blockpage.ErrTemplateUnavailable).Once()

		app := fiber.New()
		app.Post("/contact", handlers.NewContactHandler(newLogger(), plugin).Handle)

		status, body := postForm(t, app, "/contact", url.Values{"message": {"hello"}}, nil)
		assert.Equal(t, fiber.StatusInternalServerError, status)
		assert.Contains(t, body, handlers.ErrBlockPageUnavailable)
	})

	t.Run("unexpected error", func(t *testing.T) {
		plugin := pluginMocks.NewPlugin(t)
		plugin.On("FrontControllerInitAfter", mock.Anything, mock.Anything).
			Return(errors.New("boom")).Once()

		app := fiber.New()
		app.Post("/contact", handlers.NewContactHandler(newLogger(), plugin).Handle)

		status, body := postForm(t, app, "/contact", url.Values{"message": {"hello"}}, nil)
		assert.Equal(t, fiber.StatusInternalServerError, status)
		assert.Contains(t, body, handlers.ErrInternalServer)
	})
}

func TestOrderHandler_Allowed(t *testing.T) {
	plugin := pluginMocks.NewPlugin(t)
	orders := orderMocks.NewRepository(t)

	plugin.On("FrontControllerInitAfter", mock.Anything, mock.MatchedBy(func(r *integration.Request) bool {
		return r.Controller == integration.ControllerOrder
	})).Return(nil).Once()
	orders.On("Create", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
		return o.CustomerEmail == "a@b.c" && o.Note == "leave at door" && o.IsNew()
	})).Return(nil).Once()
	plugin.On("ValidateOrder", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	orders.On("ChangeState", mock.Anything, mock.Anything, order.StateAwaitingPayment).Return(nil).Once()

	app := fiber.New()
	app.Post("/order", handlers.NewOrderHandler(newLogger(), plugin, orders).Handle)

	status, body := postForm(t, app, "/order", url.Values{
		"email":   {"a@b.c"},
		"message": {"leave at door"},
	}, nil)

	assert.Equal(t, fiber.StatusCreated, status)
	assert.Contains(t, body, `"customer_email":"a@b.c"`)
}

func TestOrderHandler_BlockedAfterCancel(t *testing.T) {
	plugin := pluginMocks.NewPlugin(t)
	orders := orderMocks.NewRepository(t)

	plugin.On("FrontControllerInitAfter", mock.Anything, mock.Anything).Return(nil).Once()
	orders.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	plugin.On("ValidateOrder", mock.Anything, mock.Anything, mock.Anything).
		Return(&integration.BlockedError{Comment: "spam", Page: "<p>no</p>"}).Once()

	app := fiber.New()
	app.Post("/order", handlers.NewOrderHandler(newLogger(), plugin, orders).Handle)

	status, body := postForm(t, app, "/order", url.Values{"email": {"a@b.c"}}, nil)

	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "<p>no</p>", body)
	orders.AssertNotCalled(t, "ChangeState", mock.Anything, mock.Anything, order.StateAwaitingPayment)
}

func TestOrderHandler_CreateFails(t *testing.T) {
	plugin := pluginMocks.NewPlugin(t)
	orders := orderMocks.NewRepository(t)

	plugin.On("FrontControllerInitAfter", mock.Anything, mock.Anything).Return(nil).Once()
	orders.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()

	app := fiber.New()
	app.Post("/order", handlers.NewOrderHandler(newLogger(), plugin, orders).Handle)

	status, _ := postForm(t, app, "/order", url.Values{"email": {"a@b.c"}}, nil)
	assert.Equal(t, fiber.StatusInternalServerError, status)
	plugin.AssertNotCalled(t, "ValidateOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestNewsletterHandler(t *testing.T) {
	t.Run("hook error returned as json", func(t *testing.T) {
		plugin := pluginMocks.NewPlugin(t)
		plugin.On("NewsletterRegistrationBefore", mock.Anything, "a@b.c", mock.Anything, true).
			Return("Forbidden. Spam detected.", nil).Once()

		app := fiber.New()
		app.Post("/newsletter", handlers.NewNewsletterHandler(newLogger(), plugin).Handle)

		status, body := postForm(t, app, "/newsletter", url.Values{"email": {"a@b.c"}, "hook_error": {"1"}}, nil)
		assert.Equal(t, fiber.StatusUnprocessableEntity, status)
		assert.Contains(t, body, "Forbidden. Spam detected.")
	})

	t.Run("direct submission blocked", func(t *testing.T) {
		plugin := pluginMocks.NewPlugin(t)
		plugin.On("NewsletterRegistrationBefore", mock.Anything, "a@b.c", mock.Anything, false).
			Return("", &integration.BlockedError{Page: "<p>blocked</p>"}).Once()

		app := fiber.New()
		app.Post("/newsletter", handlers.NewNewsletterHandler(newLogger(), plugin).Handle)

		status, body := postForm(t, app, "/newsletter", url.Values{"email": {"a@b.c"}}, nil)
		assert.Equal(t, fiber.StatusForbidden, status)
		assert.Equal(t, "<p>blocked</p>", body)
	})

	t.Run("subscribed", func(t *testing.T) {
		plugin := pluginMocks.NewPlugin(t)
		plugin.On("NewsletterRegistrationBefore", mock.Anything, "a@b.c", mock.Anything, false).
			Return("", nil).Once()

		app := fiber.New()
		app.Post("/newsletter", handlers.NewNewsletterHandler(newLogger(), plugin).Handle)

		status, body := postForm(t, app, "/newsletter", url.Values{"email": {"a@b.c"}}, nil)
		assert.Equal(t, fiber.StatusOK, status)
		assert.Contains(t, body, "subscribed")
	})
}

func TestHeaderHandler(t *testing.T) {
	plugin := pluginMocks.NewPlugin(t)
	plugin.On("DisplayHeader", mock.Anything).Return(`<script src="x.js"></script>`).Once()

	app := fiber.New()
	app.Get("/header", handlers.NewHeaderHandler(plugin).Handle)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/header", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, `<script src="x.js"></script>`, string(body))
}
