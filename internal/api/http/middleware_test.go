package http

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/diagnosis-service/internal/observability"
	apperrors "github.com/spec-kit/diagnosis-service/pkg/util"
)

func newObservedApp(t *testing.T) (*fiber.App, *observer.ObservedLogs, *observability.Metrics) {
	t.Helper()

	core, logs := observer.New(zap.InfoLevel)
	metrics := observability.NewMetrics()

	app := fiber.New()
	RegisterMiddlewares(app, zap.New(core), metrics, 0)
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	app.Get("/denied", func(c *fiber.Ctx) error {
		return apperrors.NewUnauthorized("nope")
	})
	return app, logs, metrics
}

func TestRequestLogging_RecordsFinalStatus(t *testing.T) {
	t.Parallel()

	app, logs, metrics := newObservedApp(t)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/denied", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// The request log must carry the status the client saw, not the
	// pre-conversion default.
	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	require.EqualValues(t, fiber.StatusUnauthorized, entries[0].ContextMap()["status"])

	require.EqualValues(t, 1, metrics.RequestTotal())
}

func TestRequestLogging_SuccessStatus(t *testing.T) {
	t.Parallel()

	app, logs, metrics := newObservedApp(t)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ok", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	require.EqualValues(t, fiber.StatusOK, entries[0].ContextMap()["status"])

	require.EqualValues(t, 1, metrics.RequestTotal())
}
