package log

import (
	"bytes"
	"encoding/json"
	"errors"
	stdlog "log"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeadmin/internal/domain"
)

func capture(t *testing.T, fn func()) []entry {
	t.Helper()
	var buf bytes.Buffer
	oldW, oldFlags := stdlog.Writer(), stdlog.Flags()
	stdlog.SetOutput(&buf)
	stdlog.SetFlags(0)
	defer func() {
		stdlog.SetOutput(oldW)
		stdlog.SetFlags(oldFlags)
	}()
	fn()

	var out []entry
	dec := json.NewDecoder(&buf)
	for dec.More() {
		var e entry
		require.NoError(t, dec.Decode(&e))
		out = append(out, e)
	}
	return out
}

func TestRequestLinesCarryTenantAndUser(t *testing.T) {
	app := fiber.New()
	app.Patch("/api/:storeId/sizes/:id", func(c *fiber.Ctx) error {
		c.Locals("user", &domain.User{ID: "u-1"})
		c.Status(fiber.StatusOK)
		Audit(c, "size.update", map[string]any{"id": c.Params("id")})
		return nil
	})

	lines := capture(t, func() {
		_, err := app.Test(httptest.NewRequest("PATCH", "/api/store-9/sizes/s-1", nil))
		require.NoError(t, err)
	})
	require.Len(t, lines, 1)
	e := lines[0]
	assert.Equal(t, "audit", e.Level)
	assert.Equal(t, "size.update", e.Action)
	assert.Equal(t, "store-9", e.StoreID)
	assert.Equal(t, "u-1", e.UserID)
	assert.Equal(t, "PATCH", e.Method)
	assert.Equal(t, 200, e.Status)
	assert.Equal(t, "s-1", e.Fields["id"])
}

func TestEventLevelFollowsError(t *testing.T) {
	lines := capture(t, func() {
		Event("events.published", nil, nil)
		Event("events.publish", errors.New("broker down"), map[string]any{"topic": "t"})
	})
	require.Len(t, lines, 2)
	assert.Equal(t, "info", lines[0].Level)
	assert.Equal(t, "error", lines[1].Level)
	assert.Equal(t, "broker down", lines[1].Err)
	assert.Empty(t, lines[1].Path)
}
