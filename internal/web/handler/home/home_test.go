package home

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dreamboard/dreamboard/internal/config"
	"github.com/dreamboard/dreamboard/internal/db/models"
	"github.com/dreamboard/dreamboard/internal/dream"
	"github.com/dreamboard/dreamboard/internal/web/handler"
	"github.com/dreamboard/dreamboard/internal/web/navigation"
)

// recordingViews is a minimal Fiber Views engine used for tests.
// It writes the template name, the dream count and the active sort.
type recordingViews struct{}

func (recordingViews) Load() error { return nil }

func (recordingViews) Render(w io.Writer, name string, data interface{}, _ ...string) error {
	m, ok := data.(fiber.Map)
	if !ok {
		_, err := io.WriteString(w, name)
		return err
	}

	nav := m["Navigation"].(*navigation.Context)
	_, err := fmt.Fprintf(w, "%s|%d|%s|%s", name, len(m["Dreams"].([]dream.View)), nav.SortBy, nav.Order)

	return err
}

func newTestApp(t *testing.T) (*fiber.App, *dream.Service) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open sqlite in-memory db")
	require.NoError(t, db.AutoMigrate(models.All()...))

	cfg := &config.Config{Title: "Dreamboard", Listing: config.Listing{DefaultLimit: 9, MaxLimit: 100}}
	svc := dream.New(db, nil, cfg.Listing)

	app := fiber.New(fiber.Config{Views: recordingViews{}})
	s := &Service{}
	require.NoError(t, s.Init(app, cfg, handler.Deps{Dreams: svc}))

	return app, svc
}

func TestGet(t *testing.T) {
	app, svc := newTestApp(t)

	for _, goal := range []dream.Amount{1, 2} {
		_, err := svc.Create(dream.CreateInput{
			Title:       "dream",
			Description: "description",
			FundingGoal: goal,
			Creator:     "0x52908400098527886e0f7030069857d2e4169ee7",
			ImageURL:    "/api/images/a.png",
			Telegram:    "@a",
		})
		require.NoError(t, err)
	}

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "defaults", path: "/", want: "home/home|2|createdAt|desc"},
		{name: "sorted", path: "/?sortBy=fundingGoal&order=asc", want: "home/home|2|fundingGoal|asc"},
		{name: "unknown sort falls back", path: "/?sortBy=secret", want: "home/home|2|createdAt|desc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusOK, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(body))
		})
	}
}
