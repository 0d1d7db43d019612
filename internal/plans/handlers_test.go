package plans

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
)

func newPlansApp(svc *Service) *fiber.App {
	app := fiber.New()
	RegisterRoutes(app.Group("/users/me/plans"), svc, func(c *fiber.Ctx) error {
		c.Locals("user_id", int64(7))
		return c.Next()
	})
	return app
}

func TestPlansRoutes(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT COALESCE\(saved_activity_ids`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows(plansCols).AddRow([]int64{3}, []int64{9}))

	app := newPlansApp(NewService(mock))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users/me/plans/", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("plans status: %v %d", err, resp.StatusCode)
	}

	var p Plans
	raw, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(raw, &p); err != nil {
		t.Fatalf("decode plans: %v", err)
	}
	if len(p.SavedActivityIDs) != 1 || len(p.SavedLodgingIDs) != 1 {
		t.Fatalf("unexpected plans: %+v", p)
	}

	mock.ExpectQuery(`SET saved_activity_ids`).
		WithArgs(int64(7), int64(5)).
		WillReturnRows(pgxmock.NewRows(plansCols).AddRow([]int64{3, 5}, []int64{9}))

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/users/me/plans/activities/5", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("toggle activity status: %v %d", err, resp.StatusCode)
	}

	mock.ExpectQuery(`SET saved_lodging_ids`).
		WithArgs(int64(7), int64(9)).
		WillReturnRows(pgxmock.NewRows(plansCols).AddRow([]int64{3, 5}, []int64{}))

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/users/me/plans/lodgings/9", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("toggle lodging status: %v %d", err, resp.StatusCode)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPlansRoutesBadID(t *testing.T) {
	app := newPlansApp(NewService(nil))

	resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/users/me/plans/activities/nope", nil))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
