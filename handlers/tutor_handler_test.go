package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Filtering by subject joins the subjects table; the listing must stay
// one row per tutor even when an application repeats a subject code.
func TestListTutorsSubjectFilterIsDistinct(t *testing.T) {
	mock := newTestDB(t)
	mock.MatchExpectationsInOrder(false)

	tutorID := uuid.New()
	tutorUserID := uuid.New()

	mock.ExpectQuery(`SELECT DISTINCT tutor_applications\.\* FROM "tutor_applications" JOIN application_subjects`).
		WillReturnRows(tutorRows(tutorID, tutorUserID, 20))
	mock.ExpectQuery(`SELECT \* FROM "application_subjects"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "application_id", "code", "name"}).
			AddRow(uuid.New(), tutorID, "MATH101", "Calculus").
			AddRow(uuid.New(), tutorID, "MATH101", "Calculus"))
	mock.ExpectQuery(`SELECT \* FROM "availability_slots"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(userRows(tutorUserID))
	mock.ExpectQuery(`SELECT tutor_id, COUNT\(\*\) as total FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"tutor_id", "total"}).AddRow(tutorID, 3))

	app := fiber.New()
	app.Get("/api/tutor/list", ListTutors)

	req := httptest.NewRequest("GET", "/api/tutor/list?subject=MATH101", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var entries []map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, tutorID.String(), entries[0]["id"])
	assert.Equal(t, 3.0, entries[0]["sessions_count"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
