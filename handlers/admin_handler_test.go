package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminApp(adminID uuid.UUID) *fiber.App {
	app := fiber.New()
	app.Patch("/api/tutor/:id/approve", asUser(adminID, "admin"), ApproveApplication)
	app.Patch("/api/tutor/:id/reject", asUser(adminID, "admin"), RejectApplication)
	return app
}

// Approving must change both records in one transaction: the application
// to approved and the owning user to a verified tutor.
func TestApproveApplicationGrantsTutorRole(t *testing.T) {
	mock := newTestDB(t)
	mock.MatchExpectationsInOrder(false)

	adminID := uuid.New()
	applicationID := uuid.New()
	applicantUserID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "tutor_applications"`).
		WillReturnRows(tutorRows(applicationID, applicantUserID, 20))
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(userRows(applicantUserID))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "tutor_applications"`).
		WithArgs(nil, sqlmock.AnyArg(), sqlmock.AnyArg(), "approved", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "users"`).
		WithArgs("tutor", true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	app := adminApp(adminID)
	req := httptest.NewRequest("PATCH", "/api/tutor/"+applicationID.String()+"/approve", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	application := body["application"].(map[string]interface{})
	assert.Equal(t, "approved", application["status"])
	assert.Equal(t, adminID.String(), application["reviewed_by"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Rejection stores the feedback and stamps the reviewer but never
// touches the user record.
func TestRejectApplicationStoresFeedback(t *testing.T) {
	mock := newTestDB(t)
	mock.MatchExpectationsInOrder(false)

	adminID := uuid.New()
	applicationID := uuid.New()
	applicantUserID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "tutor_applications"`).
		WillReturnRows(tutorRows(applicationID, applicantUserID, 20))
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(userRows(applicantUserID))
	mock.ExpectExec(`UPDATE "tutor_applications"`).
		WithArgs("availability too limited for now", sqlmock.AnyArg(), sqlmock.AnyArg(), "rejected", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	app := adminApp(adminID)
	req := httptest.NewRequest("PATCH", "/api/tutor/"+applicationID.String()+"/reject",
		strings.NewReader(`{"feedback":"availability too limited for now"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	application := body["application"].(map[string]interface{})
	assert.Equal(t, "rejected", application["status"])
	assert.Equal(t, "availability too limited for now", application["admin_feedback"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRejectApplicationRequiresFeedback(t *testing.T) {
	newTestDB(t)

	app := adminApp(uuid.New())
	req := httptest.NewRequest("PATCH", "/api/tutor/"+uuid.New().String()+"/reject",
		strings.NewReader(`{"feedback":"too short"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
