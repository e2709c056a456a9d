package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authApp() *fiber.App {
	app := fiber.New()
	app.Post("/api/auth/register", RegisterUser)
	app.Post("/api/auth/login", LoginUser)
	return app
}

func TestRegisterValidation(t *testing.T) {
	newTestDB(t)
	app := authApp()

	for _, tc := range []struct {
		name string
		body string
	}{
		{"malformed json", `{`},
		{"missing email", `{"name":"Lena Apiyo","password":"secret1"}`},
		{"invalid email", `{"name":"Lena Apiyo","email":"not-an-email","password":"secret1"}`},
		{"short password", `{"name":"Lena Apiyo","email":"lena@x.com","password":"abc"}`},
		{"self-assigned admin role", `{"name":"Lena Apiyo","email":"lena@x.com","password":"secret1","role":"admin"}`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/auth/register", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestLoginValidation(t *testing.T) {
	newTestDB(t)
	app := authApp()

	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"email":"lena@x.com"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
