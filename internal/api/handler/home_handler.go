package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type welcomeResponse struct {
	Message   string   `json:"message"`
	Resources []string `json:"resources"`
}

// Home handles GET /api/.
//
// @Summary      API welcome
// @Tags         home
// @Produce      json
// @Success      200  {object}  welcomeResponse
// @Router       / [get]
func Home(c echo.Context) error {
	return c.JSON(http.StatusOK, welcomeResponse{
		Message: "Topicos Web API",
		Resources: []string{
			"/api/auth", "/api/cons-projects", "/api/vehicles", "/api/users", "/api/events",
			"/api/products", "/api/projects", "/api/patients", "/api/reports",
		},
	})
}
