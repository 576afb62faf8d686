package routes

import (
	"github.com/labstack/echo/v4"

	"ppe-tracker/internal/controllers"
)

func runStatusRouter(secureGroup *echo.Group, ctrl *controllers.StatusController) {
	secureGroup.GET("/statuses", ctrl.GetStatuses)
	secureGroup.GET("/statuses/:id", ctrl.FindStatus)
}
