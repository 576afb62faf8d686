package routes

import (
	"github.com/labstack/echo/v4"

	"ppe-tracker/internal/controllers"
	"ppe-tracker/internal/entities"
	"ppe-tracker/pkg/middleware"
)

func runInspectionRouter(secureGroup *echo.Group, ctrl *controllers.InspectionController, authMW *middleware.AuthMiddleware) {
	inspections := secureGroup.Group("/inspections")
	inspections.GET("", ctrl.GetInspections)
	inspections.GET("/:id", ctrl.FindInspection)
	inspections.POST("", ctrl.CreateInspection, authMW.RequireRoles(entities.RoleAdmin, entities.RoleInspector))
}
