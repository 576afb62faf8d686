package routes

import (
	"github.com/labstack/echo/v4"

	"ppe-tracker/internal/controllers"
	"ppe-tracker/internal/entities"
	"ppe-tracker/pkg/middleware"
)

func runEquipmentTypeRouter(secureGroup *echo.Group, ctrl *controllers.EquipmentTypeController, authMW *middleware.AuthMiddleware) {
	adminOnly := authMW.RequireRoles(entities.RoleAdmin)

	types := secureGroup.Group("/equipment-types")
	types.GET("", ctrl.GetEquipmentTypes)
	types.GET("/:id", ctrl.FindEquipmentType)
	types.POST("", ctrl.CreateEquipmentType, adminOnly)
	types.PUT("/:id", ctrl.UpdateEquipmentType, adminOnly)
	types.DELETE("/:id", ctrl.DeleteEquipmentType, adminOnly)
}
