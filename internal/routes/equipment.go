package routes

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"ppe-tracker/internal/controllers"
	"ppe-tracker/internal/entities"
	"ppe-tracker/pkg/middleware"
)

func runEquipmentRouter(
	secureGroup *echo.Group,
	equipmentCtrl *controllers.EquipmentController,
	inspectionCtrl *controllers.InspectionController,
	alertCtrl *controllers.AlertController,
	reportCtrl *controllers.ReportController,
	authMW *middleware.AuthMiddleware,
) {
	adminOnly := authMW.RequireRoles(entities.RoleAdmin)

	equipment := secureGroup.Group("/equipment")
	equipment.GET("", equipmentCtrl.GetEquipments)
	equipment.GET("/:id", equipmentCtrl.FindEquipment)
	equipment.POST("", equipmentCtrl.CreateEquipment, adminOnly)
	equipment.PUT("/:id", equipmentCtrl.UpdateEquipment, adminOnly)
	equipment.DELETE("/:id", equipmentCtrl.DeleteEquipment, adminOnly)
	equipment.POST("/import", equipmentCtrl.ImportEquipment, adminOnly, echomw.BodyLimit("10M"))

	equipment.GET("/:id/inspections", inspectionCtrl.ListForEquipment)
	equipment.GET("/:id/inspections/export", reportCtrl.ExportInspectionHistory)
	equipment.GET("/:id/alert", alertCtrl.EquipmentAlert)
}
