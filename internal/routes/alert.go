package routes

import (
	"github.com/labstack/echo/v4"

	"ppe-tracker/internal/controllers"
)

func runAlertRouter(secureGroup *echo.Group, alertCtrl *controllers.AlertController, reportCtrl *controllers.ReportController, dashboardCtrl *controllers.DashboardController) {
	secureGroup.GET("/alerts", alertCtrl.GetAlerts)
	secureGroup.GET("/reports/alerts", reportCtrl.ExportAlerts)
	secureGroup.GET("/dashboard", dashboardCtrl.GetDashboard)
}
