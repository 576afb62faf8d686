package routes

import (
	"github.com/labstack/echo/v4"

	"ppe-tracker/internal/controllers"
	"ppe-tracker/internal/entities"
	"ppe-tracker/pkg/middleware"
)

func runUserRouter(secureGroup *echo.Group, userCtrl *controllers.UserController, authMW *middleware.AuthMiddleware) {
	users := secureGroup.Group("/users")
	users.GET("", userCtrl.GetUsers)
	users.GET("/:id", userCtrl.FindUser)
	users.POST("", userCtrl.CreateUser, authMW.RequireRoles(entities.RoleAdmin))
}
