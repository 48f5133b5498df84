package routes

import (
	"github.com/labstack/echo/v4"

	"fleet-system/internal/controllers"
)

func runBreakdownRouter(secureGroup *echo.Group, breakdownCtrl *controllers.BreakdownController) {
	secureGroup.GET("/breakdowns", breakdownCtrl.GetBreakdowns)
	secureGroup.GET("/breakdowns/:id", breakdownCtrl.FindBreakdown)
	secureGroup.POST("/breakdowns", breakdownCtrl.Report)
	secureGroup.PATCH("/breakdowns/:id/status", breakdownCtrl.SetStatus)
}
