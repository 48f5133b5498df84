package routes

import (
	"github.com/labstack/echo/v4"

	"fleet-system/internal/controllers"
)

func runProcurementRouter(secureGroup *echo.Group, procurementCtrl *controllers.ProcurementController) {
	secureGroup.GET("/procurements", procurementCtrl.GetRequests)
	secureGroup.GET("/procurements/:id", procurementCtrl.FindRequest)
	secureGroup.GET("/procurements/:id/history", procurementCtrl.GetHistory)
	secureGroup.POST("/procurements", procurementCtrl.CreateRequest)
	secureGroup.PATCH("/procurements/:id/status", procurementCtrl.SetStatus)
	secureGroup.PUT("/procurements/:id", procurementCtrl.UpdateRequest)
}
