package routes

import (
	"github.com/labstack/echo/v4"

	"fleet-system/internal/controllers"
)

func runMaintenanceRouter(secureGroup *echo.Group, maintenanceCtrl *controllers.MaintenanceController) {
	secureGroup.GET("/equipments/:equipmentId/maintenance", maintenanceCtrl.GetByEquipment)
	secureGroup.GET("/equipments/:equipmentId/records", maintenanceCtrl.GetRecords)
	secureGroup.POST("/maintenance", maintenanceCtrl.CreatePlanned)
	secureGroup.PUT("/maintenance/:id", maintenanceCtrl.UpdatePlanned)
	secureGroup.DELETE("/maintenance/:id", maintenanceCtrl.DeletePlanned)
}
