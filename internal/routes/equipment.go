package routes

import (
	"github.com/labstack/echo/v4"

	"fleet-system/internal/controllers"
)

func runEquipmentRouter(secureGroup *echo.Group, equipmentCtrl *controllers.EquipmentController) {
	secureGroup.GET("/equipments", equipmentCtrl.GetEquipments)
	secureGroup.GET("/equipments/:id", equipmentCtrl.FindEquipment)
	secureGroup.POST("/equipments", equipmentCtrl.CreateEquipment)
	secureGroup.PUT("/equipments/:id", equipmentCtrl.UpdateEquipment)
	secureGroup.PATCH("/equipments/:id/counters", equipmentCtrl.UpdateCounters)
	secureGroup.DELETE("/equipments/:id", equipmentCtrl.DeleteEquipment)
	secureGroup.POST("/equipments/import", equipmentCtrl.ImportEquipments)
}
