package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fleet-system/pkg/constants"
)

func TestPermissiveTransitionPolicy(t *testing.T) {
	// Разрешено всё, включая прыжки назад и повторную установку.
	assert.NoError(t, PermissiveTransitionPolicy(constants.ProcurementStatusWarehouse, constants.ProcurementStatusNew))
	assert.NoError(t, PermissiveTransitionPolicy(constants.BreakdownStatusFixed, constants.BreakdownStatusNew))
	assert.NoError(t, PermissiveTransitionPolicy("", constants.ProcurementStatusPaid))
}

func TestStrictProcurementTransitionPolicy(t *testing.T) {
	assert.NoError(t, StrictProcurementTransitionPolicy(constants.ProcurementStatusNew, constants.ProcurementStatusSourcing))
	assert.NoError(t, StrictProcurementTransitionPolicy(constants.ProcurementStatusPaid, constants.ProcurementStatusInTransit))

	assert.Error(t, StrictProcurementTransitionPolicy(constants.ProcurementStatusNew, constants.ProcurementStatusPaid),
		"прыжок через шаг запрещён")
	assert.Error(t, StrictProcurementTransitionPolicy(constants.ProcurementStatusPaid, constants.ProcurementStatusNew),
		"движение назад запрещено")
	assert.Error(t, StrictProcurementTransitionPolicy(constants.ProcurementStatusNew, "UNKNOWN"))
}

func TestStrictBreakdownTransitionPolicy(t *testing.T) {
	assert.NoError(t, StrictBreakdownTransitionPolicy(constants.BreakdownStatusNew, constants.BreakdownStatusInProgress))
	assert.NoError(t, StrictBreakdownTransitionPolicy(constants.BreakdownStatusFixed, constants.BreakdownStatusFixed))

	assert.Error(t, StrictBreakdownTransitionPolicy(constants.BreakdownStatusFixed, constants.BreakdownStatusInProgress),
		"закрытый акт не оживает")
}
