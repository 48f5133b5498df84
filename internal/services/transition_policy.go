package services

import (
	apperrors "fleet-system/pkg/errors"
	"fleet-system/pkg/constants"
)

// TransitionPolicy решает, допустим ли переход статуса. Все установки статуса
// проходят через одну такую функцию, поэтому строгий режим включается в одном
// месте, без правки вызывающего кода.
type TransitionPolicy func(current, next string) error

// PermissiveTransitionPolicy - поведение по умолчанию: любой статус можно
// выставить напрямую. Операторы исправляют ошибки "прыжками" назад, и систему
// это не должно останавливать.
func PermissiveTransitionPolicy(current, next string) error {
	return nil
}

// StrictProcurementTransitionPolicy разрешает только движение вперёд по
// штатной последовательности снабжения, на один шаг за раз.
func StrictProcurementTransitionPolicy(current, next string) error {
	currentIdx := -1
	nextIdx := -1
	for i, code := range constants.ProcurementStatusOrder {
		if code == current {
			currentIdx = i
		}
		if code == next {
			nextIdx = i
		}
	}
	if nextIdx == -1 {
		return apperrors.NewInvalidInputError("неизвестный статус снабжения: %s", next)
	}
	if currentIdx != -1 && nextIdx != currentIdx+1 {
		return apperrors.NewInvalidInputError(
			"переход %s -> %s запрещён строгой политикой", current, next)
	}
	return nil
}

// StrictBreakdownTransitionPolicy запрещает оживлять устранённые поломки.
func StrictBreakdownTransitionPolicy(current, next string) error {
	if current == constants.BreakdownStatusFixed && next != constants.BreakdownStatusFixed {
		return apperrors.NewInvalidInputError("акт уже закрыт, переход в %s запрещён", next)
	}
	return nil
}
