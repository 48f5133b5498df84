package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"fleet-system/internal/dto"
)

// EquipmentImportService загружает реестр техники из Excel-файла.
// Ожидается шапка с колонками "Наименование", "Марка", "Модель", "VIN",
// "Моточасы"; поиск шапки нечувствителен к регистру и к её положению на листе.
type EquipmentImportService struct {
	equipmentService EquipmentServiceInterface
	logger           *zap.Logger
}

func NewEquipmentImportService(equipmentService EquipmentServiceInterface, logger *zap.Logger) *EquipmentImportService {
	return &EquipmentImportService{
		equipmentService: equipmentService,
		logger:           logger,
	}
}

func (s *EquipmentImportService) ImportFromFile(ctx context.Context, filePath string) (imported int, err error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("ошибка открытия файла: %w", err)
	}
	defer f.Close()

	nameIdx, brandIdx, modelIdx, vinIdx, hoursIdx := -1, -1, -1, -1, -1
	headerRow := -1
	var finalRows [][]string

	for _, sheet := range f.GetSheetList() {
		rows, _ := f.GetRows(sheet)
		for rIdx, row := range rows {
			rowStr := strings.ToLower(strings.Join(row, "|"))
			if !strings.Contains(rowStr, "наименование") {
				continue
			}

			for cIdx, colName := range row {
				cLower := strings.ToLower(strings.TrimSpace(colName))
				switch {
				case strings.Contains(cLower, "наименование"):
					nameIdx = cIdx
				case strings.Contains(cLower, "марка"):
					brandIdx = cIdx
				case strings.Contains(cLower, "модель"):
					modelIdx = cIdx
				case strings.Contains(cLower, "vin"):
					vinIdx = cIdx
				case strings.Contains(cLower, "моточас"):
					hoursIdx = cIdx
				}
			}

			if nameIdx != -1 {
				finalRows = rows
				headerRow = rIdx
				break
			}
		}
		if headerRow != -1 {
			break
		}
	}

	if headerRow == -1 {
		return 0, fmt.Errorf("не найдена шапка таблицы: нужна колонка 'Наименование'")
	}

	cell := func(row []string, idx int) string {
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	for _, row := range finalRows[headerRow+1:] {
		name := cell(row, nameIdx)
		if name == "" {
			continue
		}

		var hours float64
		if raw := cell(row, hoursIdx); raw != "" {
			hours, _ = strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
		}

		data := dto.CreateEquipmentDTO{
			Name:  name,
			Brand: cell(row, brandIdx),
			Model: cell(row, modelIdx),
			VIN:   cell(row, vinIdx),
			Hours: hours,
		}

		if _, err := s.equipmentService.CreateEquipment(ctx, data); err != nil {
			s.logger.Warn("строка импорта пропущена", zap.String("name", name), zap.Error(err))
			continue
		}
		imported++
	}

	s.logger.Info("Импорт реестра техники завершен", zap.Int("imported", imported))
	return imported, nil
}
