/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package export renders the computed schedule for distribution outside the
// planner (shift handover sheets, upload to object storage).
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/friendsincode/skuld_plan/internal/models"
	"github.com/friendsincode/skuld_plan/internal/plan"
)

// ContentTypeXLSX is the MIME type of the generated workbook.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const sheet = "Schedule"

var headers = []string{
	"Code", "Product", "Date", "Start", "End",
	"Speed (m/min)", "Coils", "Planned Qty",
	"Setups", "Setup (min)", "Run (min)", "Pallet (min)", "Total",
}

// Workbook renders the sorted collection into an xlsx workbook.
func Workbook(items []models.ProductionOrder) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for i, it := range items {
		row := i + 2
		values := []any{
			it.ProductCode,
			it.Product,
			plan.FormatDate(it.StartsAt),
			plan.FormatTime(it.StartsAt),
			plan.FormatTime(it.EndsAt),
			it.Speed,
			it.TotalCoils,
			it.PlannedQuantity,
			it.SetupCount,
			it.SetupMinutes,
			it.RunMinutes,
			it.PalletMinutes,
			plan.FormatDuration(it.TotalMinutes),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
