package patient

import (
	"fmt"
	"net/http"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/labstack/echo/v4"
)

const exportSheet = "Patients"

// ExportWorkbook builds an xlsx workbook with one row per record, derived
// fields included.
func ExportWorkbook(items []*Patient) *excelize.File {
	file := excelize.NewFile()
	file.NewSheet(exportSheet)
	file.DeleteSheet("Sheet1")

	headers := map[string]string{
		"A1": "ID",
		"B1": "Name",
		"C1": "City",
		"D1": "Age",
		"E1": "Gender",
		"F1": "Height (m)",
		"G1": "Weight (kg)",
		"H1": "BMI",
		"I1": "Verdict",
	}
	for cell, title := range headers {
		file.SetCellValue(exportSheet, cell, title)
	}

	for i, p := range items {
		row := i + 2
		file.SetCellValue(exportSheet, fmt.Sprintf("A%d", row), p.ID)
		file.SetCellValue(exportSheet, fmt.Sprintf("B%d", row), p.Name)
		file.SetCellValue(exportSheet, fmt.Sprintf("C%d", row), p.City)
		file.SetCellValue(exportSheet, fmt.Sprintf("D%d", row), p.Age)
		file.SetCellValue(exportSheet, fmt.Sprintf("E%d", row), p.Gender)
		file.SetCellValue(exportSheet, fmt.Sprintf("F%d", row), p.Height)
		file.SetCellValue(exportSheet, fmt.Sprintf("G%d", row), p.Weight)
		file.SetCellValue(exportSheet, fmt.Sprintf("H%d", row), p.BMI)
		file.SetCellValue(exportSheet, fmt.Sprintf("I%d", row), string(p.Verdict))
	}
	return file
}

func (h *Handler) ExportPatients(c echo.Context) error {
	items, err := h.svc.ListAll(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	file := ExportWorkbook(items)

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	res.Header().Set(echo.HeaderContentDisposition, `attachment; filename="patients.xlsx"`)
	res.WriteHeader(http.StatusOK)
	return file.Write(res.Writer)
}
