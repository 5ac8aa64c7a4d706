package Controllers

import (
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"Meghna/Models"
)

// BudgetController handles the budget head and ledger endpoints.
type BudgetController struct {
	DB *gorm.DB
}

func NewBudgetController(db *gorm.DB) *BudgetController {
	return &BudgetController{DB: db}
}

// GetLedger returns the recomputed budget position of every cost area.
func (c *BudgetController) GetLedger(ctx *fiber.Ctx) error {
	ledger, err := Models.ComputeBudgetLedger(c.DB)
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(ledger)
}

// GetBudgetHeads lists the raw budget heads for the admin forms.
func (c *BudgetController) GetBudgetHeads(ctx *fiber.Ctx) error {
	var heads []Models.BudgetHead
	if err := c.DB.Order("department, cost_area").Find(&heads).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve budget heads"})
	}
	return ctx.JSON(heads)
}

// UpsertBudgetHead creates or replaces the allocation of a cost area.
func (c *BudgetController) UpsertBudgetHead(ctx *fiber.Ctx) error {
	var input Models.BudgetHeadInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	head, err := Models.UpsertBudgetHead(c.DB, input, actorName(ctx))
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(head)
}

// UpdateBudgetHead edits a budget head by ID, including cost-area renames.
func (c *BudgetController) UpdateBudgetHead(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid budget head ID"})
	}

	var input Models.BudgetHeadInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	head, err := Models.UpdateBudgetHead(c.DB, uint(id), input, actorName(ctx))
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(head)
}

// ClearBudgetHeads wipes every budget head. Fiscal-year reset; request
// history stays.
func (c *BudgetController) ClearBudgetHeads(ctx *fiber.Ctx) error {
	deleted, err := Models.ClearBudgetHeads(c.DB, actorName(ctx))
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(fiber.Map{"deleted": deleted})
}

// ImportBudgetFile upserts budget heads from an uploaded XLSX or CSV file.
// Columns: Department, Cost Area, Total Budget. The first row is a header.
func (c *BudgetController) ImportBudgetFile(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No file uploaded"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	defer file.Close()

	var records [][]string
	switch strings.ToLower(filepath.Ext(fileHeader.Filename)) {
	case ".xlsx":
		workbook, err := excelize.OpenReader(file)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Could not read the Excel file"})
		}
		defer workbook.Close()
		records, err = workbook.GetRows(workbook.GetSheetName(0))
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	case ".csv":
		reader := csv.NewReader(file)
		reader.FieldsPerRecord = -1
		records, err = reader.ReadAll()
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Could not read the CSV file"})
		}
	default:
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Only .xlsx and .csv files are supported"})
	}

	rows, err := parseBudgetRecords(records)
	if err != nil {
		return fail(ctx, err)
	}

	imported, err := Models.ImportBudgetRows(c.DB, rows, actorName(ctx))
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(fiber.Map{"imported": imported})
}

// parseBudgetRecords converts raw spreadsheet rows into import rows. The
// header row is skipped; short rows are padded with empty cells.
func parseBudgetRecords(records [][]string) ([]Models.BudgetImportRow, error) {
	rows := make([]Models.BudgetImportRow, 0, len(records))
	for i, record := range records {
		if i == 0 {
			continue
		}
		cells := make([]string, 3)
		copy(cells, record)

		budget := decimal.Zero
		if raw := strings.TrimSpace(strings.ReplaceAll(cells[2], ",", "")); raw != "" {
			parsed, err := decimal.NewFromString(raw)
			if err != nil {
				return nil, &Models.OpError{
					Code:    Models.ErrInvalidAmount,
					Field:   "total_budget",
					Message: fmt.Sprintf("row %d: %q is not a valid amount", i+1, cells[2]),
				}
			}
			budget = parsed
		}
		rows = append(rows, Models.BudgetImportRow{
			Department:  cells[0],
			CostArea:    cells[1],
			TotalBudget: budget,
		})
	}
	return rows, nil
}

// ExportLedger streams the budget ledger as an XLSX workbook.
func (c *BudgetController) ExportLedger(ctx *fiber.Ctx) error {
	ledger, err := Models.ComputeBudgetLedger(c.DB)
	if err != nil {
		return fail(ctx, err)
	}

	workbook := excelize.NewFile()
	defer workbook.Close()
	sheet := workbook.GetSheetName(0)

	headers := []string{"Department", "Cost Area", "Total Budget", "Utilized Cost", "Remaining Balance", "Utilization %"}
	for col, title := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		workbook.SetCellValue(sheet, cell, title)
	}
	for i, row := range ledger.Rows {
		values := []interface{}{
			row.Department,
			row.CostArea,
			row.TotalBudget.InexactFloat64(),
			row.UtilizedCost.InexactFloat64(),
			row.RemainingBalance.InexactFloat64(),
			row.UtilizationPct.InexactFloat64(),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			workbook.SetCellValue(sheet, cell, value)
		}
	}
	totalsRow := len(ledger.Rows) + 2
	totals := []interface{}{
		"TOTAL",
		"",
		ledger.Totals.TotalBudget.InexactFloat64(),
		ledger.Totals.UtilizedCost.InexactFloat64(),
		ledger.Totals.RemainingBalance.InexactFloat64(),
		"",
	}
	for col, value := range totals {
		cell, _ := excelize.CoordinatesToCellName(col+1, totalsRow)
		workbook.SetCellValue(sheet, cell, value)
	}

	buffer, err := workbook.WriteToBuffer()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="budget_ledger.xlsx"`)
	return ctx.Send(buffer.Bytes())
}
