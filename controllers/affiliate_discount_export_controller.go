package controllers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/tealeg/xlsx"

	"github.com/StoreSphere/affiliate-discount/utils"
)

// Admin: Download the affiliate ledger as Excel
func DownloadAffiliateLedgerExcel(c *gin.Context) {
	utils.LogInfo("DownloadAffiliateLedgerExcel called")

	records, err := ledger.ListAll()
	if err != nil {
		utils.LogError("Failed to fetch affiliate ledger: %v", err)
		utils.InternalServerError(c, "Failed to fetch affiliate ledger", err.Error())
		return
	}
	utils.LogDebug("Retrieved %d ledger records for Excel report", len(records))

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Affiliate Ledger")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet", err.Error())
		return
	}

	titleRow := sheet.AddRow()
	titleRow.AddCell().SetString("Affiliate Discount Ledger")
	dateRow := sheet.AddRow()
	dateRow.AddCell().SetString("Generated: " + time.Now().Format("2006-01-02 15:04"))
	sheet.AddRow() // spacing

	headers := []string{"Record ID", "Customer ID", "Customer Email", "Discount Code", "Commission %", "Usage Count", "Earnings", "Currency"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.SetString(h)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}

	var totalUsage, totalEarnings int64
	for _, record := range records {
		row := sheet.AddRow()
		row.AddCell().SetString(record.ID)
		row.AddCell().SetString(record.CustomerID)
		row.AddCell().SetString(record.CustomerEmail)
		row.AddCell().SetString(record.DiscountCode)
		row.AddCell().SetInt(record.Commission)
		row.AddCell().SetInt64(record.UsageCount)
		row.AddCell().SetInt64(record.Earnings)
		row.AddCell().SetString(record.CurrencyCode)
		totalUsage += record.UsageCount
		totalEarnings += record.Earnings
	}

	sheet.AddRow() // spacing
	summaryRow := sheet.AddRow()
	summaryRow.AddCell().SetString("Total records")
	summaryRow.AddCell().SetInt(len(records))
	usageRow := sheet.AddRow()
	usageRow.AddCell().SetString("Total usage")
	usageRow.AddCell().SetInt64(totalUsage)
	earningsRow := sheet.AddRow()
	earningsRow.AddCell().SetString("Total earnings (minor units)")
	earningsRow.AddCell().SetInt64(totalEarnings)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=affiliate_ledger.xlsx")
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel report: %v", err)
		return
	}
	utils.LogInfo("Successfully generated Excel ledger report with %d records", len(records))
}

// Admin: Download the affiliate ledger as PDF
func DownloadAffiliateLedgerPDF(c *gin.Context) {
	utils.LogInfo("DownloadAffiliateLedgerPDF called")

	records, err := ledger.ListAll()
	if err != nil {
		utils.LogError("Failed to fetch affiliate ledger: %v", err)
		utils.InternalServerError(c, "Failed to fetch affiliate ledger", err.Error())
		return
	}
	utils.LogDebug("Retrieved %d ledger records for PDF report", len(records))

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Affiliate Discount Ledger")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 8, "Generated: "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(12)

	headers := []string{"Customer Email", "Discount Code", "Commission %", "Usage", "Earnings", "Currency"}
	widths := []float64{80, 45, 30, 25, 35, 25}

	pdf.SetFont("Arial", "B", 10)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	var totalUsage, totalEarnings int64
	for _, record := range records {
		pdf.CellFormat(widths[0], 8, record.CustomerEmail, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 8, record.DiscountCode, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 8, fmt.Sprintf("%d", record.Commission), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 8, fmt.Sprintf("%d", record.UsageCount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 8, fmt.Sprintf("%d", record.Earnings), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[5], 8, record.CurrencyCode, "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
		totalUsage += record.UsageCount
		totalEarnings += record.Earnings
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(0, 8, fmt.Sprintf("Records: %d | Total usage: %d | Total earnings (minor units): %d",
		len(records), totalUsage, totalEarnings))

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", "attachment; filename=affiliate_ledger.pdf")
	if err := pdf.Output(c.Writer); err != nil {
		utils.LogError("Failed to write PDF report: %v", err)
		return
	}
	utils.LogInfo("Successfully generated PDF ledger report with %d records", len(records))
}
