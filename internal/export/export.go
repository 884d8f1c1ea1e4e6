// Package export renders booking lists as spreadsheets.
package export

import (
	"fmt"
	"io"
	"time"

	"shareit/internal/models"

	"github.com/xuri/excelize/v2"
)

const (
	SheetName   = "Bookings"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var headers = []string{"Booking ID", "Item ID", "Item", "Booker ID", "Booker", "Booker email", "Start", "End", "Status"}

// WriteBookings writes an xlsx workbook with one row per booking to w.
func WriteBookings(w io.Writer, bookings []*models.Booking) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return fmt.Errorf("error writing header: %w", err)
		}
		_ = f.SetCellStyle(SheetName, cell, cell, headerStyle)
	}

	for i, b := range bookings {
		row := i + 2
		values := []any{b.ID, b.ItemID, "", b.BookerID, "", "", formatTime(b.Start), formatTime(b.End), string(b.Status)}
		if b.Item != nil {
			values[2] = b.Item.Name
		}
		if b.Booker != nil {
			values[4] = b.Booker.Name
			values[5] = b.Booker.Email
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("error writing row %d: %w", row, err)
		}
		if fill, ok := statusFill[b.Status]; ok {
			style, _ := f.NewStyle(&excelize.Style{
				Fill: excelize.Fill{Type: "pattern", Color: []string{fill}, Pattern: 1},
			})
			statusCell, _ := excelize.CoordinatesToCellName(len(headers), row)
			_ = f.SetCellStyle(SheetName, statusCell, statusCell, style)
		}
	}

	_ = f.SetColWidth(SheetName, "A", "B", 12)
	_ = f.SetColWidth(SheetName, "C", "F", 25)
	_ = f.SetColWidth(SheetName, "G", "H", 22)
	_ = f.SetColWidth(SheetName, "I", "I", 12)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("error writing workbook: %w", err)
	}
	return nil
}

var statusFill = map[models.Status]string{
	models.StatusWaiting:  "#FFF2CC",
	models.StatusApproved: "#C6EFCE",
	models.StatusRejected: "#FFC7CE",
	models.StatusCanceled: "#D9D9D9",
}

func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04")
}
