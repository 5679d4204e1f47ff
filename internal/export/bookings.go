package export

import (
	"fmt"
	"io"

	"tour-admin/internal/models"

	"github.com/xuri/excelize/v2"
)

const bookingsSheet = "Bookings"

var bookingHeaders = []string{
	"Booking #", "Order #", "Tour date", "Customer", "SKU", "Program",
	"Adult", "Child", "Hotel", "Phone", "Channel", "Paid",
	"OP", "RI", "Customer", "Cancelled",
}

// WriteBookingsXLSX renders bookings as a single-sheet workbook.
func WriteBookingsXLSX(w io.Writer, bookings []models.Booking, company string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", bookingsSheet); err != nil {
		return fmt.Errorf("error renaming sheet: %w", err)
	}
	if company != "" {
		if err := f.SetDocProps(&excelize.DocProperties{Creator: company, Title: "Bookings"}); err != nil {
			return fmt.Errorf("error setting properties: %w", err)
		}
	}

	for i, h := range bookingHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(bookingsSheet, cell, h); err != nil {
			return fmt.Errorf("error writing header %s: %w", cell, err)
		}
	}
	style, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("error creating header style: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(bookingHeaders), 1)
	if err := f.SetCellStyle(bookingsSheet, "A1", last, style); err != nil {
		return fmt.Errorf("error styling header: %w", err)
	}

	for i, b := range bookings {
		row := i + 2
		tourDate := ""
		if b.TourDate != nil {
			tourDate = b.TourDate.Format("2006-01-02")
		}
		channel := ""
		if b.Channel != nil {
			channel = *b.Channel
		}
		values := []interface{}{
			b.BookingNumber, b.OrderNumber, tourDate, b.CustomerName, b.SKU, b.Program,
			b.Adult, b.Child, b.Hotel, b.PhoneNumber, channel, b.Paid,
			yesNo(b.Op), yesNo(b.Ri), yesNo(b.Customer), yesNo(b.Cancelled),
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(bookingsSheet, cell, &values); err != nil {
			return fmt.Errorf("error writing row %d: %w", row, err)
		}
	}

	if err := f.SetColWidth(bookingsSheet, "A", "B", 14); err != nil {
		return err
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("error writing workbook: %w", err)
	}
	return nil
}

func yesNo(v bool) string {
	if v {
		return "Y"
	}
	return ""
}
