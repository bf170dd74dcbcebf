// Package sheets fetches observation spreadsheets from their online
// export URL, the second submission path besides direct file upload.
// The downloaded workbook enters the same validation pipeline as a
// browser upload; only the notification wording differs.
package sheets
