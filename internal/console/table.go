package console

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/zvrva/flightops/internal/domain"
)

const timeFormat = "2006-01-02 15:04"

// RenderTable writes a padded table with one header row.
func RenderTable(w io.Writer, header []string, rows [][]string) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}

func FlightRows(flights []domain.Flight) ([]string, [][]string) {
	header := []string{"ID", "FLIGHT", "AIRLINE", "FROM", "TO", "DEPARTURE", "STATUS", "SEATS"}
	rows := make([][]string, 0, len(flights))
	for _, f := range flights {
		rows = append(rows, []string{
			fmt.Sprintf("%d", f.ID), f.FlightNo, f.Airline, f.FromCity, f.ToCity,
			f.DepartureTime.Format(timeFormat), string(f.Status),
			fmt.Sprintf("%d/%d", f.AvailableSeats, f.Capacity),
		})
	}
	return header, rows
}

func PassengerRows(passengers []domain.Passenger) ([]string, [][]string) {
	header := []string{"ID", "NAME", "EMAIL", "PHONE", "BOOKINGS"}
	rows := make([][]string, 0, len(passengers))
	for _, p := range passengers {
		rows = append(rows, []string{
			fmt.Sprintf("%d", p.ID), p.FirstName + " " + p.LastName, p.Email, p.Phone,
			fmt.Sprintf("%d", p.BookingCount),
		})
	}
	return header, rows
}

func BookingRows(bookings []domain.Booking) ([]string, [][]string) {
	header := []string{"ID", "FLIGHT", "PASSENGER", "SEAT", "STATUS", "DATE"}
	rows := make([][]string, 0, len(bookings))
	for _, b := range bookings {
		rows = append(rows, []string{
			fmt.Sprintf("%d", b.ID), b.FlightNo, b.FirstName + " " + b.LastName,
			b.SeatNo, string(b.Status), b.Date.Format("2006-01-02"),
		})
	}
	return header, rows
}

func AirlineRows(airlines []domain.Airline) ([]string, [][]string) {
	header := []string{"ID", "NAME", "CONTACT"}
	rows := make([][]string, 0, len(airlines))
	for _, a := range airlines {
		rows = append(rows, []string{fmt.Sprintf("%d", a.ID), a.Name, a.ContactInfo})
	}
	return header, rows
}

func AirportRows(airports []domain.Airport) ([]string, [][]string) {
	header := []string{"ID", "NAME", "CITY", "COUNTRY", "TRAFFIC", "STAFF"}
	rows := make([][]string, 0, len(airports))
	for _, a := range airports {
		rows = append(rows, []string{
			fmt.Sprintf("%d", a.ID), a.Name, a.City, a.Country,
			fmt.Sprintf("%d", a.Departures+a.Arrivals),
			fmt.Sprintf("%d", a.TotalStaff),
		})
	}
	return header, rows
}

func StaffRows(members []domain.Staff) ([]string, [][]string) {
	header := []string{"ID", "NAME", "ROLE", "AIRLINE", "AIRPORT"}
	rows := make([][]string, 0, len(members))
	for _, s := range members {
		rows = append(rows, []string{
			fmt.Sprintf("%d", s.ID), s.FirstName + " " + s.LastName, s.Role,
			s.Airline, s.Airport + " (" + s.AirportCity + ")",
		})
	}
	return header, rows
}

func AuditRows(entries []domain.AuditEntry) ([]string, [][]string) {
	header := []string{"ID", "BOOKING", "OP", "TIME", "DETAILS"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			fmt.Sprintf("%d", e.AuditID), fmt.Sprintf("%d", e.BookingID), e.Operation,
			e.OpTime.Format(time.RFC3339), e.Details,
		})
	}
	return header, rows
}

func HistoryRows(records []domain.TransferRecord) ([]string, [][]string) {
	header := []string{"ID", "FROM", "TO", "WHEN", "NOTES"}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			fmt.Sprintf("%d", r.HistoryID),
			r.OldAirport + " (" + r.OldCity + ")",
			r.NewAirport + " (" + r.NewCity + ")",
			r.ChangedAt.Format(timeFormat), r.Notes,
		})
	}
	return header, rows
}
