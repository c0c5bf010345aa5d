package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/zvrva/flightops/config"
	"github.com/zvrva/flightops/internal/client"
	"github.com/zvrva/flightops/internal/console"
	"go.uber.org/zap"
)

const usage = `commands:
  <resource>                      list (resources: flights passengers bookings airlines airports staff)
  <resource> /<term>              list filtered by substring
  <resource> create k=v ...       create a record
  <resource> edit <id> k=v ...    update only the given fields
  <resource> delete <id>          delete a record
  flights cancel <flight_no>      cancel a flight and its bookings
  staff transfer <id> <airport_id> [notes]
  staff history <id>
  bookings audit [limit]
  analytics                       show all analytics sections
  quit`

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	api := client.NewAPI(cfg.Console.BaseURL)
	ui := console.New(api, time.Duration(cfg.Console.SuccessTTLSeconds)*time.Second)

	ctx := context.Background()
	fmt.Println("flight operations console")
	fmt.Println(usage)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return
		}
		if line == "help" {
			fmt.Println(usage)
			continue
		}
		run(ctx, ui, strings.Fields(line))
	}
}

func run(ctx context.Context, ui *console.Console, args []string) {
	resource := args[0]
	rest := args[1:]

	switch resource {
	case "flights":
		runFlights(ctx, ui, rest)
	case "passengers":
		runPassengers(ctx, ui, rest)
	case "bookings":
		runBookings(ctx, ui, rest)
	case "airlines":
		runAirlines(ctx, ui, rest)
	case "airports":
		runAirports(ctx, ui, rest)
	case "staff":
		runStaff(ctx, ui, rest)
	case "analytics":
		runAnalytics(ctx, ui)
	default:
		fmt.Println("unknown resource:", resource)
	}
}

// searchTerm interprets a single "/term" argument as a local filter.
func searchTerm(args []string) (string, bool) {
	if len(args) == 1 && strings.HasPrefix(args[0], "/") {
		return strings.TrimPrefix(args[0], "/"), true
	}
	return "", len(args) == 0
}

func parsePayload(args []string) map[string]any {
	payload := map[string]any{}
	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		if !found {
			continue
		}
		payload[key] = console.ParseFieldValue(key, value)
	}
	return payload
}

func parseIDArg(arg string) (int64, bool) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		fmt.Println("invalid id:", arg)
		return 0, false
	}
	return id, true
}

func report(p *console.Page, key string, err error) {
	if err != nil {
		fmt.Println("error:", p.MutationError(key))
		return
	}
	fmt.Println(p.Success())
}

func runFlights(ctx context.Context, ui *console.Console, args []string) {
	p := ui.Flights
	if term, isList := searchTerm(args); isList {
		if err := p.Refresh(ctx); err != nil {
			fmt.Println("error:", p.LoadError())
			return
		}
		header, rows := console.FlightRows(p.Rows(term))
		console.RenderTable(os.Stdout, header, rows)
		return
	}

	switch args[0] {
	case "create":
		report(p.Page, "create", p.Create(ctx, parsePayload(args[1:])))
	case "edit":
		if len(args) < 3 {
			fmt.Println("usage: flights edit <id> k=v ...")
			return
		}
		id, ok := parseIDArg(args[1])
		if !ok {
			return
		}
		report(p.Page, "edit", p.Update(ctx, id, parsePayload(args[2:])))
	case "delete":
		if len(args) != 2 {
			fmt.Println("usage: flights delete <id>")
			return
		}
		id, ok := parseIDArg(args[1])
		if !ok {
			return
		}
		report(p.Page, "delete", p.Delete(ctx, id))
	case "cancel":
		if len(args) != 2 {
			fmt.Println("usage: flights cancel <flight_no>")
			return
		}
		report(p.Page, "cancel", p.Cancel(ctx, args[1]))
	default:
		fmt.Println("unknown command:", args[0])
	}
}

func runPassengers(ctx context.Context, ui *console.Console, args []string) {
	p := ui.Passengers
	if term, isList := searchTerm(args); isList {
		if err := p.Refresh(ctx); err != nil {
			fmt.Println("error:", p.LoadError())
			return
		}
		header, rows := console.PassengerRows(p.Rows(term))
		console.RenderTable(os.Stdout, header, rows)
		return
	}

	switch args[0] {
	case "create":
		report(p.Page, "create", p.Create(ctx, parsePayload(args[1:])))
	case "book":
		report(p.Page, "create-with-booking", p.CreateWithBooking(ctx, parsePayload(args[1:])))
	case "edit":
		if len(args) < 3 {
			fmt.Println("usage: passengers edit <id> k=v ...")
			return
		}
		id, ok := parseIDArg(args[1])
		if !ok {
			return
		}
		report(p.Page, "edit", p.Update(ctx, id, parsePayload(args[2:])))
	case "delete":
		if len(args) != 2 {
			fmt.Println("usage: passengers delete <id>")
			return
		}
		id, ok := parseIDArg(args[1])
		if !ok {
			return
		}
		report(p.Page, "delete", p.Delete(ctx, id))
	default:
		fmt.Println("unknown command:", args[0])
	}
}

func runBookings(ctx context.Context, ui *console.Console, args []string) {
	p := ui.Bookings
	if term, isList := searchTerm(args); isList {
		if err := p.Refresh(ctx); err != nil {
			fmt.Println("error:", p.LoadError())
			return
		}
		header, rows := console.BookingRows(p.Rows(term))
		console.RenderTable(os.Stdout, header, rows)
		return
	}

	switch args[0] {
	case "create":
		report(p.Page, "create", p.Create(ctx, parsePayload(args[1:])))
	case "edit":
		if len(args) < 3 {
			fmt.Println("usage: bookings edit <id> k=v ...")
			return
		}
		id, ok := parseIDArg(args[1])
		if !ok {
			return
		}
		report(p.Page, "edit", p.Update(ctx, id, parsePayload(args[2:])))
	case "delete":
		if len(args) != 2 {
			fmt.Println("usage: bookings delete <id>")
			return
		}
		id, ok := parseIDArg(args[1])
		if !ok {
			return
		}
		report(p.Page, "delete", p.Delete(ctx, id))
	case "audit":
		limit := 100
		if len(args) > 1 {
			if n, err := strconv.Atoi(args[1]); err == nil {
				limit = n
			}
		}
		entries, err := p.Audit(ctx, limit)
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		header, rows := console.AuditRows(entries)
		console.RenderTable(os.Stdout, header, rows)
	default:
		fmt.Println("unknown command:", args[0])
	}
}

func runAirlines(ctx context.Context, ui *console.Console, args []string) {
	p := ui.Airlines
	if term, isList := searchTerm(args); isList {
		if err := p.Refresh(ctx); err != nil {
			fmt.Println("error:", p.LoadError())
			return
		}
		header, rows := console.AirlineRows(p.Rows(term))
		console.RenderTable(os.Stdout, header, rows)
		return
	}

	switch args[0] {
	case "create":
		report(p.Page, "create", p.Create(ctx, parsePayload(args[1:])))
	case "edit":
		if len(args) < 3 {
			fmt.Println("usage: airlines edit <id> k=v ...")
			return
		}
		id, ok := parseIDArg(args[1])
		if !ok {
			return
		}
		report(p.Page, "edit", p.Update(ctx, id, parsePayload(args[2:])))
	case "delete":
		if len(args) != 2 {
			fmt.Println("usage: airlines delete <id>")
			return
		}
		id, ok := parseIDArg(args[1])
		if !ok {
			return
		}
		report(p.Page, "delete", p.Delete(ctx, id))
	case "flights":
		if len(args) != 2 {
			fmt.Println("usage: airlines flights <id>")
			return
		}
		id, ok := parseIDArg(args[1])
		if !ok {
			return
		}
		flights, err := p.Flights(ctx, id)
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		header, rows := console.FlightRows(flights)
		console.RenderTable(os.Stdout, header, rows)
	default:
		fmt.Println("unknown command:", args[0])
	}
}

func runAirports(ctx context.Context, ui *console.Console, args []string) {
	p := ui.Airports
	if term, isList := searchTerm(args); isList {
		if err := p.Refresh(ctx); err != nil {
			fmt.Println("error:", p.LoadError())
			return
		}
		header, rows := console.AirportRows(p.Rows(term))
		console.RenderTable(os.Stdout, header, rows)
		return
	}

	switch args[0] {
	case "create":
		report(p.Page, "create", p.Create(ctx, parsePayload(args[1:])))
	case "edit":
		if len(args) < 3 {
			fmt.Println("usage: airports edit <id> k=v ...")
			return
		}
		id, ok := parseIDArg(args[1])
		if !ok {
			return
		}
		report(p.Page, "edit", p.Update(ctx, id, parsePayload(args[2:])))
	case "delete":
		if len(args) != 2 {
			fmt.Println("usage: airports delete <id>")
			return
		}
		id, ok := parseIDArg(args[1])
		if !ok {
			return
		}
		report(p.Page, "delete", p.Delete(ctx, id))
	default:
		fmt.Println("unknown command:", args[0])
	}
}

func runStaff(ctx context.Context, ui *console.Console, args []string) {
	p := ui.Staff
	if term, isList := searchTerm(args); isList {
		if err := p.Refresh(ctx); err != nil {
			fmt.Println("error:", p.LoadError())
			return
		}
		header, rows := console.StaffRows(p.Rows(term))
		console.RenderTable(os.Stdout, header, rows)
		return
	}

	switch args[0] {
	case "create":
		report(p.Page, "create", p.Create(ctx, parsePayload(args[1:])))
	case "edit":
		if len(args) < 3 {
			fmt.Println("usage: staff edit <id> k=v ...")
			return
		}
		id, ok := parseIDArg(args[1])
		if !ok {
			return
		}
		report(p.Page, "edit", p.Update(ctx, id, parsePayload(args[2:])))
	case "delete":
		if len(args) != 2 {
			fmt.Println("usage: staff delete <id>")
			return
		}
		id, ok := parseIDArg(args[1])
		if !ok {
			return
		}
		report(p.Page, "delete", p.Delete(ctx, id))
	case "transfer":
		if len(args) < 3 {
			fmt.Println("usage: staff transfer <id> <airport_id> [notes]")
			return
		}
		staffID, ok := parseIDArg(args[1])
		if !ok {
			return
		}
		airportID, ok := parseIDArg(args[2])
		if !ok {
			return
		}
		notes := strings.Join(args[3:], " ")
		report(p.Page, "transfer", p.Transfer(ctx, staffID, airportID, notes))
	case "history":
		if len(args) != 2 {
			fmt.Println("usage: staff history <id>")
			return
		}
		id, ok := parseIDArg(args[1])
		if !ok {
			return
		}
		records, err := p.History(ctx, id)
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		header, rows := console.HistoryRows(records)
		console.RenderTable(os.Stdout, header, rows)
	default:
		fmt.Println("unknown command:", args[0])
	}
}

func runAnalytics(ctx context.Context, ui *console.Console) {
	p := ui.Analytics
	if err := p.Refresh(ctx); err != nil {
		fmt.Println("error:", p.LoadError())
		return
	}

	fmt.Println("flights with above-average bookings:")
	for _, f := range p.AboveAverage {
		fmt.Printf("  %s (%s): %d bookings\n", f.FlightNo, f.Airline, f.TotalBookings)
	}
	fmt.Println("unique passengers per airline:")
	for _, a := range p.PerAirline {
		fmt.Printf("  %s: %d\n", a.Airline, a.UniquePassengers)
	}
	fmt.Println("busiest airports:")
	for _, a := range p.BusyAirports {
		fmt.Printf("  %s (%s): %d departures, %d arrivals\n", a.Airport, a.City, a.Departures, a.Arrivals)
	}
	fmt.Printf("passenger booking detail rows: %d\n", len(p.BookingDetails))
}
