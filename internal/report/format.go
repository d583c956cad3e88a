package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/engine"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/model"
)

var (
	printer = message.NewPrinter(language.French)
	// French grouping uses no-break spaces, which the PDF core fonts cannot encode.
	plainSpaces = strings.NewReplacer("\u202f", " ", "\u00a0", " ")
)

var frenchMonths = [12]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// FormatCurrency formats whole euros the fr-FR way: "245 000 €".
func FormatCurrency(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return sign + plainSpaces.Replace(printer.Sprintf("%d", v)) + " €"
}

// FormatPercent formats a rate with two decimals: "8,77 %".
func FormatPercent(v float64) string {
	return formatSigned(v, "%.2f") + " %"
}

// FormatYears formats a duration in years with one decimal: "4,4 ans".
func FormatYears(v float64) string {
	return formatSigned(v, "%.1f") + " ans"
}

// FormatDate formats a timestamp as "19 octobre 2026 à 14:05".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d à %02d:%02d", t.Day(), frenchMonths[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}

func formatSigned(v float64, verb string) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	sign := ""
	if v < 0 && engine.RoundRate(v) != 0 {
		sign = "-"
	}
	return sign + plainSpaces.Replace(printer.Sprintf(verb, math.Abs(v)))
}

// Filename is the download name of a report: AM-Capital-Simulation-<city>-<date>.pdf.
func Filename(r model.SimulationReport) string {
	city := engine.NormalizeCity(r.Config.City)
	if city == "" {
		city = engine.DefaultCity
	}
	return fmt.Sprintf("AM-Capital-Simulation-%s-%s.pdf", city, r.GeneratedAt.Format("2006-01-02"))
}

func unitLabel(u model.UnitType) string {
	return strings.ToUpper(string(u))
}

func modeLabel(m model.ExploitationMode) string {
	if m == model.ShortTerm {
		return "Location courte durée (Airbnb)"
	}
	return "Location longue durée"
}
