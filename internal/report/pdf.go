// Package report renders simulation reports as PDF documents.
package report

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/apperrors"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/engine"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/model"
)

const (
	companyName    = "A&M CAPITAL"
	companyTagline = "Simulateur d'Investissement Locatif"
	companyAddress = "A&M Capital - 20 Rue Ampère, 91300 Massy"
	companyContact = "Tél: +33 1 42 86 83 85 - Email: contact@am-capital.fr"
	disclaimer     = "Ce rapport est fourni à titre informatif uniquement et ne constitue pas un conseil en investissement."
)

// Text is placed absolutely, so content stops above the footer band.
const pageBottom = 272.0

type rgb struct{ r, g, b int }

var (
	navy   = rgb{18, 31, 62}
	green  = rgb{34, 197, 94}
	blue   = rgb{59, 130, 246}
	orange = rgb{245, 158, 11}
	red    = rgb{239, 68, 68}
	grey   = rgb{100, 100, 100}
	black  = rgb{0, 0, 0}
)

// Document carries everything printed in a report.
type Document struct {
	Report      model.SimulationReport
	CityName    string
	Advice      []engine.Advice
	Fees        engine.FeeSchedule
	LoanAmount  float64
	LoanPayment float64 // monthly
}

type row struct {
	label string
	value string
	total bool
}

type renderer struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

// Render writes the report as a multi-page A4 PDF: summary, calculation
// detail, financial analysis and, when advice is present, recommendations.
func Render(w io.Writer, doc Document) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	r := &renderer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	pdf.SetTitle("Simulation d'investissement locatif", true)
	pdf.SetAuthor("A&M Capital", true)
	pdf.SetCreator(companyTagline, true)
	pdf.SetCreationDate(doc.Report.GeneratedAt)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 25)
	pdf.AliasNbPages("{nb}")
	pdf.SetFooterFunc(r.footer)

	r.summaryPage(doc)
	r.detailPage(doc)
	r.analysisPage(doc)
	if len(doc.Advice) > 0 {
		r.advicePage(doc)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrFailedToRenderReport, err)
	}
	return nil
}

func (r *renderer) summaryPage(doc Document) {
	rep := doc.Report
	r.pdf.AddPage()

	r.pdf.SetFillColor(navy.r, navy.g, navy.b)
	r.pdf.Rect(0, 0, 210, 30, "F")
	r.color(rgb{255, 255, 255})
	r.font("B", 24)
	r.text(20, 15, companyName)
	r.font("", 12)
	r.text(20, 22, companyTagline)
	r.font("", 10)
	r.text(130, 15, "Généré le "+FormatDate(rep.GeneratedAt))
	r.color(black)

	y := 50.0
	r.font("B", 18)
	r.text(20, y, "RÉSUMÉ EXÉCUTIF")
	y += 15

	r.font("B", 14)
	r.text(20, y, "Caractéristiques du bien")
	y += 10

	r.font("", 11)
	for _, line := range []string{
		"Ville: " + doc.CityName,
		fmt.Sprintf("Surface: %g m²", rep.Config.Surface),
		"Type: " + unitLabel(rep.Config.UnitType),
		"Prix d'acquisition: " + FormatCurrency(engine.RoundCurrency(rep.Config.Price)),
		"Type d'exploitation: " + modeLabel(rep.Config.ExploitationMode),
	} {
		r.text(25, y, line)
		y += 7
	}
	y += 10

	r.font("B", 14)
	r.text(20, y, "Résultats de la simulation")
	y += 10

	r.pdf.SetDrawColor(navy.r, navy.g, navy.b)
	r.pdf.SetLineWidth(1)
	r.pdf.Rect(20, y, 170, 60, "D")
	r.pdf.SetLineWidth(0.2)
	y += 15

	r.font("B", 24)
	r.color(green)
	r.text(30, y, FormatPercent(rep.Result.GrossReturn))
	r.font("", 12)
	r.color(black)
	r.text(85, y, "Rendement brut annuel")
	y += 15

	r.font("", 11)
	for _, m := range []row{
		{label: "Loyer mensuel:", value: FormatCurrency(rep.Result.MonthlyRent)},
		// the headline box never shows a negative cash-flow; the detail page does
		{label: "Cash-flow mensuel:", value: FormatCurrency(max(0, rep.Result.Cashflow))},
		{label: "Coût total d'acquisition:", value: FormatCurrency(rep.Result.TotalCosts)},
	} {
		r.font("B", 11)
		r.text(30, y, m.label)
		r.font("", 11)
		r.text(100, y, m.value)
		y += 8
	}
	y += 20

	r.font("B", 14)
	r.text(20, y, "Recommandation")
	y += 6

	r.font("", 11)
	r.color(levelColor(rep.Recommendation.Level))
	r.paragraph(20, y, 170, rep.Recommendation.Message)
	r.color(black)
}

func (r *renderer) detailPage(doc Document) {
	rep, res := doc.Report, doc.Report.Result
	r.pdf.AddPage()

	y := 40.0
	r.font("B", 18)
	r.text(20, y, "DÉTAIL DES CALCULS")
	y += 20

	y = r.section(y, "Coûts d'acquisition")
	y = r.table(y, []row{
		{label: "Prix du bien", value: FormatCurrency(engine.RoundCurrency(rep.Config.Price))},
		{label: fmt.Sprintf("Frais de notaire (%s)", percentLabel(doc.Fees.NotaryRate)), value: FormatCurrency(res.NotaryFees)},
		{label: fmt.Sprintf("Commission A&M Capital (%s)", percentLabel(doc.Fees.CommissionRate)), value: FormatCurrency(res.CommissionFees)},
		{label: "Frais d'architecte", value: FormatCurrency(res.ArchitectFees)},
		{label: "TOTAL", value: FormatCurrency(res.TotalCosts), total: true},
	})
	y += 15

	y = r.section(y, "Revenus et charges mensuelles")
	y = r.table(y, []row{
		{label: "Loyer mensuel", value: FormatCurrency(res.MonthlyRent)},
		{label: "Charges mensuelles", value: FormatCurrency(-res.MonthlyCharges)},
		{label: "Cash-flow net", value: FormatCurrency(res.Cashflow), total: true},
	})
	y += 15

	y = r.section(y, "Indicateurs de performance")
	y = r.table(y, []row{
		{label: "Rendement brut", value: FormatPercent(res.GrossReturn)},
		{label: "Rendement net", value: FormatPercent(res.NetReturn)},
		{label: "ROI sur fonds propres", value: FormatPercent(res.ROI)},
		{label: "Temps de retour", value: FormatYears(res.PaybackPeriod)},
	})

	if len(rep.SeasonalRevenues) > 0 {
		y += 15
		y = r.section(y, "Saisonnalité des revenus")
		rows := make([]row, 0, len(rep.SeasonalRevenues))
		for _, s := range rep.SeasonalRevenues {
			month := ""
			if s.Month >= 1 && s.Month <= 12 {
				month = frenchMonths[s.Month-1]
			}
			rows = append(rows, row{
				label: fmt.Sprintf("%s (occupation %g %%)", month, s.Occupancy),
				value: FormatCurrency(engine.RoundCurrency(s.Revenue)),
			})
		}
		r.table(y, rows)
	}
}

func (r *renderer) analysisPage(doc Document) {
	res := doc.Report.Result
	r.pdf.AddPage()

	y := 40.0
	r.font("B", 18)
	r.text(20, y, "ANALYSE FINANCIÈRE")
	y += 20

	y = r.section(y, "Répartition des charges mensuelles")
	y = r.table(y, []row{
		{label: "Frais de gestion", value: FormatCurrency(res.ManagementFees)},
		{label: "Provision vacance locative", value: FormatCurrency(res.VacancyLoss)},
		{label: "Taxes et assurances", value: FormatCurrency(res.TaxesAndInsurance)},
		{label: "TOTAL CHARGES", value: FormatCurrency(res.MonthlyCharges), total: true},
	})
	y += 15

	if doc.LoanPayment > 0 {
		y = r.section(y, "Financement")
		y = r.table(y, []row{
			{label: fmt.Sprintf("Emprunt (%s du coût total)", percentLabel(doc.Fees.FinancingRatio)), value: FormatCurrency(engine.RoundCurrency(doc.LoanAmount))},
			{label: fmt.Sprintf("Durée / taux (%d ans, %s)", doc.Fees.LoanYears, percentLabel(doc.Fees.MortgageRate)), value: ""},
			{label: "Mensualité estimée", value: FormatCurrency(engine.RoundCurrency(doc.LoanPayment)), total: true},
		})
		y += 15
	}

	y = r.section(y, "Analyse de sensibilité")

	r.font("", 11)
	for _, line := range []string{
		"Cette simulation est basée sur les hypothèses suivantes:",
		fmt.Sprintf("• Taux de vacance: %s du loyer annuel", percentLabel(doc.Fees.VacancyRate)),
		fmt.Sprintf("• Frais de gestion: %s du loyer", percentLabel(doc.Fees.ManagementRate)),
		fmt.Sprintf("• Frais d'entretien: %s de la valeur du bien par an", percentLabel(doc.Fees.MaintenanceRate)),
		fmt.Sprintf("• Taux d'imposition: %s (TMI moyen)", percentLabel(engine.DefaultMarginalTaxRate)),
		"",
		"Facteurs de risque à considérer:",
		"• Évolution des prix immobiliers",
		"• Changements réglementaires (encadrement des loyers)",
		"• Évolution des taux d'intérêt",
		"• Situation économique locale",
	} {
		if line == "" {
			y += 5
			continue
		}
		y = r.ensure(y, 7)
		r.text(25, y, line)
		y += 7
	}
}

func (r *renderer) advicePage(doc Document) {
	r.pdf.AddPage()

	y := 40.0
	r.font("B", 18)
	r.text(20, y, "RECOMMANDATIONS")
	y += 20

	for _, a := range doc.Advice {
		y = r.ensure(y+5, 20)
		r.font("B", 11)
		r.text(20, y, a.Title)
		y += 4
		r.font("", 11)
		y = r.paragraph(25, y, 165, a.Content) + 6
	}
}

func (r *renderer) footer() {
	r.pdf.SetDrawColor(200, 200, 200)
	r.pdf.Line(20, 280, 190, 280)

	r.color(grey)
	r.font("", 8)
	r.text(20, 285, disclaimer)
	r.font("", 9)
	r.text(20, 290, companyAddress)
	r.text(20, 295, companyContact)
	r.text(172, 290, fmt.Sprintf("Page %d/{nb}", r.pdf.PageNo()))
	r.color(black)
}

// section prints a heading, moving to a new page when it would not fit with
// at least one row, and returns the y position of the first row.
func (r *renderer) section(y float64, title string) float64 {
	y = r.ensure(y, 25)
	r.font("B", 14)
	r.color(navy)
	r.text(20, y, title)
	r.color(black)
	return y + 15
}

// ensure starts a new page when need millimetres do not fit below y.
func (r *renderer) ensure(y, need float64) float64 {
	if y+need > pageBottom {
		r.pdf.AddPage()
		return 40
	}
	return y
}

// table prints label/value rows and returns the y position after the last row.
func (r *renderer) table(y float64, rows []row) float64 {
	for _, item := range rows {
		y = r.ensure(y, 8)
		if item.total {
			r.pdf.SetDrawColor(navy.r, navy.g, navy.b)
			r.pdf.Line(25, y-4, 160, y-4)
			r.font("B", 11)
		} else {
			r.font("", 11)
		}
		r.text(25, y, item.label)
		r.text(120, y, item.value)
		y += 8
	}
	return y
}

// paragraph wraps text at width and returns the y position below it.
func (r *renderer) paragraph(x, y, width float64, text string) float64 {
	r.pdf.SetXY(x, y)
	r.pdf.MultiCell(width, 6, r.tr(text), "", "L", false)
	return r.pdf.GetY()
}

func (r *renderer) text(x, y float64, s string) {
	r.pdf.Text(x, y, r.tr(s))
}

func (r *renderer) font(style string, size float64) {
	r.pdf.SetFont("Helvetica", style, size)
}

func (r *renderer) color(c rgb) {
	r.pdf.SetTextColor(c.r, c.g, c.b)
}

func levelColor(level string) rgb {
	switch level {
	case engine.LevelExcellent:
		return green
	case engine.LevelGood:
		return blue
	case engine.LevelFair:
		return orange
	default:
		return red
	}
}

func percentLabel(rate float64) string {
	return plainSpaces.Replace(printer.Sprintf("%v", engine.RoundRate(rate*100))) + " %"
}
