package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/fdg312/mealweek/internal/mealplans"
	"github.com/jung-kurt/gofpdf"
)

// Generator renders a resolved day into PDF or CSV.
type Generator struct {
	now func() time.Time
}

func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// Render returns the file body and its content type.
func (g *Generator) Render(view *mealplans.DayViewDTO, format string) ([]byte, string, error) {
	switch format {
	case FormatPDF:
		data, err := g.RenderPDF(view)
		return data, contentTypeFor(FormatPDF), err
	case FormatCSV:
		data, err := g.RenderCSV(view)
		return data, contentTypeFor(FormatCSV), err
	default:
		return nil, "", ErrInvalidFormat
	}
}

var pdfColumns = []struct {
	title string
	width float64
	align string
}{
	{"Refeição", 42, "L"},
	{"Horário", 20, "C"},
	{"Opção", 78, "L"},
	{"kcal", 20, "R"},
	{"Itens", 117, "L"},
}

// RenderPDF draws the day on a single A4 landscape page. Core fonts with the
// cp1252 translator cover Portuguese accents.
func (g *Generator) RenderPDF(view *mealplans.DayViewDTO) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Plano do dia — "+view.Label, true)
	pdf.SetAuthor("MealWeek", true)
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(true, 12)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr("Plano do dia — "+view.Label), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	if line := scheduleLine(view); line != "" {
		pdf.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 236, 230)
	for _, col := range pdfColumns {
		pdf.CellFormat(col.width, 8, tr(col.title), "1", 0, col.align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	estimated := false
	for _, meal := range view.Meals {
		kcal := strconv.Itoa(meal.Kcal)
		if meal.Estimated {
			kcal += " *"
			estimated = true
		}
		items := fitText(pdf, tr(strings.Join(meal.Items, ", ")), pdfColumns[4].width-2)
		row := []string{tr(meal.Title), meal.Time, fitText(pdf, tr(meal.Label), pdfColumns[2].width-2), kcal, items}
		for i, col := range pdfColumns {
			pdf.CellFormat(col.width, 7, row[i], "1", 0, col.align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(pdfColumns[0].width+pdfColumns[1].width+pdfColumns[2].width, 8, tr("Total do dia"), "1", 0, "L", false, 0, "")
	pdf.CellFormat(pdfColumns[3].width, 8, strconv.Itoa(view.TotalKcal), "1", 0, "R", false, 0, "")
	pdf.CellFormat(pdfColumns[4].width, 8, "", "1", 1, "L", false, 0, "")
	pdf.Ln(4)

	m := view.Macros
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Proteínas %d g (%d%%)   Carboidratos %d g (%d%%)   Gorduras %d g (%d%%)",
		m.ProteinGrams, m.ProteinPercent, m.CarbsGrams, m.CarbsPercent, m.FatGrams, m.FatPercent)), "", 1, "L", false, 0, "")

	p := view.Progress
	if p.TargetKcal > 0 {
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("Meta diária %d kcal, consumido %d kcal (%d%%)", p.TargetKcal, p.ConsumedKcal, p.Percent)), "", 1, "L", false, 0, "")
	}
	if estimated {
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 5, tr("* valor estimado"), "", 1, "L", false, 0, "")
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 6, tr("Gerado em "+g.now().Format("02/01/2006 15:04")), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

var csvHeader = []string{"slot", "title", "time", "option_id", "label", "kcal", "protein_g", "carbs_g", "fat_g", "estimated", "items"}

// RenderCSV writes one row per slot followed by a total row.
func (g *Generator) RenderCSV(view *mealplans.DayViewDTO) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, meal := range view.Meals {
		n := meal.Nutrition
		row := []string{
			meal.Slot.String(),
			meal.Title,
			meal.Time,
			meal.OptionID,
			meal.Label,
			strconv.Itoa(meal.Kcal),
			grams(n.Protein),
			grams(n.Carbs),
			grams(n.Fat),
			strconv.FormatBool(meal.Estimated),
			strings.Join(meal.Items, "; "),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	t := view.Total
	total := []string{"total", "Total do dia", "", "", view.Label, strconv.Itoa(view.TotalKcal), grams(t.Protein), grams(t.Carbs), grams(t.Fat), "", ""}
	if err := w.Write(total); err != nil {
		return nil, err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("render csv: %w", err)
	}
	return buf.Bytes(), nil
}

func grams(v float64) string {
	return strconv.Itoa(int(math.Round(v)))
}

func scheduleLine(view *mealplans.DayViewDTO) string {
	var parts []string
	if w := view.Work; w != nil && w.Start != "" {
		s := fmt.Sprintf("Trabalho %s-%s", w.Start, w.End)
		if w.BreakStart != "" {
			s += fmt.Sprintf(" (intervalo %s-%s)", w.BreakStart, w.BreakEnd)
		}
		parts = append(parts, s)
	}
	if gym := view.Gym; gym != nil {
		parts = append(parts, fmt.Sprintf("Academia %s-%s", gym.Start, gym.End))
	}
	return strings.Join(parts, "   ")
}

// fitText trims an already translated (single-byte) string with an ellipsis
// so it fits in width mm at the current font.
func fitText(pdf *gofpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		s = s[:len(s)-1]
	}
	return s + "..."
}
