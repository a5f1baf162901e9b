package reports

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fdg312/mealweek/internal/catalog"
	"github.com/fdg312/mealweek/internal/mealplans"
	"github.com/jung-kurt/gofpdf"
)

func sampleView() *mealplans.DayViewDTO {
	return &mealplans.DayViewDTO{
		DayID: "seg",
		Label: "Segunda-feira",
		Work:  &catalog.WorkSchedule{Start: "08:00", End: "17:00", BreakStart: "12:00", BreakEnd: "13:00"},
		Meals: []mealplans.MealViewDTO{
			{Slot: catalog.Breakfast, Title: "Café da manhã", Time: "07:00", OptionID: "bf-a", Label: "Pão, ovos e café", Items: []string{"Pão integral", "Ovos mexidos"}, Kcal: 420, Nutrition: catalog.NutritionProfile{Calories: 420, Protein: 24.4, Carbs: 40, Fat: 15.6}},
			{Slot: catalog.Lunch, Title: "Almoço", Time: "12:00", OptionID: "ln-x", Label: "Prato desconhecido", Kcal: 300, Estimated: true, Nutrition: catalog.NutritionProfile{Calories: 300}},
		},
		Total:     catalog.NutritionProfile{Calories: 720, Protein: 24.4, Carbs: 40, Fat: 15.6},
		TotalKcal: 720,
	}
}

func TestRenderCSV(t *testing.T) {
	data, err := NewGenerator().RenderCSV(sampleView())
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %q", len(lines), data)
	}
	if want := `breakfast,Café da manhã,07:00,bf-a,"Pão, ovos e café",420,24,40,16,false,Pão integral; Ovos mexidos`; lines[1] != want {
		t.Errorf("row = %q\nwant %q", lines[1], want)
	}
	if !strings.HasPrefix(lines[3], "total,Total do dia,,,Segunda-feira,720,") {
		t.Errorf("unexpected total row %q", lines[3])
	}
}

func TestRenderPDF(t *testing.T) {
	g := NewGenerator()
	g.now = func() time.Time { return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) }

	data, err := g.RenderPDF(sampleView())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatal("missing PDF header")
	}
	if len(data) < 1000 {
		t.Fatalf("suspiciously small PDF: %d bytes", len(data))
	}
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	if _, _, err := NewGenerator().Render(sampleView(), "xml"); err != ErrInvalidFormat {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
}

func TestFitText(t *testing.T) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 9)

	short := fitText(pdf, "Arroz", 50)
	if short != "Arroz" {
		t.Fatalf("short text changed: %q", short)
	}
	long := fitText(pdf, strings.Repeat("feijao ", 40), 30)
	if !strings.HasSuffix(long, "...") || pdf.GetStringWidth(long) > 30 {
		t.Fatalf("long text not trimmed: %q", long)
	}
}
