package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/PradipLalpura/RexOS/internal/rating"
	"github.com/PradipLalpura/RexOS/internal/service"
)

const (
	pageWidth   = 190.0
	lineHeight  = 6.0
	fontFamily  = "Helvetica"
	sectionSize = 13
)

var tierColors = map[rating.Tier][3]int{
	rating.TierExcellent: {34, 197, 94},
	rating.TierGood:      {14, 165, 233},
	rating.TierWarning:   {245, 158, 11},
	rating.TierDanger:    {239, 68, 68},
}

func renderPDF(w io.Writer, r *service.WeeklyReport) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("RexOS Weekly Report "+r.WeekStart, true)
	pdf.SetCreator("rexos", true)
	if generated, err := time.Parse(time.RFC3339, r.GeneratedAt); err == nil {
		pdf.SetCreationDate(generated)
	}
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont(fontFamily, "I", 8)
		pdf.SetTextColor(100, 116, 139)
		pdf.CellFormat(0, 8, fmt.Sprintf("RexOS - page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont(fontFamily, "B", 18)
	pdf.CellFormat(pageWidth, 10, "RexOS Weekly Report", "", 1, "L", false, 0, "")
	pdf.SetFont(fontFamily, "", 10)
	subtitle := fmt.Sprintf("%s to %s", r.WeekStart, r.WeekEnd)
	if r.ProfileName != "" {
		subtitle += " | " + r.ProfileName
	}
	pdf.CellFormat(pageWidth, lineHeight, tr(subtitle), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	setTierColor(pdf, r.Verdict.Tier)
	pdf.SetFont(fontFamily, "B", 28)
	pdf.CellFormat(40, 14, pct(r.Consistency), "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont(fontFamily, "", 10)
	pdf.MultiCell(pageWidth-40, lineHeight, tr("Consistency score. "+r.Verdict.Message), "", "L", false)
	pdf.Ln(2)

	section(pdf, "Habits")
	for _, d := range r.Days {
		pdf.CellFormat(pageWidth/7, lineHeight, shortDay(d.Day), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	for _, d := range r.Days {
		pdf.CellFormat(pageWidth/7, lineHeight, fmt.Sprintf("%d/%d", d.HabitsDone, d.HabitsTotal), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	for _, h := range r.Habits {
		pdf.CellFormat(pageWidth, lineHeight, tr(fmt.Sprintf("%s: %d/7 days", h.Name, h.DaysCompleted)), "", 1, "L", false, 0, "")
	}

	section(pdf, "Workout")
	pdf.CellFormat(pageWidth, lineHeight, fmt.Sprintf("Total weekly volume: %skg over %d days", rating.FormatNumber(r.TotalVolume), r.WorkoutDays), "", 1, "L", false, 0, "")
	for _, d := range r.Days {
		if len(d.Exercises) == 0 && len(d.Additional) == 0 {
			continue
		}
		title := d.Day
		if d.WorkoutName != "" {
			title += " - " + d.WorkoutName
		}
		pdf.SetFont(fontFamily, "B", 10)
		pdf.CellFormat(pageWidth, lineHeight, tr(fmt.Sprintf("%s (%skg)", title, rating.FormatNumber(d.Volume))), "", 1, "L", false, 0, "")
		pdf.SetFont(fontFamily, "", 9)
		for _, e := range d.Exercises {
			pdf.CellFormat(pageWidth, 5, tr(fmt.Sprintf("  %s: %s", e.ExerciseName, formatSets(e.Sets))), "", 1, "L", false, 0, "")
		}
		for _, e := range d.Additional {
			pdf.CellFormat(pageWidth, 5, tr(fmt.Sprintf("  + %s: %s", e.Name, formatAdditional(e))), "", 1, "L", false, 0, "")
		}
	}

	section(pdf, "Diet")
	pdf.CellFormat(pageWidth, lineHeight, fmt.Sprintf("Averages/day: %.0f kcal | P %.0fg | C %.0fg | F %.0fg",
		r.DietAverages.Calories, r.DietAverages.Protein, r.DietAverages.Carbs, r.DietAverages.Fat), "", 1, "L", false, 0, "")
	for _, d := range r.Days {
		pdf.CellFormat(pageWidth/7, lineHeight, shortDay(d.Day), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	for _, d := range r.Days {
		pdf.CellFormat(pageWidth/7, lineHeight, fmt.Sprintf("%.0f", d.Diet.Calories), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	section(pdf, "Daily Breakdown")
	headers := []string{"Day", "Overall", "Habits", "Workout", "Diet"}
	for _, h := range headers {
		pdf.CellFormat(pageWidth/5, lineHeight, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	for _, d := range r.Days {
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(pageWidth/5, lineHeight, shortDay(d.Day)+" "+d.Date[5:], "1", 0, "C", false, 0, "")
		for _, rt := range []rating.Rating{d.Ratings.Overall, d.Ratings.Habit, d.Ratings.Workout, d.Ratings.Diet} {
			setTierColor(pdf, rt.Tier)
			pdf.CellFormat(pageWidth/5, lineHeight, pct(rt.Score), "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.SetTextColor(0, 0, 0)

	section(pdf, "Notes & Reflections")
	if r.NotesRecorded == 0 {
		pdf.CellFormat(pageWidth, lineHeight, "No notes recorded this week.", "", 1, "L", false, 0, "")
	}
	for _, d := range r.Days {
		if d.Note == "" {
			continue
		}
		pdf.SetFont(fontFamily, "B", 10)
		pdf.CellFormat(pageWidth, lineHeight, d.Day+" "+d.Date, "", 1, "L", false, 0, "")
		pdf.SetFont(fontFamily, "", 10)
		pdf.MultiCell(pageWidth, 5, tr(strings.TrimSpace(d.Note)), "", "L", false)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf report: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf report: %w", err)
	}
	return nil
}

func section(pdf *fpdf.Fpdf, title string) {
	pdf.Ln(4)
	pdf.SetFont(fontFamily, "B", sectionSize)
	pdf.SetTextColor(15, 23, 42)
	pdf.CellFormat(pageWidth, 8, title, "B", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont(fontFamily, "", 10)
	pdf.Ln(1)
}

func setTierColor(pdf *fpdf.Fpdf, t rating.Tier) {
	c, ok := tierColors[t]
	if !ok {
		pdf.SetTextColor(0, 0, 0)
		return
	}
	pdf.SetTextColor(c[0], c[1], c[2])
}
