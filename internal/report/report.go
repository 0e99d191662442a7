// Package report assembles the printable training-session document: a title
// block and attendance sheet, then one illustrated card per planned drill.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/meltforce/gkmanager/internal/drillconfig"
	"github.com/meltforce/gkmanager/internal/models"
)

// ErrDrillNotFound is returned when a configured drill title no longer
// resolves against the library.
var ErrDrillNotFound = errors.New("drill not found in library")

// pageBreakY is the vertical cursor threshold (mm) past which a new page
// starts after a drill card completes. Cards are never split mid-card, so a
// tall card may run past this on its own page.
const pageBreakY = 240.0

// Input carries everything the compositor joins into one document.
type Input struct {
	Coach   string
	Session models.Session
	Roster  []models.Goalkeeper
	Config  []drillconfig.Assignment
	Drills  map[string]models.Drill
}

// Compose renders the session document and returns its bytes. A configured
// drill missing from Drills yields an error wrapping ErrDrillNotFound; an
// image blob that fails to decode is silently omitted.
func Compose(in Input) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Helvetica", "B", 16)
		pdf.CellFormat(0, 10, "GK MANAGER PRO - TRAINING SESSION SHEET", "", 1, "C", false, 0, "")
		pdf.Ln(5)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	writeCoverPage(pdf, in)
	if err := writeDrillCards(pdf, in); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering document: %w", err)
	}
	return buf.Bytes(), nil
}

func writeCoverPage(pdf *fpdf.Fpdf, in Input) {
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(0, 10, "Coach: "+in.Coach, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 10, fmt.Sprintf("Date: %s | Type: %s", in.Session.StartDate, in.Session.Type), "", 1, "L", true, 0, "")
	pdf.CellFormat(0, 10, "Main focus: "+in.Session.Title, "", 1, "L", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Attendance", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(80, 10, "Athlete", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 10, "Present", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 10, "Notes", "1", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	if len(in.Roster) == 0 {
		pdf.CellFormat(0, 10, "No registered athletes", "1", 1, "L", false, 0, "")
		return
	}
	for _, gk := range in.Roster {
		pdf.CellFormat(80, 10, fmt.Sprintf("%s (%s)", gk.Name, gk.Status), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 10, "[   ]", "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 10, "", "1", 1, "L", false, 0, "")
	}
}

func writeDrillCards(pdf *fpdf.Fpdf, in Input) error {
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Exercise Plan", "", 1, "C", false, 0, "")
	pdf.Ln(5)

	if len(in.Config) == 0 {
		pdf.SetFont("Helvetica", "", 12)
		pdf.CellFormat(0, 10, "No exercises.", "", 1, "L", false, 0, "")
		return nil
	}

	for i, assignment := range in.Config {
		drill, ok := in.Drills[assignment.Title]
		if !ok {
			return fmt.Errorf("composing card %d (%q): %w", i+1, assignment.Title, ErrDrillNotFound)
		}
		writeCard(pdf, i+1, assignment, drill)
		if pdf.GetY() > pageBreakY {
			pdf.AddPage()
		}
	}
	return nil
}

func writeCard(pdf *fpdf.Fpdf, n int, a drillconfig.Assignment, d models.Drill) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetFillColor(230, 230, 250)
	pdf.CellFormat(0, 10, fmt.Sprintf("Ex %d: %s", n, a.Title), "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(255, 255, 224)
	load := fmt.Sprintf("Sets: %s | Reps: %s | Time: %s", orDash(a.Sets), orDash(a.Reps), orDash(a.Time))
	pdf.CellFormat(0, 8, load, "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.Write(5, fmt.Sprintf("Moment: %s | Type: %s", d.Moment, d.TrainingType))
	if d.Space != "" {
		pdf.Write(5, " | Space: "+d.Space)
	}
	pdf.Ln(6)
	if d.Objective != "" {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Write(5, "Objective: ")
		pdf.SetFont("Helvetica", "", 10)
		pdf.Write(5, d.Objective)
		pdf.Ln(6)
	}
	if d.Materials != "" {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Write(5, "Materials: ")
		pdf.SetFont("Helvetica", "", 10)
		pdf.Write(5, d.Materials)
		pdf.Ln(6)
	}
	pdf.Ln(2)

	embedImage(pdf, d)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 8, "Description / Process:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 6, d.Description, "", "L", false)
	pdf.Ln(10)
}

// embedImage places the drill's illustration, if the stored blob decodes to
// a supported format. Any failure leaves the card without an image.
func embedImage(pdf *fpdf.Fpdf, d models.Drill) {
	if len(d.Image) == 0 {
		return
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(d.Image))
	if err != nil {
		return
	}

	opts := fpdf.ImageOptions{ImageType: strings.ToUpper(format)}
	pdf.RegisterImageOptionsReader(d.ID, opts, bytes.NewReader(d.Image))
	if pdf.Err() {
		pdf.ClearError()
		return
	}
	pdf.ImageOptions(d.ID, 10, 0, 100, 0, true, opts, 0, "")
	if pdf.Err() {
		pdf.ClearError()
		return
	}
	pdf.Ln(5)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
