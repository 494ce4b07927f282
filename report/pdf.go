package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"deepcheck/common/models"
)

// Write renders a one-page PDF summary of the result to w: headline
// verdict, score table, and whatever annotations the media type produced.
func Write(w io.Writer, title string, res *models.DetectionResult) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, title)
	pdf.Ln(14)

	verdict := "Authentic"
	if res.IsManipulated {
		verdict = "Manipulated"
	}
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, fmt.Sprintf("Verdict: %s (%.1f%% confidence)", verdict, res.Confidence))
	pdf.Ln(12)

	line := func(label, value string) {
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(55, 7, label, "", 0, "", false, 0, "")
		pdf.CellFormat(0, 7, value, "", 1, "", false, 0, "")
	}
	section := func(name string) {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, name)
		pdf.Ln(9)
	}

	line("Result ID", res.ID)
	line("Source", res.Source)
	line("Media type", string(res.Metadata.MediaType))
	line("Classification", strings.ReplaceAll(string(res.Classification), "_", " "))
	line("Risk level", string(res.RiskLevel))
	line("Analyzed at", res.AnalyzedAt.Format(time.RFC3339))

	section("Scores")
	line("Face consistency", fmt.Sprintf("%.1f", res.Analysis.FaceConsistency))
	line("Lighting consistency", fmt.Sprintf("%.1f", res.Analysis.LightingConsistency))
	line("Artifacts score", fmt.Sprintf("%.1f", res.Analysis.ArtifactsScore))
	if a := res.Analysis.Audio; a != nil {
		line("Pitch consistency", fmt.Sprintf("%.1f", a.PitchConsistency))
		line("Frequency anomaly", fmt.Sprintf("%.1f", a.FrequencyAnomaly))
		line("Artificial patterns", fmt.Sprintf("%.1f", a.ArtificialPatterns))
	}

	if len(res.Analysis.HighlightedAreas) > 0 {
		section("Highlighted regions")
		for i, area := range res.Analysis.HighlightedAreas {
			line(fmt.Sprintf("Region %d", i+1),
				fmt.Sprintf("%dx%d at (%d, %d), %.1f%%", area.Width, area.Height, area.X, area.Y, area.Confidence))
		}
	}

	if len(res.Analysis.SuspiciousFrames) > 0 {
		section("Suspicious frames")
		for _, frame := range res.Analysis.SuspiciousFrames {
			line(fmt.Sprintf("Frame %d", frame.Index),
				fmt.Sprintf("at %d ms, %.1f%%", frame.TimestampMs, frame.Confidence))
		}
	}

	if a := res.Analysis.Audio; a != nil && len(a.SuspiciousSegments) > 0 {
		section("Suspicious segments")
		for i, seg := range a.SuspiciousSegments {
			line(fmt.Sprintf("Segment %d", i+1),
				fmt.Sprintf("%s at %d ms for %d ms, %.1f%%",
					strings.ReplaceAll(seg.AnomalyType, "_", " "), seg.TimestampMs, seg.DurationMs, seg.Confidence))
		}
	}

	return pdf.Output(w)
}
