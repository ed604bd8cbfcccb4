package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dori/projecthub/internal/model"
	"github.com/go-pdf/fpdf"
)

// A4 portrait layout, in millimetres.
const (
	pageMarginX      = 15.0
	pageMarginTop    = 15.0
	pageMarginBottom = 20.0
	pageUsableHeight = 297 - pageMarginTop - pageMarginBottom
	pageUsableWidth  = 210 - 2*pageMarginX
)

// Priority accent colors.
var priorityColors = map[string]RGB{
	string(model.PriorityHigh):   {220, 53, 69},
	string(model.PriorityMedium): {255, 193, 7},
	string(model.PriorityLow):    {40, 167, 69},
}

// RenderPDF renders the document as a paginated PDF.
func RenderPDF(doc *Document) ([]byte, error) {
	blocks := buildBlocks(doc)
	pages := Paginate(blocks, pageUsableHeight)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMarginX, pageMarginTop, pageMarginX)
	pdf.SetAutoPageBreak(false, pageMarginBottom)
	pdf.AliasNbPages("")

	// Core fonts are cp1252; translate the UTF-8 block text.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	generated := doc.GeneratedAt.Format("Jan 2, 2006 15:04")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10,
			fmt.Sprintf("Generated %s  |  Page %d of {nb}", generated, pdf.PageNo()),
			"", 0, "C", false, 0, "")
	})

	for _, page := range pages {
		pdf.AddPage()
		for _, b := range page.Blocks {
			drawBlock(pdf, tr, b)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// buildBlocks turns the document tree into the flat drawable sequence:
// branded header, overview, stats panel, due callout, then the active and
// completed task sections.
func buildBlocks(doc *Document) []Block {
	p := doc.Project

	blocks := []Block{
		{Kind: BlockCallout, Text: AppName, Color: RGB{13, 110, 253}},
		{Kind: BlockHeading, Text: p.Name},
	}

	if p.Description != "" {
		blocks = append(blocks, Block{Kind: BlockParagraph, Text: p.Description})
	}
	blocks = append(blocks, Block{Kind: BlockSpacer})

	// Column-major panel: counts on the left, completion on the right.
	blocks = append(blocks, Block{Kind: BlockPanel, Pairs: [][2]string{
		{"Tasks", fmt.Sprintf("%d", p.TasksCount)},
		{"Notes", fmt.Sprintf("%d", p.TotalNotesCount)},
		{"Completed", fmt.Sprintf("%d", p.CompletedCount)},
		{"Progress", fmt.Sprintf("%d%%", p.CompletionPercent)},
	}})

	if p.DueDate != "" {
		blocks = append(blocks, Block{
			Kind:  BlockCallout,
			Text:  "Due " + p.DueDate,
			Color: RGB{13, 110, 253},
		})
	}
	blocks = append(blocks, Block{Kind: BlockSpacer})

	var active, completed []TaskData
	for _, t := range p.Tasks {
		if t.Completed {
			completed = append(completed, t)
		} else {
			active = append(active, t)
		}
	}

	blocks = appendTaskSection(blocks, "Active", active)
	blocks = appendTaskSection(blocks, "Completed", completed)

	return blocks
}

func appendTaskSection(blocks []Block, title string, tasks []TaskData) []Block {
	if len(tasks) == 0 {
		return blocks
	}

	blocks = append(blocks, Block{Kind: BlockSubheading, Text: title})
	for _, t := range tasks {
		label := t.Name
		if t.DueDate != "" {
			label += "  (due " + t.DueDate + ")"
		}
		blocks = append(blocks, Block{
			Kind:  BlockListItem,
			Text:  label,
			Color: priorityColors[t.Priority],
		})
		for _, n := range t.Notes {
			text := n.Content
			if n.Title != "" {
				text = n.Title + ": " + text
			}
			// One block per line so the paginator can break inside long notes.
			for _, line := range strings.Split(text, "\n") {
				blocks = append(blocks, Block{
					Kind:   BlockListItem,
					Text:   line,
					Indent: 1,
					Color:  RGB{108, 117, 125},
				})
			}
		}
	}
	blocks = append(blocks, Block{Kind: BlockSpacer})

	return blocks
}

func drawBlock(pdf *fpdf.Fpdf, tr func(string) string, b Block) {
	switch b.Kind {
	case BlockHeading:
		pdf.SetFont("Helvetica", "B", 18)
		pdf.SetTextColor(33, 37, 41)
		pdf.CellFormat(0, headingHeight, tr(b.Text), "", 1, "L", false, 0, "")

	case BlockSubheading:
		pdf.SetFont("Helvetica", "B", 13)
		pdf.SetTextColor(33, 37, 41)
		pdf.CellFormat(0, subheadingHeight, tr(b.Text), "", 1, "L", false, 0, "")

	case BlockParagraph:
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(73, 80, 87)
		pdf.MultiCell(0, lineHeight, tr(b.Text), "", "L", false)

	case BlockPanel:
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetFillColor(248, 249, 250)
		pdf.SetTextColor(33, 37, 41)
		half := pageUsableWidth / 2
		rows := (len(b.Pairs) + 1) / 2
		for row := 0; row < rows; row++ {
			left := b.Pairs[row]
			pdf.CellFormat(half, panelRowHeight,
				fmt.Sprintf("%s: %s", left[0], left[1]), "", 0, "L", true, 0, "")
			if rows+row < len(b.Pairs) {
				right := b.Pairs[rows+row]
				pdf.CellFormat(half, panelRowHeight,
					fmt.Sprintf("%s: %s", right[0], right[1]), "", 0, "L", true, 0, "")
			}
			pdf.Ln(panelRowHeight)
		}
		pdf.Ln(4)

	case BlockCallout:
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(b.Color.R, b.Color.G, b.Color.B)
		pdf.CellFormat(0, calloutHeight, tr(b.Text), "", 1, "L", false, 0, "")

	case BlockListItem:
		pdf.SetFont("Helvetica", "", 10)
		indent := float64(b.Indent) * 8
		pdf.SetX(pageMarginX + indent)
		pdf.SetTextColor(b.Color.R, b.Color.G, b.Color.B)
		pdf.CellFormat(6, listItemHeight, tr("•"), "", 0, "C", false, 0, "")
		pdf.SetTextColor(33, 37, 41)
		pdf.CellFormat(0, listItemHeight, tr(b.Text), "", 1, "L", false, 0, "")

	case BlockSpacer:
		pdf.Ln(spacerHeight)
	}
}
