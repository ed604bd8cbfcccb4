package export

// The PDF is assembled as an ordered list of typed blocks which a generic
// paginator assigns to pages. Content assembly never does pagination
// arithmetic, and the paginator can be tested without drawing anything.

// BlockKind identifies how a block is drawn and how tall it is.
type BlockKind int

const (
	BlockHeading BlockKind = iota
	BlockSubheading
	BlockParagraph
	BlockPanel
	BlockCallout
	BlockListItem
	BlockSpacer
)

// RGB is an accent color for a block.
type RGB struct {
	R, G, B int
}

// Block is one drawable unit of the document.
type Block struct {
	Kind   BlockKind
	Text   string
	Indent int         // nesting level for list items
	Color  RGB         // glyph/accent color for list items and callouts
	Pairs  [][2]string // label/value rows for panels, split over two columns
}

// Line layout constants, in millimetres.
const (
	headingHeight    = 14.0
	subheadingHeight = 10.0
	lineHeight       = 5.0
	panelRowHeight   = 7.0
	calloutHeight    = 10.0
	listItemHeight   = 6.0
	spacerHeight     = 4.0
	paragraphWidth   = 90 // rough chars per line at body size
)

// Height returns the vertical space the block needs.
func (b Block) Height() float64 {
	switch b.Kind {
	case BlockHeading:
		return headingHeight
	case BlockSubheading:
		return subheadingHeight
	case BlockParagraph:
		lines := len(b.Text)/paragraphWidth + 1
		return float64(lines) * lineHeight
	case BlockPanel:
		rows := (len(b.Pairs) + 1) / 2 // two columns
		return float64(rows)*panelRowHeight + 4
	case BlockCallout:
		return calloutHeight
	case BlockListItem:
		return listItemHeight
	case BlockSpacer:
		return spacerHeight
	default:
		return lineHeight
	}
}

// Page is an ordered run of blocks that fit together.
type Page struct {
	Blocks []Block
}

// Paginate assigns blocks to pages. A block that does not fit in the
// remaining space starts a new page; a block taller than a whole page still
// gets a page to itself.
func Paginate(blocks []Block, pageHeight float64) []Page {
	var pages []Page
	var current Page
	used := 0.0

	for _, b := range blocks {
		h := b.Height()
		if used+h > pageHeight && len(current.Blocks) > 0 {
			pages = append(pages, current)
			current = Page{}
			used = 0
		}
		current.Blocks = append(current.Blocks, b)
		used += h
	}

	if len(current.Blocks) > 0 || len(pages) == 0 {
		pages = append(pages, current)
	}

	return pages
}
