package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginateEmpty(t *testing.T) {
	pages := Paginate(nil, 100)
	require.Len(t, pages, 1, "even an empty document renders one page")
	assert.Empty(t, pages[0].Blocks)
}

func TestPaginateFitsOnePage(t *testing.T) {
	blocks := []Block{
		{Kind: BlockHeading, Text: "Title"},
		{Kind: BlockParagraph, Text: "short"},
		{Kind: BlockListItem, Text: "item"},
	}

	pages := Paginate(blocks, 100)
	require.Len(t, pages, 1)
	assert.Len(t, pages[0].Blocks, 3)
}

func TestPaginateBreaksWhenFull(t *testing.T) {
	// Ten list items at 6mm each against a 20mm page: three per page.
	blocks := make([]Block, 10)
	for i := range blocks {
		blocks[i] = Block{Kind: BlockListItem, Text: "item"}
	}

	pages := Paginate(blocks, 20)
	require.Len(t, pages, 4)
	assert.Len(t, pages[0].Blocks, 3)
	assert.Len(t, pages[1].Blocks, 3)
	assert.Len(t, pages[2].Blocks, 3)
	assert.Len(t, pages[3].Blocks, 1)
}

func TestPaginatePreservesOrder(t *testing.T) {
	blocks := []Block{
		{Kind: BlockHeading, Text: "a"},
		{Kind: BlockSubheading, Text: "b"},
		{Kind: BlockListItem, Text: "c"},
		{Kind: BlockListItem, Text: "d"},
	}

	pages := Paginate(blocks, 24) // heading 14 + subheading 10 fill page one
	require.Len(t, pages, 2)
	assert.Equal(t, "a", pages[0].Blocks[0].Text)
	assert.Equal(t, "b", pages[0].Blocks[1].Text)
	assert.Equal(t, "c", pages[1].Blocks[0].Text)
	assert.Equal(t, "d", pages[1].Blocks[1].Text)
}

func TestPaginateOversizedBlockGetsOwnPage(t *testing.T) {
	blocks := []Block{
		{Kind: BlockListItem, Text: "before"},
		{Kind: BlockPanel, Pairs: [][2]string{{"a", "1"}, {"b", "2"}, {"c", "3"}, {"d", "4"}}},
		{Kind: BlockListItem, Text: "after"},
	}

	// Page shorter than the panel: the panel must still land somewhere.
	pages := Paginate(blocks, 10)
	require.Len(t, pages, 3)
	assert.Equal(t, BlockPanel, pages[1].Blocks[0].Kind)
	assert.Equal(t, "after", pages[2].Blocks[0].Text)
}

func TestBlockHeights(t *testing.T) {
	assert.Greater(t, Block{Kind: BlockHeading}.Height(), Block{Kind: BlockSubheading}.Height())
	assert.Greater(t, Block{Kind: BlockSubheading}.Height(), Block{Kind: BlockListItem}.Height())

	short := Block{Kind: BlockParagraph, Text: "short"}
	long := Block{Kind: BlockParagraph, Text: string(make([]byte, 400))}
	assert.Greater(t, long.Height(), short.Height())
}
