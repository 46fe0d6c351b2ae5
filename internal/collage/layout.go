package collage

import (
	"image"
	"math"
)

// Plan computes placement rectangles for count images on a width x height
// canvas. It is a pure function of its arguments; rectangles are returned in
// placement order (first arrival first).
//
// Layout policy by count:
//
//	0   no rectangles, the canvas stays background-colored
//	1   the entire canvas
//	2   two full-height columns split at width/2 (right column keeps the
//	    rounding remainder)
//	3   two cells across the top 2/3 of the canvas, one full-width cell
//	    across the bottom 1/3
//	>=4 square grid of GridSize(count) cells per side; cell sizes use
//	    integer division and the remainder pixels stay unused padding on
//	    the right/bottom edges
func Plan(width, height, count int) []image.Rectangle {
	switch count {
	case 0:
		return nil
	case 1:
		return []image.Rectangle{image.Rect(0, 0, width, height)}
	case 2:
		half := width / 2
		return []image.Rectangle{
			image.Rect(0, 0, half, height),
			image.Rect(half, 0, width, height),
		}
	case 3:
		topHeight := height * 2 / 3
		topWidth := width / 2
		return []image.Rectangle{
			image.Rect(0, 0, topWidth, topHeight),
			image.Rect(topWidth, 0, width, topHeight),
			image.Rect(0, topHeight, width, height),
		}
	}

	gridSize := GridSize(count)
	cellWidth := width / gridSize
	cellHeight := height / gridSize

	rects := make([]image.Rectangle, 0, count)
	for i := 0; i < count; i++ {
		row := i / gridSize
		col := i % gridSize
		x := col * cellWidth
		y := row * cellHeight
		rects = append(rects, image.Rect(x, y, x+cellWidth, y+cellHeight))
	}
	return rects
}

// GridSize returns the cells-per-side of the square grid used for count
// images: ceil(sqrt(count)). Guarantees gridSize*gridSize >= count, so every
// image gets a cell.
func GridSize(count int) int {
	return int(math.Ceil(math.Sqrt(float64(count))))
}
