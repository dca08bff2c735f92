package display

import "github.com/danielgatis/go-vt100-core/ring"

// Line is a scrollback row descriptor: the cells it spans live at
// cells[Start:Start+Length] in the scrollback's cell ring.
//
// Grounded on original_source/src/terminal/src/scrollback_buffer.rs's Line.
type Line struct {
	Start, Length int
}

// ScrollbackBuffer holds rows scrolled out of the live viewport: a ring of
// Line descriptors indexing into a ring of Cells. Extending the current
// line may evict older lines whose cells were just overwritten; the
// current line's own length self-clamps against the cell ring's capacity.
//
// Grounded 1:1 on original_source/src/terminal/src/scrollback_buffer.rs's
// ScrollbackBuffer, built on ring.Ring[Line]/ring.Ring[Cell] (component C1)
// in place of the reference's CircularBuffer<T>.
type ScrollbackBuffer struct {
	lines             ring.Ring[Line]
	cells             ring.Ring[Cell]
	linesOldestIndex  int
	totalLines        int
	cellsOldestIndex  int
	totalCells        int
}

// NewScrollbackBuffer allocates a scrollback with room for at least
// linesCapacity Line descriptors and cellsCapacity Cells.
func NewScrollbackBuffer(linesCapacity, cellsCapacity int) (*ScrollbackBuffer, error) {
	lines, err := ring.New[Line](linesCapacity)
	if err != nil {
		return nil, err
	}
	cells, err := ring.New[Cell](cellsCapacity)
	if err != nil {
		lines.Close()
		return nil, err
	}
	return &ScrollbackBuffer{lines: lines, cells: cells}, nil
}

// GetLines returns every live Line, oldest first.
func (s *ScrollbackBuffer) GetLines() []Line {
	return s.lines.Slice(s.linesOldestIndex, s.linesOldestIndex+s.totalLines)
}

// LinesCapacity and CellsCapacity report the ring's actual element counts,
// which may be larger than what was requested at NewScrollbackBuffer time
// since ring.New aligns up to its allocation granularity.
func (s *ScrollbackBuffer) LinesCapacity() int { return s.lines.Len() }
func (s *ScrollbackBuffer) CellsCapacity() int { return s.cells.Len() }

// GetRow returns the Cell span a Line describes.
func (s *ScrollbackBuffer) GetRow(line Line) []Cell {
	return s.cells.Slice(line.Start, line.Start+line.Length)
}

// ExtendCurrentLine appends srcBuf to the current (most recently opened)
// scrollback line, splitting it into chunks no larger than the cell ring's
// capacity so a single call can never overrun the ring.
func (s *ScrollbackBuffer) ExtendCurrentLine(srcBuf []Cell) {
	chunkLength := s.cells.Len()
	for len(srcBuf) > 0 {
		n := len(srcBuf)
		if n > chunkLength {
			n = chunkLength
		}
		s.extendCurrentLineByFittableBlock(srcBuf[:n])
		srcBuf = srcBuf[n:]
	}
}

func (s *ScrollbackBuffer) extendCurrentLineByFittableBlock(data []Cell) {
	if s.totalLines == 0 {
		s.AdvanceLine()
	}
	startCellIndex := s.getFreeCellIndex()
	s.pushAndClampIntoCurrentLine(data)
	s.evictOverriddenLines(startCellIndex, len(data))
}

// AdvanceLine closes the current line (if any) and opens a fresh, empty
// one at the current free-cell position, evicting the oldest line first
// if the line ring is already full.
func (s *ScrollbackBuffer) AdvanceLine() {
	if s.totalLines == s.lines.Len() {
		s.lines.SetAt(s.linesOldestIndex, Line{})
		s.totalLines--
		s.linesOldestIndex = (s.linesOldestIndex + 1) % s.lines.Len()
	}
	lineIndex := s.getFreeLineIndex()
	cellIndex := s.getFreeCellIndex()
	s.lines.SetAt(lineIndex, Line{Start: cellIndex, Length: 0})
	s.totalLines++
}

func (s *ScrollbackBuffer) getCurrentLineIndex() int {
	return (s.linesOldestIndex + s.totalLines - 1) % s.lines.Len()
}

func (s *ScrollbackBuffer) getFreeLineIndex() int {
	return (s.linesOldestIndex + s.totalLines) % s.lines.Len()
}

func (s *ScrollbackBuffer) getFreeCellIndex() int {
	return (s.cellsOldestIndex + s.totalCells) % s.cells.Len()
}

func (s *ScrollbackBuffer) pushAndClampIntoCurrentLine(data []Cell) {
	startCellIndex := s.getFreeCellIndex()
	endCellIndex := startCellIndex + len(data)
	dst := s.cells.Slice(startCellIndex, endCellIndex)
	copy(dst, data)

	lineIndex := s.getCurrentLineIndex()
	line := s.lines.At(lineIndex)
	line.Length += len(data)
	if line.Length > s.cells.Len() {
		totalOverride := line.Length - s.cells.Len()
		line.Length = s.cells.Len()
		line.Start = (line.Start + totalOverride) % s.cells.Len()
	}
	s.lines.SetAt(lineIndex, line)

	s.totalCells += len(data)
	if s.totalCells > s.cells.Len() {
		totalOverride := s.totalCells - s.cells.Len()
		s.totalCells = s.cells.Len()
		s.cellsOldestIndex = (s.cellsOldestIndex + totalOverride) % s.cells.Len()
	}
}

// evictOverriddenLines drops every line (other than the current one) whose
// start has just been overwritten by the [startCellIndex, startCellIndex+
// totalCells) write region.
func (s *ScrollbackBuffer) evictOverriddenLines(startCellIndex, totalCells int) {
	if s.totalLines == 0 {
		return
	}
	endCellIndex := startCellIndex + totalCells
	startLineIndex := s.linesOldestIndex
	endLineIndex := startLineIndex + s.totalLines - 1
	for lineIndex := startLineIndex; lineIndex < endLineIndex; lineIndex++ {
		idx := lineIndex % s.lines.Len()
		line := s.lines.At(idx)
		startOldIndex := line.Start
		if startOldIndex < startCellIndex {
			startOldIndex += s.cells.Len()
		}
		if startOldIndex >= endCellIndex {
			break
		}
		s.lines.SetAt(idx, Line{})
		s.totalLines--
		s.linesOldestIndex = (s.linesOldestIndex + 1) % s.lines.Len()
	}
}
