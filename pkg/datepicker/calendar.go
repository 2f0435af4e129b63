package datepicker

// CellState tags a day cell for rendering.
type CellState uint8

const (
	CellPlain CellState = iota
	CellToday
	CellSelected
)

func (s CellState) String() string {
	switch s {
	case CellToday:
		return "today"
	case CellSelected:
		return "selected"
	default:
		return "plain"
	}
}

// Cell is one slot of the month grid. Blank cells pad the first and last
// week and carry the empty date.
type Cell struct {
	Date  Date
	State CellState
}

// Blank reports whether the cell is padding.
func (c Cell) Blank() bool { return c.Date.IsZero() }

// Grid is a month laid out in Monday-first weeks.
type Grid struct {
	Month Month
	Weeks [][7]Cell
}

// NewGrid lays out visible. Days equal to selected are tagged selected;
// otherwise days equal to today are tagged today.
func NewGrid(visible Month, selected, today Date) Grid {
	first := visible.First()
	// Monday-first offset of the 1st.
	lead := (int(first.Weekday()) + 6) % 7

	g := Grid{Month: visible}
	var week [7]Cell
	col := lead
	for n := 1; n <= visible.Days(); n++ {
		d := visible.Day(n)
		c := Cell{Date: d}
		switch {
		case !selected.IsZero() && d == selected:
			c.State = CellSelected
		case !today.IsZero() && d == today:
			c.State = CellToday
		}
		week[col] = c
		col++
		if col == 7 {
			g.Weeks = append(g.Weeks, week)
			week = [7]Cell{}
			col = 0
		}
	}
	if col > 0 {
		g.Weeks = append(g.Weeks, week)
	}
	return g
}

// Cells returns the grid row by row.
func (g Grid) Cells() []Cell {
	out := make([]Cell, 0, len(g.Weeks)*7)
	for _, w := range g.Weeks {
		out = append(out, w[:]...)
	}
	return out
}

// IntentKind identifies what the user asked the calendar to do.
type IntentKind uint8

const (
	IntentPickDay IntentKind = iota + 1
	IntentNavigate
	IntentJumpToToday
	IntentClose
)

// Intent is a user request raised by the calendar overlay. The overlay
// never acts on it; the hook routes it to the Reconciler.
type Intent struct {
	Kind  IntentKind
	Date  Date
	Delta int
}

// PickDay requests selecting d.
func PickDay(d Date) Intent { return Intent{Kind: IntentPickDay, Date: d} }

// Navigate requests moving the visible month by delta.
func Navigate(delta int) Intent { return Intent{Kind: IntentNavigate, Delta: delta} }

// JumpToToday requests selecting today.
func JumpToToday() Intent { return Intent{Kind: IntentJumpToToday} }

// Close requests hiding the overlay.
func Close() Intent { return Intent{Kind: IntentClose} }
