package ledger

import "fmt"

// ParseSide maps the stored string form back to a Side.
func ParseSide(s string) (Side, error) {
	switch s {
	case "buy":
		return Buy, nil
	case "sell":
		return Sell, nil
	default:
		return Buy, fmt.Errorf("unknown side %q", s)
	}
}

// ParseStatus maps the stored string form back to a Status.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "open":
		return StatusOpen, nil
	case "closed":
		return StatusClosed, nil
	default:
		return StatusOpen, fmt.Errorf("unknown status %q", s)
	}
}

// ParseMode maps the stored string form back to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "paper":
		return Paper, nil
	case "live":
		return Live, nil
	default:
		return Paper, fmt.Errorf("unknown mode %q", s)
	}
}
