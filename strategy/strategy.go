package strategy

import (
	"fmt"
	"strings"

	"github.com/Slidrive/prismtrade/market"
)

// Categorical per-bar signals. The backtest engine acts on the difference of
// consecutive signals, so holding the same signal across bars is idempotent.
const (
	SignalShort = -1
	SignalFlat  = 0
	SignalLong  = +1
)

// Strategy is the minimal interface a backtest strategy must implement.
// Signal is called once per bar with the full bar history and the index of
// the current bar; it must only look at bars[:idx+1].
type Strategy interface {
	Name() string
	Signal(bars []market.Candle, idx int) int
}

var registry = make(map[string]Strategy)

// Register makes a custom strategy resolvable through ByName. Names are
// case-insensitive; built-in names take precedence.
func Register(s Strategy) {
	registry[normalize(s.Name())] = s
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ByName builds a strategy from its name and parameters.
func ByName(name string, fast, slow int) (Strategy, error) {
	switch normalize(name) {
	case "noop", "none":
		return Noop{}, nil

	case "ma-cross", "macross":
		return NewMACross(fast, slow), nil

	case "ema-cross", "emacross":
		return NewEMACross(fast, slow), nil

	default:
		if s, ok := registry[normalize(name)]; ok {
			return s, nil
		}
		return nil, fmt.Errorf("unknown strategy %q (supported: noop, ma-cross, ema-cross)", name)
	}
}
