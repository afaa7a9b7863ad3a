package model

// SymbolID - index into the configured symbol set
type SymbolID int

// ReelResult - the three settled reels of one spin
type ReelResult [3]SymbolID

// SpinResult - outcome of one accepted spin
type SpinResult struct {
	Round   uint64
	Reels   ReelResult
	Symbols [3]string
	Bet     int64
	Win     bool
	Rule    string
	Payout  int64
	Balance int64
	Message string
}

// Snapshot - read-only view of the live game state
type Snapshot struct {
	Balance  int64
	Bet      int64
	Spinning bool
	Rounds   uint64
	LastSpin *SpinResult
}

// BetLadder - cyclic sequence of allowed bets: Min, Min+Step, ... Max, back to Min
type BetLadder struct {
	Min  int64
	Step int64
	Max  int64
}

func (l BetLadder) Validate() error {
	if l.Min <= 0 || l.Step <= 0 || l.Max < l.Min {
		return ErrInvalidLadder
	}
	return nil
}

// Next returns the bet one step up, wrapping to Min past Max.
// Bets outside the ladder snap back to Min.
func (l BetLadder) Next(bet int64) int64 {
	if bet < l.Min || bet >= l.Max {
		return l.Min
	}
	next := bet + l.Step
	if next > l.Max {
		return l.Max
	}
	return next
}

// Len - number of distinct ladder positions
func (l BetLadder) Len() int {
	n := int((l.Max-l.Min)/l.Step) + 1
	if (l.Max-l.Min)%l.Step != 0 {
		n++
	}
	return n
}
