package model

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"slot_kiosk/internal/model"
)

// Wildcard matches any symbol in pair and three-of-a-kind rules
const Wildcard = "*"

// Class - combination class; a higher value is a stronger combination
type Class uint8

const (
	ClassAny Class = iota + 1
	ClassPair
	ClassThree
)

func (c Class) String() string {
	switch c {
	case ClassAny:
		return "any"
	case ClassPair:
		return "pair"
	case ClassThree:
		return "three"
	}
	return fmt.Sprintf("Class(%d)", uint8(c))
}

func ParseClass(s string) (Class, error) {
	switch s {
	case "any":
		return ClassAny, nil
	case "pair":
		return ClassPair, nil
	case "three":
		return ClassThree, nil
	}
	return 0, fmt.Errorf("unknown combination class %q", s)
}

// Rule - one winning combination and its multiplier
type Rule struct {
	Name       string
	Class      Class
	Symbol     string
	Multiplier int64
}

type compiledRule struct {
	Rule
	symbol model.SymbolID // -1 for Wildcard
}

// PayoutTable - symbol set plus the ordered combination rules.
// Rules are mutually exclusive: the strongest matching rule is the only award.
type PayoutTable struct {
	symbols             []string
	baseUnit            int64
	maxPayoutMultiplier int64
	rules               []compiledRule
}

// NewPayoutTable validates and orders the rules: class strength first,
// then multiplier, then declaration order.
func NewPayoutTable(symbols []string, baseUnit, maxPayoutMultiplier int64, rules []Rule) (*PayoutTable, error) {
	if len(symbols) == 0 {
		return nil, errors.New("payout table: empty symbol set")
	}
	if baseUnit <= 0 {
		return nil, errors.New("payout table: base unit must be positive")
	}
	if maxPayoutMultiplier < 0 {
		return nil, errors.New("payout table: max payout multiplier must not be negative")
	}

	index := make(map[string]model.SymbolID, len(symbols))
	for i, name := range symbols {
		if name == "" || name == Wildcard {
			return nil, fmt.Errorf("payout table: invalid symbol name %q", name)
		}
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("payout table: duplicate symbol %q", name)
		}
		index[name] = model.SymbolID(i)
	}

	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		if r.Multiplier <= 0 {
			return nil, fmt.Errorf("payout table: rule %q: multiplier must be positive", r.Name)
		}
		if r.Class < ClassAny || r.Class > ClassThree {
			return nil, fmt.Errorf("payout table: rule %q: invalid class", r.Name)
		}
		cr := compiledRule{Rule: r, symbol: -1}
		if r.Symbol == Wildcard {
			if r.Class == ClassAny {
				return nil, fmt.Errorf("payout table: rule %q: wildcard any would match every spin", r.Name)
			}
		} else {
			id, ok := index[r.Symbol]
			if !ok {
				return nil, fmt.Errorf("payout table: rule %q: unknown symbol %q", r.Name, r.Symbol)
			}
			cr.symbol = id
		}
		if cr.Name == "" {
			cr.Name = r.Class.String() + " " + r.Symbol
		}
		compiled = append(compiled, cr)
	}

	sort.SliceStable(compiled, func(i, j int) bool {
		if compiled[i].Class != compiled[j].Class {
			return compiled[i].Class > compiled[j].Class
		}
		return compiled[i].Multiplier > compiled[j].Multiplier
	})

	return &PayoutTable{
		symbols:             append([]string(nil), symbols...),
		baseUnit:            baseUnit,
		maxPayoutMultiplier: maxPayoutMultiplier,
		rules:               compiled,
	}, nil
}

// WithMaxPayout returns a copy of the table whose payouts are capped at mult times the bet; 0 removes the cap
func (t *PayoutTable) WithMaxPayout(mult int64) *PayoutTable {
	c := *t
	if mult < 0 {
		mult = 0
	}
	c.maxPayoutMultiplier = mult
	return &c
}

func (t *PayoutTable) Symbols() []string {
	return append([]string(nil), t.symbols...)
}

func (t *PayoutTable) SymbolCount() int {
	return len(t.symbols)
}

func (t *PayoutTable) SymbolName(id model.SymbolID) string {
	if id < 0 || int(id) >= len(t.symbols) {
		return ""
	}
	return t.symbols[id]
}

func (t *PayoutTable) BaseUnit() int64 {
	return t.baseUnit
}

// Rules returns the rules in evaluation order
func (t *PayoutTable) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	for i, r := range t.rules {
		out[i] = r.Rule
	}
	return out
}

// Evaluate returns the first (strongest) rule matching the reels
func (t *PayoutTable) Evaluate(reels model.ReelResult) (Rule, bool) {
	for _, r := range t.rules {
		if r.matches(reels) {
			return r.Rule, true
		}
	}
	return Rule{}, false
}

func (r compiledRule) matches(reels model.ReelResult) bool {
	is := func(s model.SymbolID) bool {
		return r.symbol < 0 || s == r.symbol
	}
	switch r.Class {
	case ClassThree:
		return reels[0] == reels[1] && reels[1] == reels[2] && is(reels[0])
	case ClassPair:
		return (reels[0] == reels[1] && is(reels[0])) || (reels[1] == reels[2] && is(reels[1]))
	case ClassAny:
		return is(reels[0]) || is(reels[1]) || is(reels[2])
	}
	return false
}

// Payout - multiplier * (bet / base unit), saturating, capped at maxPayoutMultiplier * bet when set
func (t *PayoutTable) Payout(rule Rule, bet int64) int64 {
	if bet <= 0 {
		return 0
	}
	units := bet / t.baseUnit
	amount := mulSat(rule.Multiplier, units)
	if t.maxPayoutMultiplier > 0 {
		amount = ApplyMaxPayout(amount, bet, t.maxPayoutMultiplier)
	}
	return amount
}

// ApplyMaxPayout limits the payout to maxMult times the bet
func ApplyMaxPayout(amount, bet, maxMult int64) int64 {
	maxPay := mulSat(maxMult, bet)
	if amount > maxPay {
		return maxPay
	}
	return amount
}

func mulSat(a, b int64) int64 {
	if a <= 0 || b <= 0 {
		return 0
	}
	if a > math.MaxInt64/b {
		return math.MaxInt64
	}
	return a * b
}
