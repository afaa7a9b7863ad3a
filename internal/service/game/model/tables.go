package model

import "fmt"

const (
	SetClassic = "classic"
	SetColors  = "colors"
)

// Classic - six picture symbols of the kiosk, bets counted in units of 500
func Classic() *PayoutTable {
	t, err := NewPayoutTable(
		[]string{"crab", "raspberry", "nodejs", "javascript", "python", "csharp"},
		500,
		0,
		[]Rule{
			{Name: "three crabs", Class: ClassThree, Symbol: "crab", Multiplier: 500000},
			{Name: "three raspberries", Class: ClassThree, Symbol: "raspberry", Multiplier: 250000},
			{Name: "three nodejs", Class: ClassThree, Symbol: "nodejs", Multiplier: 50000},
			{Name: "three javascript", Class: ClassThree, Symbol: "javascript", Multiplier: 37500},
			{Name: "three python", Class: ClassThree, Symbol: "python", Multiplier: 25000},
			{Name: "three csharp", Class: ClassThree, Symbol: "csharp", Multiplier: 12500},
			{Name: "two crabs", Class: ClassPair, Symbol: "crab", Multiplier: 7500},
			{Name: "two raspberries", Class: ClassPair, Symbol: "raspberry", Multiplier: 5000},
			{Name: "one crab", Class: ClassAny, Symbol: "crab", Multiplier: 100},
		},
	)
	if err != nil {
		panic(err)
	}
	return t
}

// Colors - five plain colours, any two adjacent matching reels pay ten units of 10
func Colors() *PayoutTable {
	t, err := NewPayoutTable(
		[]string{"red", "green", "blue", "yellow", "cyan"},
		10,
		0,
		[]Rule{
			{Name: "adjacent colours", Class: ClassPair, Symbol: Wildcard, Multiplier: 10},
		},
	)
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup returns a built-in table by name
func Lookup(name string) (*PayoutTable, error) {
	switch name {
	case SetClassic, "":
		return Classic(), nil
	case SetColors:
		return Colors(), nil
	}
	return nil, fmt.Errorf("unknown symbol set %q", name)
}
