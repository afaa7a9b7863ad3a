package env

import (
	"fmt"
	"os"

	"slot_kiosk/internal/config"
	"slot_kiosk/internal/model"
	servModel "slot_kiosk/internal/service/game/model"

	"gopkg.in/yaml.v3"
)

type ruleYAML struct {
	Name       string `yaml:"name"`
	Class      string `yaml:"class"`
	Symbol     string `yaml:"symbol"`
	Multiplier int64  `yaml:"multiplier"`
}

type payoutTableYAML struct {
	Symbols             []string   `yaml:"symbols"`
	BaseUnit            int64      `yaml:"base_unit"`
	MaxPayoutMultiplier int64      `yaml:"max_payout_multiplier"`
	Rules               []ruleYAML `yaml:"rules"`
}

// NewPayoutTableFromYAML reads a payout table file:
//
//	symbols: [crab, raspberry]
//	base_unit: 500
//	rules:
//	  - {name: three crabs, class: three, symbol: crab, multiplier: 500000}
func NewPayoutTableFromYAML(path string) (*servModel.PayoutTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read payout table: %w", err)
	}
	return ParsePayoutTable(data)
}

func ParsePayoutTable(data []byte) (*servModel.PayoutTable, error) {
	var doc payoutTableYAML
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode payout table: %w", err)
	}

	rules := make([]servModel.Rule, len(doc.Rules))
	for i, r := range doc.Rules {
		class, err := servModel.ParseClass(r.Class)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		rules[i] = servModel.Rule{
			Name:       r.Name,
			Class:      class,
			Symbol:     r.Symbol,
			Multiplier: r.Multiplier,
		}
	}
	return servModel.NewPayoutTable(doc.Symbols, doc.BaseUnit, doc.MaxPayoutMultiplier, rules)
}

// LoadPayoutTable picks the table file when one is configured, the built-in set otherwise.
// A configured multiplier cap overrides the table's own.
func LoadPayoutTable(cfg config.PayoutConfig) (*servModel.PayoutTable, error) {
	var (
		table *servModel.PayoutTable
		err   error
	)
	if cfg.TablePath() != "" {
		table, err = NewPayoutTableFromYAML(cfg.TablePath())
	} else {
		table, err = servModel.Lookup(cfg.SymbolSet())
	}
	if err != nil {
		return nil, err
	}
	if cfg.MaxPayoutMultiplier() > 0 {
		table = table.WithMaxPayout(cfg.MaxPayoutMultiplier())
	}
	return table, nil
}

type cardYAML struct {
	UID     string `yaml:"uid"`
	Balance uint32 `yaml:"balance"`
}

type cardsYAML struct {
	Cards []cardYAML `yaml:"cards"`
}

// DefaultCards - the two cards the kiosk ships with
func DefaultCards() []model.CardRecord {
	return []model.CardRecord{
		{ID: model.Identity{80, 243, 109, 20}, Balance: 80000},
		{ID: model.Identity{10, 85, 52, 0}, Balance: 100000},
	}
}

// NewCardsFromYAML reads the factory card list; an empty path yields DefaultCards
func NewCardsFromYAML(path string) ([]model.CardRecord, error) {
	if path == "" {
		return DefaultCards(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cards: %w", err)
	}
	return ParseCards(data)
}

func ParseCards(data []byte) ([]model.CardRecord, error) {
	var doc cardsYAML
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode cards: %w", err)
	}

	seen := make(map[model.Identity]bool, len(doc.Cards))
	cards := make([]model.CardRecord, 0, len(doc.Cards))
	for i, c := range doc.Cards {
		id, err := model.ParseIdentity(c.UID)
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", i, err)
		}
		if id.Blank() {
			return nil, fmt.Errorf("card %d: uid %s reads as an erased slot", i, id)
		}
		if seen[id] {
			return nil, fmt.Errorf("card %d: duplicate uid %s", i, id)
		}
		seen[id] = true
		cards = append(cards, model.CardRecord{ID: id, Balance: c.Balance})
	}
	return cards, nil
}
