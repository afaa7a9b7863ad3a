package model

import "fmt"

// Button - a physical kiosk input
type Button string

const (
	ButtonBetIncrease Button = "bet-increase"
	ButtonBetMax      Button = "bet-max"
	ButtonSpin        Button = "spin"
	// ButtonCard alternates between deposit and cash-out on successive presses
	ButtonCard Button = "card"
)

func ParseButton(s string) (Button, error) {
	switch b := Button(s); b {
	case ButtonBetIncrease, ButtonBetMax, ButtonSpin, ButtonCard:
		return b, nil
	}
	return "", fmt.Errorf("unknown button %q", s)
}
