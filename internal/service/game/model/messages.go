package model

// MissMessages - shown after a spin without a winning combination
var MissMessages = []string{
	"Strapped for cash!",
	"That hurts!",
	"Keep spinning!",
	"Almost there!",
	"Spent!",
	"Ruined!",
	"Bankrupt!",
	"Broke!",
	"Worthless!",
	"Soup line!",
}
