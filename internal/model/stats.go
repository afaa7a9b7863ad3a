package model

// SpinStats - aggregated return-to-player figures
type SpinStats struct {
	TotalSpins  int
	TotalWins   int
	TotalBet    float64
	TotalPayout float64
	CurrentRTP  float64
	WindowRTP   float64
	WindowSize  int
}
