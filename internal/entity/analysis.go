package entity

import "github.com/rocketscienceinc/tictactoe-engine/internal/engine"

// Analysis describes a position: who moves, what minimax recommends and what every move is worth.
type Analysis struct {
	Board    engine.Board          `json:"board"`
	Player   string                `json:"player,omitempty"`
	Best     *engine.Action        `json:"best,omitempty"`
	Scores   []engine.ScoredAction `json:"scores"`
	Terminal bool                  `json:"terminal"`
	Winner   string                `json:"winner"`
	Utility  int                   `json:"utility"`
}
