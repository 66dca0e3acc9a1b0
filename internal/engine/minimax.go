package engine

import (
	"errors"
	"fmt"
)

var ErrTerminalBoard = errors.New("board is terminal")

// Sentinels sit just outside the utility range [-1, 1].
const (
	lowestScore  = -2
	highestScore = 2
)

// ScoredAction is a legal action together with the minimax value of the board it produces.
type ScoredAction struct {
	Action Action `json:"action"`
	Score  int    `json:"score"`
}

// BestAction returns the optimal move for the side to move. X maximizes the utility and O
// minimizes it. Actions are tried in row-major order and a later action only replaces the
// current best on a strictly better score, so ties go to the first square found.
func BestAction(board Board) (Action, error) {
	if IsTerminal(board) {
		return Action{}, ErrTerminalBoard
	}

	player, err := ActivePlayer(board)
	if err != nil {
		return Action{}, err
	}

	scored, err := ScoreActions(board)
	if err != nil {
		return Action{}, err
	}

	return PickBest(player, scored)
}

// PickBest selects from already scored actions: the highest score for X, the lowest for O.
// A later action only replaces the current best on a strictly better score.
func PickBest(player Cell, scored []ScoredAction) (Action, error) {
	if len(scored) == 0 {
		return Action{}, ErrTerminalBoard
	}

	best := scored[0]
	for _, candidate := range scored[1:] {
		if player == MarkX && candidate.Score > best.Score {
			best = candidate
		}
		if player == MarkO && candidate.Score < best.Score {
			best = candidate
		}
	}

	return best.Action, nil
}

// ScoreActions evaluates every legal action in row-major order, assuming optimal replies.
func ScoreActions(board Board) ([]ScoredAction, error) {
	player, err := ActivePlayer(board)
	if err != nil {
		return nil, err
	}

	reply := MinValue
	if player == MarkO {
		reply = MaxValue
	}

	actions := LegalActions(board)
	scored := make([]ScoredAction, 0, len(actions))
	for _, action := range actions {
		next, err := Apply(board, action)
		if err != nil {
			return nil, fmt.Errorf("apply %s: %w", action, err)
		}

		score, err := reply(next)
		if err != nil {
			return nil, err
		}

		scored = append(scored, ScoredAction{Action: action, Score: score})
	}

	return scored, nil
}

// MaxValue is the value of the board when X picks the best reply at every X turn.
func MaxValue(board Board) (int, error) {
	if IsTerminal(board) {
		return Utility(board), nil
	}

	value := lowestScore
	for _, action := range LegalActions(board) {
		next, err := Apply(board, action)
		if err != nil {
			return 0, fmt.Errorf("apply %s: %w", action, err)
		}

		score, err := MinValue(next)
		if err != nil {
			return 0, err
		}

		value = max(value, score)
	}

	return value, nil
}

// MinValue mirrors MaxValue for O.
func MinValue(board Board) (int, error) {
	if IsTerminal(board) {
		return Utility(board), nil
	}

	value := highestScore
	for _, action := range LegalActions(board) {
		next, err := Apply(board, action)
		if err != nil {
			return 0, fmt.Errorf("apply %s: %w", action, err)
		}

		score, err := MaxValue(next)
		if err != nil {
			return 0, err
		}

		value = min(value, score)
	}

	return value, nil
}
