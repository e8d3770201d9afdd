package bot

import "github.com/lox/pokerengine/internal/game"

// FoldBot checks when it can and folds otherwise.
type FoldBot struct{}

// NewFoldBot creates a new FoldBot instance
func NewFoldBot() *FoldBot {
	return &FoldBot{}
}

func (FoldBot) Decide(dc game.DecisionContext) game.Decision {
	return checkOrFold(dc, "fold-bot")
}
