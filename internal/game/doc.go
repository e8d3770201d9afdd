// Package game implements the table-level rules of no-limit Texas Hold'em.
//
// The main type is Hand, which owns one hand from blinds to settlement:
// positions, betting rounds, side pots and the showdown.
//
// # Basic Usage
//
// Deal a hand and drive it with actions from the seat to act:
//
//	seated := []game.SeatedPlayer{{Seat: 0, Name: "alice", Stack: 10000}, {Seat: 3, Name: "bob", Stack: 10000}}
//	h, err := game.NewHand(rng, seated, 0, 50, 100)
//	if err != nil {
//	    return err
//	}
//	err = h.Apply(game.PlayerAction{Seat: h.ToAct(), Action: game.Call})
//	if h.IsComplete() {
//	    s, _ := h.Settlement()
//	}
//
// A ValidationError (errors.Is ErrValidation) leaves the hand unchanged and the
// same seat to act. A poker.ContractError means the caller is out of sync.
//
// # Deterministic Testing
//
// Pass a seeded *rand.Rand, or a stacked deck for complete control:
//
//	deck, _ := poker.NewStackedDeck(poker.MustParseCards("As Ks 2c 7d"))
//	h, err := game.NewHand(nil, seated, 0, 50, 100, game.WithDeck(deck))
//
// # Architecture
//
// Hand delegates to small components that can be used on their own:
//   - BettingRound: action validation, minimum raises and round completion
//   - AllocatePots: main and side pots from each seat's contributions
//   - ComputeShowdown: pot winners and the odd chip rule
//   - Table: seats, stacks and the dealer button across hands
//   - Play: drives a hand with one Policy per seat
//
// Each hand is independent, so separate hands may run concurrently.
package game
