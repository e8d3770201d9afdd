package main

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/lox/pokerengine/poker"
)

type EvalCmd struct {
	Hands []string `arg:"" help:"Hands of 5-7 cards, e.g. \"AsKsQsJsTs\" or \"As Ks 7d 7c 2h\""`
}

type evaluated struct {
	input  string
	cards  []poker.Card
	result poker.HandResult
}

func (c *EvalCmd) Run(g *Globals) error {
	hands := make([]evaluated, 0, len(c.Hands))
	for _, in := range c.Hands {
		cards, err := poker.ParseCards(in)
		if err != nil {
			return fmt.Errorf("parse %q: %w", in, err)
		}
		res, err := poker.EvaluateCards(cards)
		if err != nil {
			return fmt.Errorf("evaluate %q: %w", in, err)
		}
		hands = append(hands, evaluated{input: in, cards: cards, result: res})
	}

	// Strongest first; equal ranks keep input order.
	slices.SortStableFunc(hands, func(a, b evaluated) int {
		return cmp.Compare(b.result.Rank, a.result.Rank)
	})

	t := newTable("#", "Cards", "Best Five", "Hand", "Rank")
	place := 0
	for i, h := range hands {
		if i == 0 || h.result.Rank != hands[i-1].result.Rank {
			place = i + 1
		}
		t.Row(
			fmt.Sprint(place),
			renderCards(h.cards),
			renderCards(h.result.Cards[:]),
			handStyle.Render(h.result.Description),
			fmt.Sprintf("%d (%s)", h.result.Rank, h.result.Type),
		)
	}
	fmt.Println(t.String())

	if len(hands) > 1 {
		var tied []string
		for _, h := range hands {
			if h.result.Rank == hands[0].result.Rank {
				tied = append(tied, poker.FormatCards(h.cards))
			}
		}
		if len(tied) > 1 {
			fmt.Println(dimStyle.Render("Split: " + strings.Join(tied, " | ")))
		}
	}
	return nil
}
