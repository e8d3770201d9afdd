package main

import (
	"fmt"
	"strings"

	"github.com/lox/pokerengine/internal/phh"
)

type HistoryCmd struct {
	File string `arg:"" help:"PHH file to render" type:"existingfile"`
}

func (c *HistoryCmd) Run(g *Globals) error {
	hh, err := phh.ReadFile(c.File)
	if err != nil {
		return err
	}

	header := hh.HandID
	if hh.Table != "" {
		header = hh.Table + " " + header
	}
	fmt.Println(titleStyle.Render(header) + " " + dimStyle.Render(hh.Variant))

	t := newTable("Player", "Name", "Seat", "Start", "Finish", "Net")
	for i := range hh.StartingStacks {
		name, seat, finish := "", "", ""
		if i < len(hh.Players) {
			name = hh.Players[i]
		}
		if i < len(hh.Seats) {
			seat = fmt.Sprint(hh.Seats[i])
		}
		net := 0.0
		if i < len(hh.FinishingStacks) {
			finish = fmt.Sprintf("%g", hh.FinishingStacks[i])
			net = hh.FinishingStacks[i] - hh.StartingStacks[i]
		}
		t.Row(
			fmt.Sprintf("p%d", i+1),
			name,
			seat,
			fmt.Sprintf("%g", hh.StartingStacks[i]),
			finish,
			signed(fmt.Sprintf("%g", net), net > 0, net < 0),
		)
	}
	fmt.Println(t.String())

	for _, a := range hh.Actions {
		if strings.HasPrefix(a, "d ") {
			fmt.Println(dimStyle.Render(a))
			continue
		}
		fmt.Println(a)
	}
	if result, ok := hh.Metadata["result"]; ok {
		fmt.Println(handStyle.Render(fmt.Sprint(result)))
	}
	return nil
}
