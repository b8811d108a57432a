package ringlens_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/ringlens"
	"github.com/aretw0/ringlens/pkg/adapters/memory"
	"github.com/aretw0/ringlens/pkg/domain"
)

// ExampleNew_memory demonstrates how to use the Engine with scenarios built in code.
func ExampleNew_memory() {
	loader := memory.NewLoader(domain.Scenario{
		ID:   "tiny",
		Name: "Tiny Ring",
		Nodes: []domain.Node{
			{ID: "s1", Label: "Shop", Type: "seller"},
			{ID: "b1", Label: "Payout", Type: "bank"},
		},
		Edges: []domain.Edge{
			{From: "s1", To: "b1", Type: "payout"},
		},
	})

	engine, err := ringlens.New(context.Background(), "", ringlens.WithLoader(loader))
	if err != nil {
		log.Fatal(err)
	}

	header, _, err := engine.Explain("tiny", "b1")
	if err != nil {
		log.Fatal(err)
	}
	g, _ := engine.Graph("tiny")

	fmt.Println(header.Label, header.Pill)
	fmt.Println(g.Edges[0].Label)
	// Output:
	// Payout pill-bank
	// PAYOUT
}

// ExampleEngine_Controller walks a session through load, click and copy.
func ExampleEngine_Controller() {
	ctx := context.Background()
	engine, err := ringlens.New(ctx, "")
	if err != nil {
		log.Fatal(err)
	}

	ctrl := engine.Controller()
	snap, err := ctrl.Start(ctx, "demo")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(snap.State.ScenarioID, snap.State.ActiveTab)

	snap, err = ctrl.Click(ctx, "demo", "b1")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(snap.State.ActiveTab, snap.Panels.NodeHeader.Label)
	// Output:
	// ring-a tabSummary
	// tabNode Payout Account 77
}
