/*
Package ringlens renders synthetic fraud and abuse networks and explains them.

A scenario is a small graph of sellers, buyers, payout accounts, devices,
cards and disputes joined by typed edges (orders, payouts, shared devices).
ringlens turns scenarios into renderer-ready graphs, explains a node from its
direct neighbors, summarizes a scenario and reads it through an analytical
lens: fraud, AML or trust & safety.

# Concept

Scenarios are loaded once, from the embedded samples, a JSON or YAML file, a
loam directory of Markdown documents or a URL, and validated before anything
is served. Viewing state (selected scenario, lens, active tab, last clicked
node) lives in per-session snapshots that pure update functions replace
wholesale. The same engine drives the CLI, the HTTP API with its browser
client and the MCP server.

# Usage

	ctx := context.Background()
	eng, err := ringlens.New(ctx, "") // embedded sample scenarios
	if err != nil {
		log.Fatal(err)
	}

	header, text, err := eng.Explain("ring-a", "b1")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(header.Label)
	fmt.Println(text)

Sessions are driven through the controller:

	snap, _ := eng.Controller().Start(ctx, "")
	snap, _ = eng.Controller().Click(ctx, snap.State.SessionID, "b1")
	fmt.Println(snap.Panels.NodeText)
*/
package ringlens
