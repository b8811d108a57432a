/*
Package domain contains the core model of ringlens.

It defines the synthetic fraud/AML scenarios shown to analysts and the
session-scoped view state driven by the browser or the CLI. The package is
kept pure and free of I/O, following the same hexagonal split as the rest
of the module: loaders, stores and transports live under adapters.

# Key Entities

  - Scenario: a self-contained network example (nodes, edges, checklist).
  - Node / Edge: typed graph elements. Their raw type tags are preserved and
    classified into NodeKind / EdgeKind, each with an explicit Unknown arm.
  - Lens: the analytical viewpoint (fraud, aml, ts) selecting narrative text.
  - ViewState: the explicit application state of one viewing session.
*/
package domain
