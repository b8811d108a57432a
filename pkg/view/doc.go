/*
Package view holds the behaviour of the scenario viewer.

The update functions (Select, Load, SetLens, ClickNode, SwitchTab) are pure:
they take a *domain.ViewState and return the next one without mutating the
input. Render derives the visible panels from a state, and CopyText picks the
text a copy button puts on the clipboard.

Controller applies those functions to stored sessions. It is the single entry
point used by the CLI, HTTP and MCP surfaces.
*/
package view
