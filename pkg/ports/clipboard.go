package ports

// Clipboard receives plain UTF-8 text copied from a narrative panel.
type Clipboard interface {
	WriteText(text string) error
}
