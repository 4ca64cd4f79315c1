package domain

const (
	// TxDirectionOutgoing marks transactions created by this wallet
	TxDirectionOutgoing = "outgoing"
	// TxDirectionIncoming marks transactions discovered via chain sync
	TxDirectionIncoming = "incoming"
)

var (
	// accountIconStyles and accountIconColors form the fixed palette assigned
	// to the first accounts so that they are visually distinct out of the box.
	// Accounts beyond the palette get a randomized combination.
	accountIconStyles = []string{
		"hexagon", "circle", "diamond", "triangle", "square", "star",
	}
	accountIconColors = []string{
		"#fc8702", "#265df2", "#21bca5", "#d94343", "#8f5af7", "#f2a900",
	}
)

// IconStyles returns the known icon styles, palette order first.
func IconStyles() []string {
	return append([]string{}, accountIconStyles...)
}

// IconColors returns the known icon colors, palette order first.
func IconColors() []string {
	return append([]string{}, accountIconColors...)
}
