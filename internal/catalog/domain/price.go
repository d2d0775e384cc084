package domain

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var wonPrinter = message.NewPrinter(language.Korean)

// FormatWon renders a price value the way the storefront displays it, e.g. ₩129,000
func FormatWon(value int64) string {
	return wonPrinter.Sprintf("₩%d", value)
}
