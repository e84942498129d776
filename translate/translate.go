// Package translate localizes the error and diagnostic text of the simulator.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

var printer *message.Printer

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("accsim: locale: %v", err)
	}

	SetLanguage(locales...)
}

// SetLanguage selects the message printer for the best match of the
// given BCP 47 locales. With no locales, en-US is used.
func SetLanguage(locales ...string) {
	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
