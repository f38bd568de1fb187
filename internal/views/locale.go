package views

import (
	"context"
	"net/http"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Supported lists the locales numbers are formatted for. The first is the default.
var Supported = []language.Tag{language.English, language.German, language.French}

var matcher = language.NewMatcher(Supported)

type printerKey struct{}

// ResolveTag picks the best supported locale from the request's
// Accept-Language header.
func ResolveTag(r *http.Request) language.Tag {
	if r == nil {
		return Supported[0]
	}
	tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err != nil || len(tags) == 0 {
		return Supported[0]
	}
	_, idx, _ := matcher.Match(tags...)
	return Supported[idx]
}

// WithPrinter stores a message printer for the components rendered under ctx.
func WithPrinter(ctx context.Context, p *message.Printer) context.Context {
	return context.WithValue(ctx, printerKey{}, p)
}

func printerFrom(ctx context.Context) *message.Printer {
	if p, ok := ctx.Value(printerKey{}).(*message.Printer); ok {
		return p
	}
	return message.NewPrinter(Supported[0])
}

// FormatNumber formats a number with up to two decimals in the printer's locale.
func FormatNumber(p *message.Printer, kg float64) string {
	return p.Sprint(number.Decimal(kg, number.MaxFractionDigits(2)))
}
