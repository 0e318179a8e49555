package report

import "strings"

// punctuationReplacer maps the non-ASCII punctuation the source site
// is known to emit onto plain ASCII equivalents. This is a closed
// table applied literally to the rendered output, not a Unicode
// normalization: nothing outside these entries is altered.
var punctuationReplacer = strings.NewReplacer(
	" ", " ", // narrow no-break space -> regular space
	"’", "'", // right single quotation mark -> apostrophe
)

// Normalize applies the punctuation substitution table to text.
func Normalize(text string) string {
	return punctuationReplacer.Replace(text)
}
