// vi: sw=4 ts=4:

/*

	Mnemonic:	init
	Abstract:	Package level initialisation for the gizmos package: the logger
				that the rest of the package logs through.
	Date:		31 Jul 2026
*/

package gizmos

import (
	"os"

	"github.com/rs/zerolog"
)

// log is the package-scoped logger; every gizmos type logs through this
// rather than carrying its own logger instance around, so every line out
// of this package carries the same "component" tag.
var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().
	Timestamp().
	Str("component", "gizmos").
	Logger()

// SetLevel adjusts the verbosity of the gizmos package's logger. Exposed
// so main can fold it under a single -v flag.
func SetLevel(lvl zerolog.Level) {
	log = log.Level(lvl)
}
