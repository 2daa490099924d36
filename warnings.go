package fifotax

import (
	"unicode/utf8"

	"github.com/rs/zerolog/log"
)

// maxAccountName is the longest account name that still leaves room for a
// security in a 31 characters spreadsheet tab.
const maxAccountName = 17

// Warnings logs each distinct warning once. The zero value is ready to use,
// and a nil *Warnings logs nothing.
type Warnings struct {
	seen map[string]bool
}

// Once logs msg as a warning with the given key, unless a warning with this
// key was already logged. It reports whether the warning was logged.
func (w *Warnings) Once(key, msg string) bool {
	if w == nil || w.seen[key] {
		return false
	}
	if w.seen == nil {
		w.seen = make(map[string]bool)
	}
	w.seen[key] = true
	log.Warn().Str("key", key).Msg(msg)
	return true
}

// LongAccountName warns once about an account name too long to be fully
// visible in a spreadsheet tab name. It reports whether it warned.
func (w *Warnings) LongAccountName(account string) bool {
	if utf8.RuneCountInString(account) <= maxAccountName {
		return false
	}
	return w.Once("long-account:"+account, "account "+account+" has a long name, spreadsheet tabs can only show a short prefix of it")
}
