package config

import (
	"os"
	"strings"
)

const badFileName = "_bad_file_name_"

// CleanFileName makes a single path segment out of arbitrary text (document
// titles, departments, source names). Separators and characters rejected by
// the target file system are dropped, leading dots are removed so the result
// is never hidden or relative.
func CleanFileName(in string) string {
	out := strings.Map(func(sym rune) rune {
		if sym == 0 || strings.ContainsRune(reservedNameChars+string(os.PathSeparator)+string(os.PathListSeparator), sym) {
			return -1
		}
		return sym
	}, in)
	out = strings.TrimRight(strings.TrimLeft(out, "."), trailingNameChars)
	if len(out) == 0 {
		out = badFileName
	}
	return out
}
