package domain

import (
	"fmt"
	"strings"
)

// DictionaryEntry maps one long-form domain term to its canonical short form.
type DictionaryEntry struct {
	Long  string
	Short string
}

// Dictionary is an immutable mapping of long-form domain terms to canonical
// abbreviations. It is loaded once at startup and passed unmodified to every
// refinement. Entry order follows the source text so prompts stay stable.
type Dictionary struct {
	entries []DictionaryEntry
}

// NewDictionary builds a dictionary from explicit entries.
func NewDictionary(entries ...DictionaryEntry) Dictionary {
	copied := make([]DictionaryEntry, len(entries))
	copy(copied, entries)
	return Dictionary{entries: copied}
}

// ParseDictionary reads the newline-delimited "Long Form = SHORT" format.
// Blank lines and lines starting with '#' are skipped.
func ParseDictionary(text string) (Dictionary, error) {
	var entries []DictionaryEntry
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		long, short, ok := strings.Cut(line, "=")
		if !ok {
			return Dictionary{}, fmt.Errorf("dictionary line %d: expected 'Long = Short', got %q", i+1, line)
		}
		long = strings.TrimSpace(long)
		short = strings.TrimSpace(short)
		if long == "" || short == "" {
			return Dictionary{}, fmt.Errorf("dictionary line %d: empty term in %q", i+1, line)
		}
		entries = append(entries, DictionaryEntry{Long: long, Short: short})
	}
	return Dictionary{entries: entries}, nil
}

// Len returns the number of entries.
func (d Dictionary) Len() int {
	return len(d.entries)
}

// Entries returns a copy of the entries in source order.
func (d Dictionary) Entries() []DictionaryEntry {
	copied := make([]DictionaryEntry, len(d.entries))
	copy(copied, d.entries)
	return copied
}

// String renders the dictionary back into the "Long = Short" line format
// used inside refinement prompts.
func (d Dictionary) String() string {
	var b strings.Builder
	for i, e := range d.entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e.Long)
		b.WriteString(" = ")
		b.WriteString(e.Short)
	}
	return b.String()
}
