package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDict = `
Patient = Subject
Coronary Artery Bypass Graft = CABG
# comment line
Coronary Artery Disease = CAD

Systolic Blood Pressure = SYSBP
`

func TestParseDictionary(t *testing.T) {
	d, err := ParseDictionary(sampleDict)
	require.NoError(t, err)
	assert.Equal(t, 4, d.Len())

	entries := d.Entries()
	assert.Equal(t, "Patient", entries[0].Long)
	assert.Equal(t, "Subject", entries[0].Short)
	assert.Equal(t, "SYSBP", entries[3].Short)
}

func TestParseDictionary_Errors(t *testing.T) {
	_, err := ParseDictionary("no separator here")
	assert.Error(t, err)

	_, err = ParseDictionary(" = CAD")
	assert.Error(t, err)
}

func TestDictionary_String(t *testing.T) {
	d, err := ParseDictionary(sampleDict)
	require.NoError(t, err)

	out := d.String()
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Patient = Subject", lines[0])
	assert.Equal(t, "Coronary Artery Disease = CAD", lines[2])

	// Round trip is stable.
	d2, err := ParseDictionary(out)
	require.NoError(t, err)
	assert.Equal(t, d.Entries(), d2.Entries())
}

func TestDictionary_EntriesAreCopied(t *testing.T) {
	d := NewDictionary(DictionaryEntry{Long: "Myocardial Infarction", Short: "MI"})
	entries := d.Entries()
	entries[0].Short = "mutated"
	assert.Equal(t, "MI", d.Entries()[0].Short)
}
