package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRecord struct {
	ID      string  `db:"id"`
	Name    string  `db:"full_name"`
	Note    *string `db:"note"`
	Skipped string  `db:"-"`
	Plain   string
	hidden  string `db:"hidden"`
}

func TestStructTagValues(t *testing.T) {
	assert.Equal(t, []string{"id", "full_name", "note"}, StructTagValues(sampleRecord{}))
	assert.Equal(t, []string{"id", "full_name", "note"}, StructTagValues(&sampleRecord{hidden: "x"}))
	assert.Panics(t, func() { StructTagValues("not a struct") })
}

func TestStructToMap(t *testing.T) {
	got := StructToMap(sampleRecord{ID: "abc", Name: "Nimal", Plain: "ignored"})

	require.Len(t, got, 3)
	assert.Equal(t, "abc", got["id"])
	assert.Equal(t, "Nimal", got["full_name"])
	assert.Nil(t, got["note"])
}

func TestNanoID(t *testing.T) {
	id := NanoID()
	assert.Len(t, id, RecordIDSize)
	assert.True(t, IsNanoID(id))
	assert.Len(t, NanoIDSize(8), 8)

	assert.True(t, IsNanoID("r1"))
	assert.False(t, IsNanoID(""))
	assert.False(t, IsNanoID("R1"))
	assert.False(t, IsNanoID("../etc"))
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{"rice", "water"}, Dedupe([]string{" rice", "water", "", "rice "}))
	assert.Nil(t, StringPtrOrNil("   "))
	assert.Equal(t, "x", Deref(StringPtrOrNil(" x ")))
}
