package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertDenseOrder checks member orders cover exactly 1..N.
func assertDenseOrder(t *testing.T, c FieldCombination) {
	t.Helper()
	seen := make(map[int]bool)
	for _, f := range c.SourceFields {
		assert.False(t, seen[f.Order], "duplicate order %d", f.Order)
		seen[f.Order] = true
	}
	for i := 1; i <= len(c.SourceFields); i++ {
		assert.True(t, seen[i], "missing order %d", i)
	}
}

func TestAddField_PicksFirstUnused(t *testing.T) {
	c := FieldCombination{Delimiter: DelimiterSpace}
	candidates := []string{"date", "payee", "amount"}

	require.True(t, c.AddField("sf-1", candidates))
	require.True(t, c.AddField("sf-2", candidates))

	assert.Equal(t, "date", c.SourceFields[0].FieldName)
	assert.Equal(t, 1, c.SourceFields[0].Order)
	assert.Equal(t, "payee", c.SourceFields[1].FieldName)
	assert.Equal(t, 2, c.SourceFields[1].Order)
}

func TestAddField_AllUsed(t *testing.T) {
	c := validCombination()
	assert.False(t, c.AddField("sf-3", []string{"first_name", "last_name"}))
	assert.Len(t, c.SourceFields, 2)
}

func TestRemoveField_Renumbers(t *testing.T) {
	c := FieldCombination{Delimiter: DelimiterSpace}
	for i, name := range []string{"a", "b", "c"} {
		require.True(t, c.AddField(fmt.Sprintf("sf-%d", i+1), []string{name}))
	}

	require.True(t, c.RemoveField("sf-2"))
	require.Len(t, c.SourceFields, 2)
	assertDenseOrder(t, c)
	assert.Equal(t, "a c", c.Preview())
}

func TestRemoveField_UnknownID(t *testing.T) {
	c := validCombination()
	assert.False(t, c.RemoveField("missing"))
	assert.Len(t, c.SourceFields, 2)
}

func TestMoveFieldUp(t *testing.T) {
	c := validCombination()

	require.True(t, c.MoveFieldUp("sf-2"))
	assertDenseOrder(t, c)
	assert.Equal(t, "last_name first_name", c.Preview())
}

func TestMoveFieldUp_AtTopIsNoop(t *testing.T) {
	c := validCombination()
	assert.False(t, c.MoveFieldUp("sf-1"))
	assert.Equal(t, "first_name last_name", c.Preview())
}

func TestMoveFieldDown_AtBottomIsNoop(t *testing.T) {
	c := validCombination()
	assert.False(t, c.MoveFieldDown("sf-2"))
	assert.Equal(t, "first_name last_name", c.Preview())
}

func TestMoveField_NeverBreaksDenseOrder(t *testing.T) {
	c := FieldCombination{Delimiter: DelimiterSpace}
	for i, name := range []string{"a", "b", "c", "d"} {
		require.True(t, c.AddField(fmt.Sprintf("sf-%d", i+1), []string{name}))
	}

	c.MoveFieldDown("sf-1")
	c.MoveFieldDown("sf-1")
	c.MoveFieldUp("sf-4")
	c.MoveFieldUp("sf-4")
	c.MoveFieldUp("sf-4")

	assertDenseOrder(t, c)
}

func newTestEditor(existing []FieldCombination) *CombinationEditor {
	n := 0
	return NewCombinationEditor(existing, func() string {
		n++
		return fmt.Sprintf("generated-%d", n)
	})
}

func TestEditorSave_AssignsIDOnlyOnSave(t *testing.T) {
	editor := newTestEditor(nil)
	draft := validCombination()
	draft.ID = ""

	saved, err := editor.Save(draft)
	require.NoError(t, err)
	assert.Equal(t, "generated-1", saved.ID)
	assert.Len(t, editor.Combinations(), 1)
}

func TestEditorSave_RejectsInvalidWithoutID(t *testing.T) {
	editor := newTestEditor(nil)
	draft := validCombination()
	draft.ID = ""
	draft.SourceFields = draft.SourceFields[:1]

	_, err := editor.Save(draft)
	require.Error(t, err)
	assert.Empty(t, editor.Combinations())
}

func TestEditorSave_UpdatesExisting(t *testing.T) {
	editor := newTestEditor([]FieldCombination{validCombination()})
	draft := editor.Draft("combo-1")
	draft.TargetField = "full_name"

	_, err := editor.Save(draft)
	require.NoError(t, err)

	combos := editor.Combinations()
	require.Len(t, combos, 1)
	assert.Equal(t, "full_name", combos[0].TargetField)
}

func TestEditorDraft_IsACopy(t *testing.T) {
	editor := newTestEditor([]FieldCombination{validCombination()})
	draft := editor.Draft("combo-1")
	draft.TargetField = "changed"
	draft.SourceFields[0].FieldName = "changed"

	// Abandoning the draft leaves the session untouched.
	combos := editor.Combinations()
	assert.Equal(t, "payee", combos[0].TargetField)
	assert.Equal(t, "first_name", combos[0].SourceFields[0].FieldName)
}

func TestEditorDelete_SuppressesResurrection(t *testing.T) {
	existing := validCombination()
	editor := newTestEditor([]FieldCombination{existing})

	require.True(t, editor.Delete("combo-1"))
	assert.Empty(t, editor.Combinations())

	// A stale refresh from the outer document still carries the deleted
	// combination; it must not come back.
	editor.Sync([]FieldCombination{existing})
	assert.Empty(t, editor.Combinations())
}

func TestEditorSync_AddsUnknownCombinations(t *testing.T) {
	editor := newTestEditor([]FieldCombination{validCombination()})

	fresh := validCombination()
	fresh.ID = "combo-2"
	editor.Sync([]FieldCombination{fresh})

	assert.Len(t, editor.Combinations(), 2)
}

func TestEditorSync_LocalEditsWin(t *testing.T) {
	editor := newTestEditor([]FieldCombination{validCombination()})
	draft := editor.Draft("combo-1")
	draft.TargetField = "edited"
	_, err := editor.Save(draft)
	require.NoError(t, err)

	stale := validCombination()
	editor.Sync([]FieldCombination{stale})

	combos := editor.Combinations()
	require.Len(t, combos, 1)
	assert.Equal(t, "edited", combos[0].TargetField)
}

func TestEditorSave_AfterDeleteClearsSuppression(t *testing.T) {
	editor := newTestEditor([]FieldCombination{validCombination()})
	require.True(t, editor.Delete("combo-1"))

	// Explicitly re-saving the combination is a user action, not a stale
	// refresh; it must stick.
	_, err := editor.Save(validCombination())
	require.NoError(t, err)
	assert.Len(t, editor.Combinations(), 1)

	editor.Sync([]FieldCombination{validCombination()})
	assert.Len(t, editor.Combinations(), 1)
}
