package domain

import "sort"

// AddField appends a new member to the combination draft, picking the
// first candidate field name not already used by an existing member. The
// new member is placed at the end of the concatenation order. Returns
// false when every candidate is already a member.
func (c *FieldCombination) AddField(id string, candidates []string) bool {
	used := make(map[string]bool, len(c.SourceFields))
	for _, f := range c.SourceFields {
		used[f.FieldName] = true
	}
	for _, name := range candidates {
		if used[name] {
			continue
		}
		c.SourceFields = append(c.SourceFields, SourceField{
			ID:        id,
			FieldName: name,
			Order:     len(c.SourceFields) + 1,
		})
		return true
	}
	return false
}

// RemoveField deletes the member with the given id and renumbers the
// remaining members to dense 1-based order.
func (c *FieldCombination) RemoveField(id string) bool {
	idx := -1
	for i, f := range c.SourceFields {
		if f.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	c.SourceFields = append(c.SourceFields[:idx], c.SourceFields[idx+1:]...)
	c.renumber()
	return true
}

// MoveFieldUp swaps the member with the previous member in concatenation
// order. Moving the first member is a no-op.
func (c *FieldCombination) MoveFieldUp(id string) bool {
	return c.moveField(id, -1)
}

// MoveFieldDown swaps the member with the next member in concatenation
// order. Moving the last member is a no-op.
func (c *FieldCombination) MoveFieldDown(id string) bool {
	return c.moveField(id, +1)
}

func (c *FieldCombination) moveField(id string, direction int) bool {
	ordered := c.OrderedFields()
	pos := -1
	for i, f := range ordered {
		if f.ID == id {
			pos = i
			break
		}
	}
	if pos < 0 {
		return false
	}
	swap := pos + direction
	if swap < 0 || swap >= len(ordered) {
		return false
	}
	a, b := ordered[pos].ID, ordered[swap].ID
	var oa, ob *SourceField
	for i := range c.SourceFields {
		switch c.SourceFields[i].ID {
		case a:
			oa = &c.SourceFields[i]
		case b:
			ob = &c.SourceFields[i]
		}
	}
	oa.Order, ob.Order = ob.Order, oa.Order
	return true
}

// renumber rewrites member orders to dense 1-based values preserving the
// current concatenation order.
func (c *FieldCombination) renumber() {
	sort.SliceStable(c.SourceFields, func(i, j int) bool {
		return c.SourceFields[i].Order < c.SourceFields[j].Order
	})
	for i := range c.SourceFields {
		c.SourceFields[i].Order = i + 1
	}
}

// CombinationEditor owns the authoritative combination list for one
// template editing session. Sub-editors work on a copy and hand back a
// completed draft through Save; they never share mutable state with the
// editor. Deleted ids are kept as a suppression set so an out-of-band
// refresh cannot resurrect a just-deleted combination.
type CombinationEditor struct {
	combinations []FieldCombination
	deleted      map[string]bool
	newID        func() string
}

// NewCombinationEditor starts an editing session over the template's
// current combinations. newID supplies ids for combinations finalized
// without one (the service wires uuid generation here).
func NewCombinationEditor(existing []FieldCombination, newID func() string) *CombinationEditor {
	combos := make([]FieldCombination, len(existing))
	copy(combos, existing)
	return &CombinationEditor{
		combinations: combos,
		deleted:      make(map[string]bool),
		newID:        newID,
	}
}

// Combinations returns the authoritative list in its current state.
func (e *CombinationEditor) Combinations() []FieldCombination {
	out := make([]FieldCombination, len(e.combinations))
	copy(out, e.combinations)
	return out
}

// Draft returns a copy of the combination with the given id for a
// sub-editor to work on, or an empty draft when id is unknown or empty.
func (e *CombinationEditor) Draft(id string) FieldCombination {
	for _, c := range e.combinations {
		if c.ID == id {
			c.SourceFields = append([]SourceField(nil), c.SourceFields...)
			return c
		}
	}
	return FieldCombination{Delimiter: DelimiterSpace}
}

// Save validates a completed draft and folds it into the session. A
// draft without an id is assigned one here; a cancelled sub-editor
// simply never calls Save, leaving the session untouched.
func (e *CombinationEditor) Save(draft FieldCombination) (FieldCombination, error) {
	if err := draft.Validate(); err != nil {
		return FieldCombination{}, err
	}
	if draft.ID == "" {
		draft.ID = e.newID()
	}
	delete(e.deleted, draft.ID)
	for i, c := range e.combinations {
		if c.ID == draft.ID {
			e.combinations[i] = draft
			return draft, nil
		}
	}
	e.combinations = append(e.combinations, draft)
	return draft, nil
}

// Delete removes a combination and records its id in the suppression
// set.
func (e *CombinationEditor) Delete(id string) bool {
	for i, c := range e.combinations {
		if c.ID == id {
			e.combinations = append(e.combinations[:i], e.combinations[i+1:]...)
			e.deleted[id] = true
			return true
		}
	}
	return false
}

// Sync merges a refreshed combination list from the outer document,
// dropping any combination whose id was deleted during this session.
// Local edits win for ids present in both lists.
func (e *CombinationEditor) Sync(incoming []FieldCombination) {
	local := make(map[string]bool, len(e.combinations))
	for _, c := range e.combinations {
		local[c.ID] = true
	}
	for _, c := range incoming {
		if e.deleted[c.ID] || local[c.ID] {
			continue
		}
		e.combinations = append(e.combinations, c)
	}
}
