package model

// ParamValue is one item's stored value for one parameter.
type ParamValue struct {
	ParamID int   `json:"paramId"`
	Value   Value `json:"value"`
}

// Item is one editable record. Values holds at most one entry per ParamID.
type Item struct {
	ID     int64        `json:"id"`
	Values []ParamValue `json:"paramValues"`
}

// Lookup finds the value stored for paramID.
func (it Item) Lookup(paramID int) (Value, bool) {
	for _, pv := range it.Values {
		if pv.ParamID == paramID {
			return pv.Value, true
		}
	}
	return Value{}, false
}

// Set replaces the value for paramID in place, or appends a new entry.
// Other entries keep their values and order.
func (it *Item) Set(paramID int, v Value) {
	for i := range it.Values {
		if it.Values[i].ParamID == paramID {
			it.Values[i].Value = v
			return
		}
	}
	it.Values = append(it.Values, ParamValue{ParamID: paramID, Value: v})
}

// Clone returns a copy that shares no backing storage with it.
func (it Item) Clone() Item {
	out := Item{ID: it.ID}
	if it.Values != nil {
		out.Values = make([]ParamValue, len(it.Values))
		copy(out.Values, it.Values)
	}
	return out
}

// Dedup drops repeated ParamIDs, keeping the first.
func (it *Item) Dedup() {
	seen := make(map[int]bool, len(it.Values))
	out := it.Values[:0]
	for _, pv := range it.Values {
		if seen[pv.ParamID] {
			continue
		}
		seen[pv.ParamID] = true
		out = append(out, pv)
	}
	it.Values = out
}
