package catalog

// Reorder moves the stage fromID to the position currently held by toID in the
// canonical list, shifting the stages in between by one. Positions are looked up
// in the unfiltered list. If either id is missing, or both are the same, the
// list is returned unchanged. The result is a new slice with Order renumbered;
// the input is not modified.
func Reorder(list []Stage, fromID, toID string) []Stage {
	from := indexOf(list, fromID)
	to := indexOf(list, toID)
	if from < 0 || to < 0 || from == to {
		return list
	}

	out := make([]Stage, 0, len(list))
	moved := list[from]
	for i, s := range list {
		if i == from {
			continue
		}
		if i == to && from > to {
			out = append(out, moved)
		}
		out = append(out, s)
		if i == to && from < to {
			out = append(out, moved)
		}
	}
	for i := range out {
		out[i].Order = i
	}
	return out
}

// MoveWithinView applies a drag made on the category view of the list. Only
// stages visible for category can take part: if either id is hidden, the list
// is returned unchanged. The move is then applied to the canonical list at the
// target's canonical position, so hidden stages lying between the two keep their
// place relative to each other but may end up on the other side of the moved
// stage. This is a known ordering ambiguity of a single canonical order edited
// through a filtered view.
func MoveWithinView(list []Stage, category, fromID, toID string) []Stage {
	from := indexOf(list, fromID)
	to := indexOf(list, toID)
	if from < 0 || to < 0 {
		return list
	}
	if !IsVisible(list[from], category) || !IsVisible(list[to], category) {
		return list
	}
	return Reorder(list, fromID, toID)
}
