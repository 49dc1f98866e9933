package wishlist

import "sort"

// Membership is a read-only set of wishlisted book ids.
type Membership struct {
	ids map[string]struct{}
}

func NewMembership(ids ...string) Membership {
	m := Membership{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		m.ids[id] = struct{}{}
	}
	return m
}

// Contains is safe on the zero value.
func (m Membership) Contains(id string) bool {
	_, ok := m.ids[id]
	return ok
}

func (m Membership) Len() int { return len(m.ids) }

// IDs returns the members sorted.
func (m Membership) IDs() []string {
	out := make([]string, 0, len(m.ids))
	for id := range m.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
