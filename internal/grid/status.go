package grid

import "clipgrid/internal/tile"

// TileStatus is a point-in-time report row for one active tile.
type TileStatus struct {
	ID      string
	Name    string
	State   tile.State
	View    tile.ViewKind
	Focused bool
}

// Status reports every active tile in catalog order. The simulator renders
// this as its transition table.
func (g *Grid) Status() []TileStatus {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]TileStatus, 0, len(g.order))
	for _, id := range g.order {
		ent := g.entries[id]
		out = append(out, TileStatus{
			ID:      id,
			Name:    ent.tile.Name,
			State:   ent.ctrl.State(),
			View:    ent.ctrl.View().Kind,
			Focused: g.focus.IsFocused(id),
		})
	}
	return out
}

// Views returns the render surface for every active tile in catalog order.
func (g *Grid) Views() []tile.View {
	g.mu.Lock()
	defer g.mu.Unlock()

	views := make([]tile.View, 0, len(g.order))
	for _, id := range g.order {
		views = append(views, g.entries[id].ctrl.View())
	}
	return views
}
