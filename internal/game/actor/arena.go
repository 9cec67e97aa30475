package actor

// Arena owns the actors of a scene. Iteration follows insertion order so
// ticks are deterministic.
type Arena struct {
	actors map[ID]*Actor
	order  []ID
	nextID ID
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{
		actors: make(map[ID]*Actor),
		nextID: 1,
	}
}

// Add assigns a fresh ID to a and stores it.
func (m *Arena) Add(a *Actor) ID {
	a.ID = m.nextID
	m.nextID++
	m.actors[a.ID] = a
	m.order = append(m.order, a.ID)
	return a.ID
}

// Remove drops an actor. Stale references to it resolve to nil afterwards.
func (m *Arena) Remove(id ID) {
	if _, ok := m.actors[id]; !ok {
		return
	}
	delete(m.actors, id)
	for i, o := range m.order {
		if o == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Get returns the actor with id, or nil.
func (m *Arena) Get(id ID) *Actor {
	if id == None {
		return nil
	}
	return m.actors[id]
}

// All returns every actor in insertion order.
func (m *Arena) All() []*Actor {
	result := make([]*Actor, 0, len(m.order))
	for _, id := range m.order {
		result = append(result, m.actors[id])
	}
	return result
}

// Filter returns actors matching keep, in insertion order.
func (m *Arena) Filter(keep func(*Actor) bool) []*Actor {
	result := make([]*Actor, 0)
	for _, id := range m.order {
		if a := m.actors[id]; keep(a) {
			result = append(result, a)
		}
	}
	return result
}

// Enemies returns all Enemy-kind actors.
func (m *Arena) Enemies() []*Actor {
	return m.Filter((*Actor).IsEnemy)
}

// Obstacles returns all Obstacle-kind actors.
func (m *Arena) Obstacles() []*Actor {
	return m.Filter((*Actor).IsObstacle)
}

// Count returns the number of actors.
func (m *Arena) Count() int {
	return len(m.actors)
}

// CountWhere returns the number of actors matching keep.
func (m *Arena) CountWhere(keep func(*Actor) bool) int {
	count := 0
	for _, a := range m.actors {
		if keep(a) {
			count++
		}
	}
	return count
}

// Clear removes every actor. IDs keep counting up.
func (m *Arena) Clear() {
	m.actors = make(map[ID]*Actor)
	m.order = nil
}
