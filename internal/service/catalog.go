package service

import (
	"sort"
	"sync/atomic"

	"roombooking/internal/models"
)

// catalog is the in-memory view of the rooms. The set of rooms is fixed when
// it is built; each room's state is an immutable snapshot swapped atomically,
// so readers never take a lock.
type catalog struct {
	order []string
	rooms map[string]*atomic.Pointer[models.Room]
}

func newCatalog(rooms []models.Room) *catalog {
	c := &catalog{
		order: make([]string, 0, len(rooms)),
		rooms: make(map[string]*atomic.Pointer[models.Room], len(rooms)),
	}
	for _, r := range rooms {
		r := r
		p := new(atomic.Pointer[models.Room])
		p.Store(&r)
		c.order = append(c.order, r.ID)
		c.rooms[r.ID] = p
	}
	return c
}

func (c *catalog) get(id string) (models.Room, bool) {
	p, ok := c.rooms[id]
	if !ok {
		return models.Room{}, false
	}
	return *p.Load(), true
}

func (c *catalog) list() []models.Room {
	out := make([]models.Room, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.rooms[id].Load())
	}
	return out
}

// insert publishes a copy of the room with iv added at its sorted position.
// The caller holds the room lock and has ruled out overlaps.
func (c *catalog) insert(id string, iv models.Interval) models.Room {
	p := c.rooms[id]
	cur := p.Load()
	next := *cur
	next.Bookings = withInterval(cur.Bookings, iv)
	p.Store(&next)
	return next
}

func withInterval(ivs []models.Interval, iv models.Interval) []models.Interval {
	i := sort.Search(len(ivs), func(i int) bool { return !ivs[i].Start.Before(iv.Start) })
	out := make([]models.Interval, 0, len(ivs)+1)
	out = append(out, ivs[:i]...)
	out = append(out, iv)
	return append(out, ivs[i:]...)
}
