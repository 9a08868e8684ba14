package usecase

import "github.com/conso-maestro/conso-sync/internal/model"

// mirror is the local copy of one user's inventory. Callers hold the usecase mutex.
type mirror struct {
	items []model.InventoryItem

	// epoch counts confirmed mutations.
	epoch uint64
	// fetchSeq numbers issued fetches; appliedFetch is the newest one applied.
	fetchSeq     uint64
	appliedFetch uint64
	inFlight     int
	// confirmed holds mutations confirmed while a fetch was in flight, so a response
	// read before the mutation cannot undo it.
	confirmed []confirmation
}

type confirmation struct {
	epoch    uint64
	itemID   string
	deleted  bool
	location model.StorageLocation
}

func (m *mirror) indexOf(id string) int {
	for i := range m.items {
		if m.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *mirror) snapshot() []model.InventoryItem {
	return cloneItems(m.items)
}

// confirm records a mutation the remote service accepted and applies it locally.
func (m *mirror) confirm(c confirmation) {
	m.epoch++
	c.epoch = m.epoch
	if m.inFlight > 0 {
		m.confirmed = append(m.confirmed, c)
	}

	idx := m.indexOf(c.itemID)
	if idx < 0 {
		return
	}
	if c.deleted {
		next := make([]model.InventoryItem, 0, len(m.items)-1)
		next = append(next, m.items[:idx]...)
		next = append(next, m.items[idx+1:]...)
		m.items = next
		return
	}
	next := cloneItems(m.items)
	next[idx] = next[idx].WithLocation(c.location)
	m.items = next
}

// beginFetch returns the fetch sequence number and the epoch the fetch observes.
func (m *mirror) beginFetch() (seq, epoch uint64) {
	m.fetchSeq++
	m.inFlight++
	return m.fetchSeq, m.epoch
}

// endFetch finishes a fetch. When ok and the fetch is not stale, the mirror is replaced
// by items with newer confirmations re-applied. It reports whether the mirror was
// replaced.
func (m *mirror) endFetch(seq, startEpoch uint64, items []model.InventoryItem, ok bool) bool {
	m.inFlight--
	defer func() {
		if m.inFlight == 0 {
			m.confirmed = nil
		}
	}()

	if !ok || seq < m.appliedFetch {
		return false
	}

	next := cloneItems(items)
	kept := m.confirmed[:0]
	for _, c := range m.confirmed {
		if c.epoch <= startEpoch {
			continue
		}
		kept = append(kept, c)
		next = applyConfirmation(next, c)
	}
	m.confirmed = kept
	m.items = next
	m.appliedFetch = seq
	return true
}

func applyConfirmation(items []model.InventoryItem, c confirmation) []model.InventoryItem {
	out := items[:0]
	for _, item := range items {
		if item.ID == c.itemID {
			if c.deleted {
				continue
			}
			item = item.WithLocation(c.location)
		}
		out = append(out, item)
	}
	return out
}

func cloneItems(src []model.InventoryItem) []model.InventoryItem {
	out := make([]model.InventoryItem, len(src))
	copy(out, src)
	return out
}
