package momir

// DefaultHistoryCapacity is the number of thumbnails kept by default
const DefaultHistoryCapacity = 5

// HistoryRing keeps the most recently shown images, oldest first.
// It is not safe for concurrent use; App serialises access.
type HistoryRing struct {
	capacity int
	items    []CardImage
}

// NewHistoryRing creates a ring holding at most capacity images
func NewHistoryRing(capacity int) *HistoryRing {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &HistoryRing{
		capacity: capacity,
		items:    make([]CardImage, 0, capacity+1),
	}
}

// Add appends an image and evicts from the front while over capacity
func (h *HistoryRing) Add(img CardImage) {
	h.items = append(h.items, img)
	for len(h.items) > h.capacity {
		h.items = h.items[1:]
	}
}

// Remove takes the entry with the given ID out of the ring
func (h *HistoryRing) Remove(id string) (CardImage, bool) {
	for i, img := range h.items {
		if img.ID == id {
			h.items = append(h.items[:i:i], h.items[i+1:]...)
			return img, true
		}
	}
	return CardImage{}, false
}

// Pop removes and returns the newest entry
func (h *HistoryRing) Pop() (CardImage, bool) {
	if len(h.items) == 0 {
		return CardImage{}, false
	}
	last := h.items[len(h.items)-1]
	h.items = h.items[:len(h.items)-1]
	return last, true
}

// Items returns a copy of the entries, oldest first
func (h *HistoryRing) Items() []CardImage {
	out := make([]CardImage, len(h.items))
	copy(out, h.items)
	return out
}

// Len returns the number of entries
func (h *HistoryRing) Len() int {
	return len(h.items)
}

// Cap returns the ring capacity
func (h *HistoryRing) Cap() int {
	return h.capacity
}
