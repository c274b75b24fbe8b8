// Package notification holds the canonical notification record and the pure
// helpers used to build and present it.
package notification

// DefaultTitle is used when a payload carries neither a title nor a heading.
const DefaultTitle = "Untitled"

// Notification is the canonical record shared by the cache, the network
// loader and the pane. Lists are ordered oldest first.
type Notification struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Message   string  `json:"message"`
	Timestamp *string `json:"timestamp"`
	Read      bool    `json:"read"`
}

// Unread counts entries with Read unset.
func Unread(items []Notification) int {
	n := 0
	for _, it := range items {
		if !it.Read {
			n++
		}
	}
	return n
}

// Clone returns a copy of items that shares no backing array with the input.
func Clone(items []Notification) []Notification {
	if items == nil {
		return nil
	}
	out := make([]Notification, len(items))
	copy(out, items)
	return out
}

// Newest returns the entries newest first, which is the display order.
func Newest(items []Notification) []Notification {
	out := make([]Notification, len(items))
	for i, it := range items {
		out[len(items)-1-i] = it
	}
	return out
}
