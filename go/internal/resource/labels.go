package resource

import "fmt"

// Labels names an entity kind in notification and error text
type Labels struct {
	// Singular is used for mutations, e.g. "player".
	Singular string
	// Plural is used for the collection, e.g. "custom players".
	Plural string
}

func (l Labels) fetchFailed() string  { return fmt.Sprintf("Failed to fetch %s", l.Plural) }
func (l Labels) loadFailed() string   { return fmt.Sprintf("Failed to load %s", l.Plural) }
func (l Labels) createFailed() string { return fmt.Sprintf("Failed to create %s", l.Singular) }
func (l Labels) updateFailed() string { return fmt.Sprintf("Failed to update %s", l.Singular) }
func (l Labels) deleteFailed() string { return fmt.Sprintf("Failed to delete %s", l.Singular) }
