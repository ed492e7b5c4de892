package stack

import "fmt"

// Procedure moves Count items from stack Source to stack Destination.
// Source and Destination are 1-based and may be equal.
type Procedure struct {
	Count       int `json:"count"`
	Source      int `json:"source"`
	Destination int `json:"destination"`
}

// String renders the procedure in its input form.
func (p Procedure) String() string {
	return fmt.Sprintf("move %d from %d to %d", p.Count, p.Source, p.Destination)
}
