package annotate

// UndoStack records created annotations by ID, most recent last.
// Popped entries are discarded; there is no redo.
type UndoStack struct {
	ids []int
}

// NewUndoStack returns an empty stack.
func NewUndoStack() *UndoStack {
	return &UndoStack{ids: make([]int, 0, 16)}
}

// Push records a newly created annotation.
func (u *UndoStack) Push(id int) {
	u.ids = append(u.ids, id)
}

// Pop removes and returns the most recent entry.
func (u *UndoStack) Pop() (int, bool) {
	if len(u.ids) == 0 {
		return 0, false
	}
	id := u.ids[len(u.ids)-1]
	u.ids = u.ids[:len(u.ids)-1]
	return id, true
}

// Len is the number of entries.
func (u *UndoStack) Len() int { return len(u.ids) }

// CanUndo reports whether Pop would return an entry.
func (u *UndoStack) CanUndo() bool { return len(u.ids) > 0 }

// Clear drops every entry.
func (u *UndoStack) Clear() { u.ids = u.ids[:0] }
