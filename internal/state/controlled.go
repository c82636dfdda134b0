package state

// Controlled implements the controlled/uncontrolled split shared by the
// widgets. Without a change callback the widget owns the value and Set
// writes it. With a callback the caller owns it: Set only reports the
// request, and the value moves when the caller passes it back through
// SyncExternal. Value always returns the authoritative value.
type Controlled[T any] struct {
	cell     *Cell[T]
	onChange func(T)
}

// NewControlled creates the state. A nil onChange makes it uncontrolled.
func NewControlled[T any](initial T, onChange func(T)) *Controlled[T] {
	return &Controlled[T]{cell: NewCell(initial), onChange: onChange}
}

// IsControlled reports whether the caller owns the value.
func (c *Controlled[T]) IsControlled() bool {
	return c.onChange != nil
}

// Value returns the authoritative value.
func (c *Controlled[T]) Value() T {
	return c.cell.Get()
}

// Set requests a new value.
func (c *Controlled[T]) Set(v T) {
	if c.onChange != nil {
		c.onChange(v)
		return
	}
	c.cell.Set(v)
}

// SyncExternal applies a value supplied by the caller, such as an updated
// prop. It is honoured in both modes.
func (c *Controlled[T]) SyncExternal(v T) {
	c.cell.Set(v)
}

// Subscribe registers fn for changes of the authoritative value.
func (c *Controlled[T]) Subscribe(fn func(T)) func() {
	return c.cell.Subscribe(fn)
}
