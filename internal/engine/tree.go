// Package engine is a generic, append-only action tree. It knows
// nothing about go: any state with a deterministic initial value and
// actions exposing Test/Execute gets branching undo/redo by replay.
package engine

// Action transforms a state of type S. Test reports whether the action
// is applicable; Execute applies it. Execute is only ever called on
// states Test accepted.
type Action[S any] interface {
	Test(state S) bool
	Execute(state S)
}

// historyItem is one recorded action with a link to its parent. Items
// are appended once and never mutated or removed, which is what keeps
// every previously returned Path valid for the lifetime of the tree.
type historyItem[S any, A Action[S]] struct {
	parent Path
	action A
}

// Path addresses one item in a tree. The zero value is the root: the
// state before any action.
type Path struct {
	id int
}

// Root is the path to the initial state.
var Root = Path{}

// IsRoot reports whether the path addresses the initial state.
func (p Path) IsRoot() bool {
	return p.id == 0
}

// Index returns the stable index of the item the path addresses, with 0
// meaning the root. Indices are assigned in insertion order, so a
// collaborator can serialize a tree as (parent index, action) records.
func (p Path) Index() int {
	return p.id
}

// PathAt returns the path with the given stable index. PathAt(0) is the
// root.
func PathAt(index int) Path {
	return Path{id: index}
}

// Tree stores history items in a flat slice interlinked by parent ids.
// State is never stored, only derived by replay, so arbitrarily many
// branches can be explored without copying state eagerly.
//
// Concurrent readers are safe once writers stop; Insert is a
// read-then-append sequence and needs external synchronization between
// concurrent writers.
type Tree[S any, A Action[S]] struct {
	initial func() S
	items   []historyItem[S, A]
}

// New constructs an empty tree. initial must return a fresh,
// independent state on every call.
func New[S any, A Action[S]](initial func() S) *Tree[S, A] {
	return &Tree[S, A]{initial: initial}
}

// Len returns the number of recorded items.
func (t *Tree[S, A]) Len() int {
	return len(t.items)
}

// Insert reconstructs the state at parent, tests the action against it
// and, if it is applicable, appends it and returns its path. A rejected
// action leaves the tree untouched and reports ok == false.
func (t *Tree[S, A]) Insert(parent Path, action A) (Path, bool) {
	state := t.GetState(parent)

	if !action.Test(state) {
		return Root, false
	}

	t.items = append(t.items, historyItem[S, A]{parent: parent, action: action})
	return Path{id: len(t.items)}, true
}

// GetState replays the ancestor chain of the path, root to leaf, on a
// fresh initial state. Cost is linear in the depth of the path; nothing
// is cached.
func (t *Tree[S, A]) GetState(at Path) S {
	state := t.initial()

	if at.IsRoot() {
		return state
	}

	var chain []int
	for id := at.id; id != 0; id = t.items[id-1].parent.id {
		chain = append(chain, id)
	}

	for i := len(chain) - 1; i >= 0; i-- {
		t.items[chain[i]-1].action.Execute(state)
	}

	return state
}

// Parent returns the path one step toward the root, and false when the
// path already is the root.
func (t *Tree[S, A]) Parent(at Path) (Path, bool) {
	if at.IsRoot() {
		return Root, false
	}
	return t.items[at.id-1].parent, true
}

// Item returns the action recorded at the path, and false for the root.
func (t *Tree[S, A]) Item(at Path) (A, bool) {
	if at.IsRoot() {
		var zero A
		return zero, false
	}
	return t.items[at.id-1].action, true
}
