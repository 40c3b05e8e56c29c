package animgraph

// MaxNetworkedCost is the bit budget of networked parameters.
const MaxNetworkedCost = 256

// ParamEntry is one networked parameter.
type ParamEntry struct {
	Name    string
	Kind    ParamKind
	Default float64
	Saved   bool
}

// ParamList is the ordered list of networked parameters shipped with a controller.
type ParamList struct {
	entries []ParamEntry
	index   map[string]int
}

// NewParamList creates an empty list.
func NewParamList() *ParamList {
	return &ParamList{index: make(map[string]int)}
}

// Add inserts an entry or merges it into an existing one of the same name.
// Saved is OR-ed; a different kind is a *ParamKindError.
func (l *ParamList) Add(e ParamEntry) error {
	if l.index == nil {
		l.index = make(map[string]int)
	}
	if i, ok := l.index[e.Name]; ok {
		cur := &l.entries[i]
		if cur.Kind != e.Kind {
			return &ParamKindError{Name: e.Name, Existing: cur.Kind, Requested: e.Kind}
		}
		cur.Saved = cur.Saved || e.Saved
		return nil
	}
	l.index[e.Name] = len(l.entries)
	l.entries = append(l.entries, e)
	return nil
}

// Get looks an entry up by name.
func (l *ParamList) Get(name string) (ParamEntry, bool) {
	i, ok := l.index[name]
	if !ok {
		return ParamEntry{}, false
	}
	return l.entries[i], true
}

// Entries returns the entries in insertion order.
func (l *ParamList) Entries() []ParamEntry {
	return append([]ParamEntry(nil), l.entries...)
}

// Len returns the number of entries.
func (l *ParamList) Len() int { return len(l.entries) }

// Cost returns the networked bit cost of the list.
func (l *ParamList) Cost() int {
	total := 0
	for _, e := range l.entries {
		total += e.Kind.Cost()
	}
	return total
}

// Output is everything a build attaches to an avatar.
type Output struct {
	Controller *Controller
	Menu       *Menu
	Params     *ParamList
}
