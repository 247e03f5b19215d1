package bridge

// Action identifies a worker capability. The set is closed: the operation
// surface maps each tool onto exactly one action, and an unknown action is a
// programming error rather than a runtime condition.
type Action string

const (
	ActionFetch      Action = "fetch"
	ActionSearch     Action = "search"
	ActionExtract    Action = "extract"
	ActionScreenshot Action = "screenshot"
	ActionCrawl      Action = "crawl"
	ActionMap        Action = "map"
	ActionDebug      Action = "debug"
	ActionVersion    Action = "version"
)

var actions = map[Action]struct{}{
	ActionFetch:      {},
	ActionSearch:     {},
	ActionExtract:    {},
	ActionScreenshot: {},
	ActionCrawl:      {},
	ActionMap:        {},
	ActionDebug:      {},
	ActionVersion:    {},
}

// Valid reports whether a belongs to the closed action set.
func (a Action) Valid() bool {
	_, ok := actions[a]
	return ok
}

func (a Action) String() string { return string(a) }

// Actions returns the closed action set in a stable order.
func Actions() []Action {
	return []Action{
		ActionFetch,
		ActionSearch,
		ActionExtract,
		ActionScreenshot,
		ActionCrawl,
		ActionMap,
		ActionDebug,
		ActionVersion,
	}
}
