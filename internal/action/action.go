// Package action maps finger counts to desktop actions and executes them.
package action

// Kind discriminates the action variants a finger count can bind to.
type Kind string

const (
	// KindNone performs nothing.
	KindNone Kind = "none"
	// KindLaunch starts an application. Target is a program key or path.
	KindLaunch Kind = "launch"
	// KindOpenURL opens a URL in the default browser. Target is the URL.
	KindOpenURL Kind = "url"
	// KindCloseLast terminates the last launched application.
	KindCloseLast Kind = "close_last"
)

// Action is one entry of the count-to-action table.
type Action struct {
	Kind   Kind
	Target string
}

// Table binds finger counts 0-5 to actions. It is immutable once built.
type Table [6]Action

// Lookup returns the action bound to the given count.
// Counts outside [0,5] map to KindNone.
func (t Table) Lookup(count int) Action {
	if count < 0 || count >= len(t) {
		return Action{Kind: KindNone}
	}
	return t[count]
}

// DefaultTable returns the built-in binding: a fist closes the last
// launched application, one finger opens YouTube, and two through four
// launch the browser, the editor and the file manager.
func DefaultTable() Table {
	return Table{
		0: {Kind: KindCloseLast},
		1: {Kind: KindOpenURL, Target: "https://www.youtube.com/"},
		2: {Kind: KindLaunch, Target: "chrome"},
		3: {Kind: KindLaunch, Target: "code"},
		4: {Kind: KindLaunch, Target: "explorer"},
		5: {Kind: KindNone},
	}
}
