package manifest

// Pin selects how a dependent tracks the shared library: by commit or by
// branch. The two are mutually exclusive; a manifest carries exactly one.
type Pin interface {
	// Key is the manifest key the pin is written under.
	Key() string
	// Value is the commit id or branch name.
	Value() string
	isPin()
}

// Rev pins a dependency to a commit.
type Rev string

// Key implements Pin.
func (Rev) Key() string { return "rev" }

// Value implements Pin.
func (r Rev) Value() string { return string(r) }

func (Rev) isPin() {}

// Branch pins a dependency to the head of a branch.
type Branch string

// Key implements Pin.
func (Branch) Key() string { return "branch" }

// Value implements Pin.
func (b Branch) Value() string { return string(b) }

func (Branch) isPin() {}

// pinKeys are the keys a Pin may be written under.
var pinKeys = []string{Rev("").Key(), Branch("").Key()}

func isPinKey(k string) bool {
	for _, p := range pinKeys {
		if k == p {
			return true
		}
	}
	return false
}
