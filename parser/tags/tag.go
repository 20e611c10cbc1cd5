// Package tags reads the sensors analytics comment directives attached to
// function declarations:
//
//	//sensors:track eventName=Buy includeParams
//	//sensors:property key=channel value=web
//	//sensors:property param=amount key=price
//	func Buy(amount int) {}
package tags

// Kind is the kind of a directive.
type Kind uint8

const (
	None Kind = iota
	Init
	Track
	Profile
	Item
	SignUp
	LoginID
	Property
)

func (k Kind) String() string {
	switch k {
	case Init:
		return "init"
	case Track:
		return "track"
	case Profile:
		return "profile"
	case Item:
		return "item"
	case SignUp:
		return "signup"
	case LoginID:
		return "loginid"
	case Property:
		return "property"
	default:
		return "unknown"
	}
}

// kindByName maps the word after the directive marker to its kind.
var kindByName = map[string]Kind{
	"init":     Init,
	"track":    Track,
	"profile":  Profile,
	"item":     Item,
	"signup":   SignUp,
	"loginid":  LoginID,
	"property": Property,
}

// ProfileType selects the profile mutation a profile tag performs.
type ProfileType uint8

const (
	ProfileSet ProfileType = iota
	ProfileSetOnce
	ProfileAppend
	ProfileIncrement
)

func (p ProfileType) String() string {
	switch p {
	case ProfileSet:
		return "set"
	case ProfileSetOnce:
		return "setOnce"
	case ProfileAppend:
		return "append"
	case ProfileIncrement:
		return "increment"
	default:
		return "unknown"
	}
}

// ItemType selects the item mutation an item tag performs.
type ItemType uint8

const (
	ItemSet ItemType = iota
	ItemDelete
)

func (i ItemType) String() string {
	switch i {
	case ItemSet:
		return "set"
	case ItemDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// PropertyAttr is a property declared on a tag. Value is interpreted when
// the tracking code is generated; a blank Key means the property is ignored.
type PropertyAttr struct {
	Key   string
	Value string
}

// Tag is one tracking directive of a function.
//
// Only the fields relevant to Kind are set.
type Tag struct {
	Kind Kind

	// Track and Profile
	DistinctID string
	IsLoginID  bool

	// Track
	EventName string

	// Profile
	ProfileType ProfileType

	// Item
	ItemType string
	ItemID   string
	ItemKind ItemType

	// SignUp
	LoginID     string
	AnonymousID string

	// Track, Profile and Item
	IncludeParams bool
	Properties    []PropertyAttr

	// Init passes its attributes through to the SDK untouched.
	InitAttrs []PropertyAttr

	Flush bool

	// Text is the directive as written, for diagnostics.
	Text string
}

// AcceptsProperties reports whether property directives may follow this tag.
func (t *Tag) AcceptsProperties() bool {
	switch t.Kind {
	case Track, Profile, Item:
		return true
	}
	return false
}

// Directives are all directives found on one function, in declaration order.
type Directives struct {
	Tags []*Tag

	// LoginID is set when the function supplies the current login id.
	LoginID bool

	// ParamKeys overrides the property key of a parameter, by parameter name.
	ParamKeys map[string]string
}

// Empty reports whether no directive was found.
func (d *Directives) Empty() bool {
	return d == nil || (len(d.Tags) == 0 && !d.LoginID && len(d.ParamKeys) == 0)
}

// Has reports whether a tag of kind k is present.
func (d *Directives) Has(k Kind) bool {
	if d == nil {
		return false
	}
	for _, tag := range d.Tags {
		if tag.Kind == k {
			return true
		}
	}
	return false
}
