package tags

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// attr is a single name=value pair of a directive line.
type attr struct {
	name  string
	value string
}

// allowed lists the attributes each kind accepts. Init accepts any attribute.
var allowed = map[Kind]map[string]bool{
	Track: {
		"distinctId":    true,
		"isLoginId":     true,
		"eventName":     true,
		"includeParams": true,
		"flush":         true,
	},
	Profile: {
		"distinctId":    true,
		"isLoginId":     true,
		"type":          true,
		"includeParams": true,
		"flush":         true,
	},
	Item: {
		"itemType":      true,
		"itemId":        true,
		"type":          true,
		"includeParams": true,
		"flush":         true,
	},
	SignUp: {
		"loginId":     true,
		"anonymousId": true,
		"flush":       true,
	},
	LoginID: {},
	Property: {
		"key":   true,
		"value": true,
		"param": true,
	},
}

// Parse reads the directives among the comment lines of a function, where
// marker is the directive prefix including the comment slashes, e.g.
// "//sensors:". Comments that do not start with the marker are ignored.
//
// A property directive applies to the track, profile or item directive right
// above it, unless it names a parameter with param=, in which case it overrides
// the property key of that parameter.
func Parse(marker string, comments []string) (*Directives, error) {
	d := &Directives{}
	var last *Tag
	seen := map[Kind]bool{}

	for _, c := range comments {
		line := strings.TrimSpace(c)
		if !strings.HasPrefix(line, marker) {
			continue
		}

		kind, attrs, err := parseLine(strings.TrimPrefix(line, marker))
		if err != nil {
			return nil, errors.Wrapf(err, "directive %q", line)
		}

		if kind != Property && seen[kind] {
			return nil, errors.Errorf("directive %q: a function may only carry one %s directive", line, kind)
		}
		seen[kind] = true

		switch kind {
		case LoginID:
			d.LoginID = true
			last = nil
		case Property:
			if err := d.addProperty(last, attrs); err != nil {
				return nil, errors.Wrapf(err, "directive %q", line)
			}
		default:
			tag, err := newTag(kind, attrs)
			if err != nil {
				return nil, errors.Wrapf(err, "directive %q", line)
			}
			tag.Text = line
			d.Tags = append(d.Tags, tag)
			last = tag
		}
	}

	return d, nil
}

func (d *Directives) addProperty(last *Tag, attrs []attr) error {
	var key, value, param string
	hasValue := false
	for _, a := range attrs {
		switch a.name {
		case "key":
			key = a.value
		case "value":
			value = a.value
			hasValue = true
		case "param":
			param = a.value
		}
	}

	if param != "" {
		if hasValue {
			return errors.New("a parameter property may not set a value")
		}
		if d.ParamKeys == nil {
			d.ParamKeys = map[string]string{}
		}
		if _, ok := d.ParamKeys[param]; ok {
			return errors.Errorf("parameter %q already has a property key", param)
		}
		d.ParamKeys[param] = key
		return nil
	}

	if last == nil || !last.AcceptsProperties() {
		return errors.New("property must follow a track, profile or item directive")
	}
	last.Properties = append(last.Properties, PropertyAttr{Key: key, Value: value})
	return nil
}

func newTag(kind Kind, attrs []attr) (*Tag, error) {
	tag := &Tag{Kind: kind}
	if kind == Init {
		for _, a := range attrs {
			tag.InitAttrs = append(tag.InitAttrs, PropertyAttr{Key: a.name, Value: a.value})
		}
		return tag, nil
	}

	for _, a := range attrs {
		var err error
		switch a.name {
		case "distinctId":
			tag.DistinctID = a.value
		case "isLoginId":
			tag.IsLoginID, err = parseBool(a)
		case "eventName":
			tag.EventName = a.value
		case "includeParams":
			tag.IncludeParams, err = parseBool(a)
		case "flush":
			tag.Flush, err = parseBool(a)
		case "itemType":
			tag.ItemType = a.value
		case "itemId":
			tag.ItemID = a.value
		case "loginId":
			tag.LoginID = a.value
		case "anonymousId":
			tag.AnonymousID = a.value
		case "type":
			if kind == Profile {
				tag.ProfileType, err = parseProfileType(a.value)
			} else {
				tag.ItemKind, err = parseItemType(a.value)
			}
		}
		if err != nil {
			return nil, err
		}
	}
	return tag, nil
}

func parseBool(a attr) (bool, error) {
	b, err := strconv.ParseBool(a.value)
	if err != nil {
		return false, errors.Errorf("attribute %s: %q is not a boolean", a.name, a.value)
	}
	return b, nil
}

// normalizeType lowers the case and drops separators, so "SET_ONCE",
// "setOnce" and "set-once" all read the same.
func normalizeType(s string) string {
	s = strings.ToLower(s)
	return strings.NewReplacer("_", "", "-", "").Replace(s)
}

func parseProfileType(s string) (ProfileType, error) {
	switch normalizeType(s) {
	case "set":
		return ProfileSet, nil
	case "setonce":
		return ProfileSetOnce, nil
	case "append":
		return ProfileAppend, nil
	case "increment":
		return ProfileIncrement, nil
	}
	return ProfileSet, errors.Errorf("unknown profile type %q", s)
}

func parseItemType(s string) (ItemType, error) {
	switch normalizeType(s) {
	case "set":
		return ItemSet, nil
	case "delete":
		return ItemDelete, nil
	}
	return ItemSet, errors.Errorf("unknown item type %q", s)
}

// parseLine splits "track eventName=Buy flush" into its kind and attributes.
func parseLine(s string) (Kind, []attr, error) {
	name, rest := s, ""
	if i := strings.IndexFunc(s, unicode.IsSpace); i != -1 {
		name, rest = s[:i], s[i:]
	}

	kind, ok := kindByName[name]
	if !ok {
		return None, nil, errors.Errorf("unknown directive kind %q", name)
	}

	attrs, err := parseAttrs(rest)
	if err != nil {
		return None, nil, err
	}

	if names, ok := allowed[kind]; ok {
		for _, a := range attrs {
			if !names[a.name] {
				return None, nil, errors.Errorf("unknown attribute %q for %s", a.name, kind)
			}
		}
	}
	return kind, attrs, nil
}

// parseAttrs tokenizes a list of attributes. A value is either a bare token
// running up to the next space or a double quoted Go string literal. A name
// without a value means true.
func parseAttrs(s string) ([]attr, error) {
	var attrs []attr
	seen := map[string]bool{}

	for {
		s = strings.TrimLeftFunc(s, unicode.IsSpace)
		if s == "" {
			return attrs, nil
		}

		end := strings.IndexFunc(s, func(r rune) bool {
			return r == '=' || unicode.IsSpace(r)
		})
		if end == -1 {
			end = len(s)
		}
		name := s[:end]
		s = s[end:]
		if !isName(name) {
			return nil, errors.Errorf("invalid attribute name %q", name)
		}
		if seen[name] {
			return nil, errors.Errorf("attribute %q is repeated", name)
		}
		seen[name] = true

		if !strings.HasPrefix(s, "=") {
			attrs = append(attrs, attr{name: name, value: "true"})
			continue
		}
		s = s[1:]

		var value string
		if strings.HasPrefix(s, `"`) {
			quoted, err := strconv.QuotedPrefix(s)
			if err != nil {
				return nil, errors.Errorf("attribute %s: unterminated string", name)
			}
			value, err = strconv.Unquote(quoted)
			if err != nil {
				return nil, errors.Wrapf(err, "attribute %s", name)
			}
			s = s[len(quoted):]
			if s != "" && !unicode.IsSpace(rune(s[0])) {
				return nil, errors.Errorf("attribute %s: unexpected text after string", name)
			}
		} else {
			end := strings.IndexFunc(s, unicode.IsSpace)
			if end == -1 {
				end = len(s)
			}
			value = s[:end]
			s = s[end:]
		}
		attrs = append(attrs, attr{name: name, value: value})
	}
}

func isName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r != '_' && r != '.' && r != '-' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
