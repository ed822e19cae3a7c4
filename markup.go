package glide

import (
	"math"
	"strconv"
	"strings"
)

// Attributes names the markup attributes read at setup. The zero value is
// not usable; start from DefaultAttributes.
type Attributes struct {
	Container      string `yaml:"container"`
	Content        string `yaml:"content"`
	Section        string `yaml:"section"`
	Trigger        string `yaml:"trigger"`
	Offset         string `yaml:"offset"`
	OffsetViewport string `yaml:"offsetViewport"`
	Repeat         string `yaml:"repeat"`
	Call           string `yaml:"call"`
	Speed          string `yaml:"speed"`
	ForceParallax  string `yaml:"forceParallax"`
	Delay          string `yaml:"delay"`
	Direction      string `yaml:"direction"`
	Target         string `yaml:"target"`
	Position       string `yaml:"position"`
	ScrollTo       string `yaml:"scrollTo"`
	ScrollToOffset string `yaml:"scrollToOffset"`
}

// DefaultAttributes returns the data-scroll attribute family.
func DefaultAttributes() Attributes {
	return AttributesWithPrefix("data-scroll")
}

// AttributesWithPrefix derives every attribute name from prefix.
func AttributesWithPrefix(prefix string) Attributes {
	return Attributes{
		Container:      prefix + "-container",
		Content:        prefix + "-content",
		Section:        prefix + "-section",
		Trigger:        prefix,
		Offset:         prefix + "-offset",
		OffsetViewport: prefix + "-offset-viewport",
		Repeat:         prefix + "-repeat",
		Call:           prefix + "-call",
		Speed:          prefix + "-speed",
		ForceParallax:  prefix + "-force-parallax",
		Delay:          prefix + "-delay",
		Direction:      prefix + "-direction",
		Target:         prefix + "-target",
		Position:       prefix + "-position",
		ScrollTo:       prefix + "-to",
		ScrollToOffset: prefix + "-to-offset",
	}
}

// attrSelector returns the attribute-presence selector for name.
func attrSelector(name string) string {
	return "[" + name + "]"
}

// TriggerConfig is the per-element configuration read from markup.
type TriggerConfig struct {
	Offset         float64
	OffsetViewport float64
	Repeat         bool
	Call           string
	Speed          float64
	ForceParallax  bool
	Delay          float64
	Direction      Axis
	Target         string
	Anchor         Anchor
}

// parseTriggerConfig reads cfg from el's attributes. Unparseable numbers
// leave the feature disabled and are reported through bad.
func parseTriggerConfig(el Element, a Attributes, bad func(attr, value string)) TriggerConfig {
	var cfg TriggerConfig

	if v, ok := el.Attr(a.Offset); ok && v != "" {
		n, err := parseLeadingInt(v)
		if err != nil {
			bad(a.Offset, v)
		}
		cfg.Offset = float64(n)
	}
	if v, ok := el.Attr(a.OffsetViewport); ok && v != "" {
		f, ok := parseFinite(v)
		if !ok {
			bad(a.OffsetViewport, v)
		}
		cfg.OffsetViewport = f
	}
	cfg.Repeat = flagAttr(el, a.Repeat)
	cfg.ForceParallax = flagAttr(el, a.ForceParallax)
	if v, ok := el.Attr(a.Call); ok {
		cfg.Call = strings.TrimSpace(v)
	}
	if v, ok := el.Attr(a.Speed); ok && v != "" {
		f, ok := parseFinite(v)
		if !ok {
			bad(a.Speed, v)
		}
		cfg.Speed = f
	}
	if v, ok := el.Attr(a.Delay); ok && v != "" {
		f, ok := parseFinite(v)
		if !ok || f < 0 || f > 1 {
			bad(a.Delay, v)
			f = 0
		}
		cfg.Delay = f
	}
	if v, _ := el.Attr(a.Direction); strings.TrimSpace(v) == "horizontal" {
		cfg.Direction = AxisHorizontal
	}
	if v, ok := el.Attr(a.Target); ok {
		cfg.Target = strings.TrimSpace(v)
	}
	if v, ok := el.Attr(a.Position); ok {
		cfg.Anchor = parseAnchor(v)
	}
	return cfg
}

func parseAnchor(v string) Anchor {
	switch strings.TrimSpace(v) {
	case "top":
		return AnchorTop
	case "elementTop":
		return AnchorElementTop
	case "bottom":
		return AnchorBottom
	default:
		return AnchorMiddle
	}
}

// flagAttr reports a boolean attribute: present and not "false".
func flagAttr(el Element, name string) bool {
	v, ok := el.Attr(name)
	if !ok {
		return false
	}
	return strings.TrimSpace(v) != "false"
}

// parseLeadingInt parses the leading integer of s ("40px" -> 40).
// parseFinite parses a float attribute. NaN, infinities and out-of-range
// values are rejected and read as 0.
func parseFinite(v string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func parseLeadingInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) {
		c := s[end]
		if c >= '0' && c <= '9' || (end == 0 && (c == '-' || c == '+')) {
			end++
			continue
		}
		break
	}
	return strconv.Atoi(s[:end])
}
