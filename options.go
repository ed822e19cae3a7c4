package glide

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults used when an option is left unset.
const (
	DefaultInViewClass       = "is-in-view"
	DefaultSmoothClass       = "has-smooth-scroll"
	DefaultScrollEnableClass = "is-scroll-enable"
	DefaultSmoothFactor      = 0.15
	DefaultScrollSettle      = 300 * time.Millisecond
	DefaultHeightCheck       = 2 * time.Second
)

// Options configures a Scroller.
type Options struct {
	// Container is the root scanned for triggers and sized to the content.
	// When nil, the element carrying Attributes.Container is used.
	Container Element `yaml:"-"`
	// Content is the element translated to simulate scrolling. When nil,
	// the element carrying Attributes.Content is used.
	Content Element `yaml:"-"`

	Smooth       bool    `yaml:"smooth"`
	SmoothFactor float64 `yaml:"smoothFactor"`

	InViewClass       string `yaml:"class"`
	SmoothClass       string `yaml:"smoothClass"`
	ScrollEnableClass string `yaml:"scrollEnableClass"`

	// Settle is the quiet period before scroll:end fires.
	Settle time.Duration `yaml:"settle"`
	// ResizeSettle is the quiet period before resize:end fires.
	ResizeSettle time.Duration `yaml:"resizeSettle"`
	// HeightCheck is the minimum interval between polled content height reads.
	HeightCheck time.Duration `yaml:"heightCheck"`

	Attributes Attributes `yaml:"attributes"`
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		SmoothFactor:      DefaultSmoothFactor,
		InViewClass:       DefaultInViewClass,
		SmoothClass:       DefaultSmoothClass,
		ScrollEnableClass: DefaultScrollEnableClass,
		Settle:            DefaultScrollSettle,
		ResizeSettle:      DefaultResizeSettle,
		HeightCheck:       DefaultHeightCheck,
		Attributes:        DefaultAttributes(),
	}
}

// LoadOptions decodes YAML over DefaultOptions and validates the result.
// Durations use Go syntax ("300ms", "2s").
func LoadOptions(data []byte) (Options, error) {
	opts := DefaultOptions()
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("parse options: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return Options{}, fmt.Errorf("parse options: %w", err)
	}
	return opts, nil
}

// Validate reports the first invalid field.
func (o Options) Validate() error {
	if o.SmoothFactor <= 0 || o.SmoothFactor > 1 {
		return fmt.Errorf("smoothFactor %v outside (0, 1]", o.SmoothFactor)
	}
	if o.Settle < 0 || o.ResizeSettle < 0 || o.HeightCheck < 0 {
		return fmt.Errorf("durations must not be negative")
	}
	if o.Attributes.Trigger == "" {
		return fmt.Errorf("attributes.trigger must not be empty")
	}
	return nil
}

// withDefaults fills zero-valued fields from DefaultOptions.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.SmoothFactor == 0 {
		o.SmoothFactor = d.SmoothFactor
	}
	if o.InViewClass == "" {
		o.InViewClass = d.InViewClass
	}
	if o.SmoothClass == "" {
		o.SmoothClass = d.SmoothClass
	}
	if o.ScrollEnableClass == "" {
		o.ScrollEnableClass = d.ScrollEnableClass
	}
	if o.Settle == 0 {
		o.Settle = d.Settle
	}
	if o.ResizeSettle == 0 {
		o.ResizeSettle = d.ResizeSettle
	}
	if o.HeightCheck == 0 {
		o.HeightCheck = d.HeightCheck
	}
	if o.Attributes.Trigger == "" {
		o.Attributes = d.Attributes
	}
	return o
}
