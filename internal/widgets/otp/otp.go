// Package otp implements one-time-password entry across a fixed number of
// single-character fields.
package otp

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/alexisbeaulieu97/primitives/internal/dom"
	"github.com/alexisbeaulieu97/primitives/internal/logger"
	"github.com/alexisbeaulieu97/primitives/internal/loop"
	"github.com/alexisbeaulieu97/primitives/internal/widgets"
	primerrors "github.com/alexisbeaulieu97/primitives/pkg/errors"
)

const (
	component     = "otp"
	defaultLength = 6
)

// Change is reported after the fields settle.
type Change struct {
	Code     string
	Complete bool
}

// Options configures an OTP group.
type Options struct {
	// Length is the number of fields. Defaults to 6.
	Length   int
	OnChange func(Change)
	// OnSubmit runs when Enter is pressed with every field filled.
	OnSubmit func(code string)
}

// OTP coordinates focus and value across its fields.
type OTP struct {
	env      widgets.Env
	length   int
	onChange func(Change)
	onSubmit func(string)
	fields   []*html.Node
	pending  bool
	frame    loop.FrameID
	removes  []func()
	disposed bool
	log      *logger.Logger
}

// New creates an OTP group. Fields are attached with BindFields.
func New(env widgets.Env, opts Options) *OTP {
	length := opts.Length
	if length <= 0 {
		length = defaultLength
	}
	o := &OTP{
		env:      env,
		length:   length,
		onChange: opts.OnChange,
		onSubmit: opts.OnSubmit,
		log:      env.Logger(component),
	}
	env.Owner.OnCleanup(o.dispose)
	return o
}

// Length returns the number of fields.
func (o *OTP) Length() int { return o.length }

// BindFields attaches the rendered inputs in order.
func (o *OTP) BindFields(fields []*html.Node) error {
	if err := primerrors.Assert(len(fields) == o.length, component,
		fmt.Sprintf("expected %d fields, got %d", o.length, len(fields)), "render one input per code character"); err != nil {
		return err
	}
	for i, f := range fields {
		if err := primerrors.Assert(dom.Tag(f) == "input", component,
			fmt.Sprintf("field %d is <%s>, not <input>", i, dom.Tag(f)), "every field must be an input element"); err != nil {
			return err
		}
	}

	o.release()
	o.fields = append([]*html.Node(nil), fields...)
	doc := o.env.Doc
	for i, f := range o.fields {
		i := i
		widgets.Apply(f, o.FieldAttrs(i))
		o.removes = append(o.removes,
			doc.AddEventListener(f, dom.EventInput, func(ev *dom.Event) { o.onInput(i, ev) }),
			doc.AddEventListener(f, dom.EventKeyDown, func(ev *dom.Event) { o.onKeyDown(i, ev) }),
			doc.AddEventListener(f, dom.EventPaste, func(ev *dom.Event) { o.onPaste(i, ev) }),
		)
	}
	return nil
}

// FieldAttrs returns the attributes for field i.
func (o *OTP) FieldAttrs(i int) widgets.Attrs {
	attrs := widgets.Attrs{
		"type":       "text",
		"inputmode":  "numeric",
		"maxlength":  "1",
		"aria-label": fmt.Sprintf("Please enter OTP character %d of %d", i+1, o.length),
	}
	if i == 0 {
		attrs["autocomplete"] = "one-time-code"
	}
	return attrs
}

// Code concatenates the current field values.
func (o *OTP) Code() string {
	var b strings.Builder
	for _, f := range o.fields {
		b.WriteString(value(f))
	}
	return b.String()
}

// Complete reports whether every field holds a character.
func (o *OTP) Complete() bool {
	return utf8.RuneCountInString(o.Code()) == o.length
}

// Reset clears every field and focuses the first.
func (o *OTP) Reset() {
	for _, f := range o.fields {
		setValue(f, "")
	}
	if len(o.fields) > 0 {
		o.env.Doc.Focus(o.fields[0])
	}
	o.schedule()
}

func (o *OTP) onInput(i int, ev *dom.Event) {
	runes := []rune(ev.Data)
	switch len(runes) {
	case 0:
		setValue(o.fields[i], "")
	case 1:
		setValue(o.fields[i], string(runes))
		o.focus(i + 1)
	default:
		// Autofill and IME can insert several characters at once.
		o.distribute(i, runes)
	}
	o.schedule()
}

func (o *OTP) onKeyDown(i int, ev *dom.Event) {
	switch ev.Key {
	case "Backspace":
		ev.PreventDefault()
		if value(o.fields[i]) != "" {
			setValue(o.fields[i], "")
		} else if i > 0 {
			setValue(o.fields[i-1], "")
			o.focus(i - 1)
		}
		o.schedule()
	case "ArrowLeft":
		ev.PreventDefault()
		o.focus(i - 1)
	case "ArrowRight":
		ev.PreventDefault()
		o.focus(i + 1)
	case "Enter":
		if o.onSubmit != nil && o.Complete() {
			ev.PreventDefault()
			o.onSubmit(o.Code())
		}
	}
}

func (o *OTP) onPaste(i int, ev *dom.Event) {
	ev.PreventDefault()
	text := []rune(strings.Join(strings.Fields(ev.Data), ""))
	if len(text) == 0 {
		return
	}
	o.distribute(i, text)
	o.schedule()
}

// distribute writes one rune per field starting at field start and moves
// focus past the last written field.
func (o *OTP) distribute(start int, runes []rune) {
	last := start
	for j, r := range runes {
		idx := start + j
		if idx >= len(o.fields) {
			break
		}
		setValue(o.fields[idx], string(r))
		last = idx
	}
	o.focus(last + 1)
}

func (o *OTP) focus(i int) {
	if len(o.fields) == 0 {
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= len(o.fields) {
		i = len(o.fields) - 1
	}
	o.env.Doc.Focus(o.fields[i])
}

// schedule reports the settled value on the next animation frame. Calls
// made before the frame runs collapse into one report.
func (o *OTP) schedule() {
	if o.pending || o.disposed {
		return
	}
	o.pending = true
	o.frame = o.env.Loop.RequestAnimationFrame(func(time.Time) {
		o.pending = false
		if o.disposed {
			return
		}
		code := o.Code()
		change := Change{Code: code, Complete: utf8.RuneCountInString(code) == o.length}
		o.log.DebugFields("code changed", map[string]any{"length": len(code), "complete": change.Complete})
		if o.onChange != nil {
			o.onChange(change)
		}
	})
}

func (o *OTP) release() {
	for _, remove := range o.removes {
		remove()
	}
	o.removes = nil
}

func (o *OTP) dispose() {
	o.disposed = true
	o.release()
	if o.pending {
		o.env.Loop.CancelAnimationFrame(o.frame)
		o.pending = false
	}
}

func value(n *html.Node) string {
	v, _ := dom.Attr(n, "value")
	return v
}

func setValue(n *html.Node, v string) {
	dom.SetAttr(n, "value", v)
}
