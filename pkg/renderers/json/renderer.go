// Package json renders formatter output as the delta keyed render array hosts
// consume, e.g. {"0": {"#title": "A", "#value": "B", "#type": "details",
// "#open": true}}. Keys are written in delta order.
package json

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/goliatone/go-doublefield/pkg/formatter"
	"github.com/goliatone/go-doublefield/pkg/render"
)

// Name is the registry name of the renderer.
const Name = "json"

type Option func(*Renderer)

// WithIndent pretty prints the output using indent per level.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

type Renderer struct {
	indent string
}

var _ render.Renderer = (*Renderer)(nil)

func New(options ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

func (r *Renderer) Render(ctx context.Context, elements formatter.Elements, _ render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	written := 0
	for delta, element := range elements {
		if element == nil {
			continue
		}
		payload, err := json.Marshal(element.RenderArray())
		if err != nil {
			return nil, fmt.Errorf("json renderer: encode delta %d: %w", delta, err)
		}
		if written > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(strconv.Itoa(delta)))
		buf.WriteByte(':')
		buf.Write(payload)
		written++
	}
	buf.WriteByte('}')

	if r.indent == "" {
		return buf.Bytes(), nil
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, buf.Bytes(), "", r.indent); err != nil {
		return nil, fmt.Errorf("json renderer: indent: %w", err)
	}
	return pretty.Bytes(), nil
}
