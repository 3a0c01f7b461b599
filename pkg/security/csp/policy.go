// Package csp builds Content-Security-Policy header values.
package csp

import (
	"strings"
)

// HeaderName is the response header a policy is sent in.
const HeaderName = "Content-Security-Policy"

// directiveOrder fixes the order directives appear in the header.
var directiveOrder = []string{
	"default-src",
	"style-src",
	"img-src",
	"frame-ancestors",
	"form-action",
	"base-uri",
	"object-src",
}

// Builder constructs a policy with a fluent interface:
//
//	NewBuilder().DefaultSrc("'self'").StyleSrc("'self'", "'unsafe-inline'").Build()
//	// "default-src 'self'; style-src 'self' 'unsafe-inline'"
//
// A Builder is not safe for concurrent modification.
type Builder struct {
	directives map[string][]string
}

// NewBuilder returns an empty policy.
func NewBuilder() *Builder {
	return &Builder{directives: make(map[string][]string)}
}

func (b *Builder) set(directive string, sources []string) *Builder {
	b.directives[directive] = sources
	return b
}

// DefaultSrc sets default-src, the fallback for the other fetch directives.
func (b *Builder) DefaultSrc(sources ...string) *Builder { return b.set("default-src", sources) }

// StyleSrc sets style-src.
func (b *Builder) StyleSrc(sources ...string) *Builder { return b.set("style-src", sources) }

// ImgSrc sets img-src.
func (b *Builder) ImgSrc(sources ...string) *Builder { return b.set("img-src", sources) }

// FrameAncestors sets frame-ancestors.
func (b *Builder) FrameAncestors(sources ...string) *Builder {
	return b.set("frame-ancestors", sources)
}

// FormAction sets form-action.
func (b *Builder) FormAction(sources ...string) *Builder { return b.set("form-action", sources) }

// BaseURI sets base-uri.
func (b *Builder) BaseURI(sources ...string) *Builder { return b.set("base-uri", sources) }

// ObjectSrc sets object-src.
func (b *Builder) ObjectSrc(sources ...string) *Builder { return b.set("object-src", sources) }

// Build returns the header value. Directives without sources are omitted.
func (b *Builder) Build() string {
	parts := make([]string, 0, len(b.directives))
	for _, directive := range directiveOrder {
		if sources := b.directives[directive]; len(sources) > 0 {
			parts = append(parts, directive+" "+strings.Join(sources, " "))
		}
	}
	return strings.Join(parts, "; ")
}

// PagePolicy fits the headline page: no scripts, inline styles only, and the
// filter form may only submit to the same origin.
func PagePolicy() *Builder {
	return NewBuilder().
		DefaultSrc("'none'").
		StyleSrc("'unsafe-inline'").
		ImgSrc("'self'").
		FrameAncestors("'none'").
		FormAction("'self'").
		BaseURI("'none'").
		ObjectSrc("'none'")
}

// StrictPolicy blocks everything and suits JSON endpoints.
func StrictPolicy() *Builder {
	return NewBuilder().
		DefaultSrc("'none'").
		FrameAncestors("'none'").
		BaseURI("'none'").
		FormAction("'none'")
}
