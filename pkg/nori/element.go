package nori

// Attr is a single XML attribute.
type Attr struct {
	Name  string
	Value string
}

// Element is a node of a Nori scene document.
// Attributes keep insertion order; setting an existing attribute replaces
// its value in place.
type Element struct {
	Tag      string
	Attrs    []Attr
	Children []*Element
}

// New returns an element with the given tag and attributes.
func New(tag string, attrs ...Attr) *Element {
	return &Element{Tag: tag, Attrs: attrs}
}

// Typed returns an element with a type attribute.
func Typed(tag, typ string) *Element {
	return New(tag, Attr{Name: "type", Value: typ})
}

// Scalar returns a parameter leaf such as <float name="alpha" value="0.1"/>.
func Scalar(kind, name, value string) *Element {
	return New(kind, Attr{Name: "name", Value: name}, Attr{Name: "value", Value: value})
}

// Set assigns an attribute.
func (e *Element) Set(name, value string) {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs[i].Value = value
			return
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
}

// Get returns an attribute value.
func (e *Element) Get(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Type returns the type attribute, or "".
func (e *Element) Type() string {
	v, _ := e.Get("type")
	return v
}

// Name returns the name attribute, or "".
func (e *Element) Name() string {
	v, _ := e.Get("name")
	return v
}

// Append adds children in order. Nil children are skipped.
func (e *Element) Append(children ...*Element) *Element {
	for _, c := range children {
		if c != nil {
			e.Children = append(e.Children, c)
		}
	}
	return e
}

// AddScalar appends a parameter leaf and returns it.
func (e *Element) AddScalar(kind, name, value string) *Element {
	s := Scalar(kind, name, value)
	e.Children = append(e.Children, s)
	return s
}

// Child returns the first direct child with the given tag and name
// attribute. An empty name matches any child with the tag.
func (e *Element) Child(tag, name string) *Element {
	for _, c := range e.Children {
		if c.Tag != tag {
			continue
		}
		if name == "" || c.Name() == name {
			return c
		}
	}
	return nil
}

// Clone returns a deep copy of the element.
func (e *Element) Clone() *Element {
	if e == nil {
		return nil
	}
	c := &Element{Tag: e.Tag}
	if e.Attrs != nil {
		c.Attrs = append([]Attr(nil), e.Attrs...)
	}
	for _, ch := range e.Children {
		c.Children = append(c.Children, ch.Clone())
	}
	return c
}

// Walk calls fn for e and every descendant in document order.
func (e *Element) Walk(fn func(*Element)) {
	fn(e)
	for _, c := range e.Children {
		c.Walk(fn)
	}
}

// Count returns the number of elements in the tree rooted at e.
func (e *Element) Count() int {
	n := 0
	e.Walk(func(*Element) { n++ })
	return n
}
