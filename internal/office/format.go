package office

import (
	"github.com/negokaz/office-server/internal/com"
)

// Font holds the font properties to change. Nil fields are left as they are.
type Font struct {
	Name      *string
	Size      *float64
	Bold      *bool
	Italic    *bool
	Underline *bool
	Color     *string
}

// Empty reports whether no property is set.
func (f Font) Empty() bool {
	return f.Name == nil && f.Size == nil && f.Bold == nil && f.Italic == nil && f.Underline == nil && f.Color == nil
}

// BGR returns the color as an Office BGR long.
func (f Font) BGR() (int, bool, error) {
	if f.Color == nil {
		return 0, false, nil
	}
	c, err := com.Color(*f.Color)
	if err != nil {
		return 0, false, InvalidArgument("%v", err)
	}
	return c, true, nil
}

// Setter applies a list of property writes to one object and stops at the
// first failure.
type Setter struct {
	obj com.Object
	err error
}

func NewSetter(obj com.Object) *Setter {
	return &Setter{obj: obj}
}

// Set writes name = value.
func (s *Setter) Set(name string, value any) *Setter {
	if s.err == nil {
		s.err = s.obj.Put(name, value)
	}
	return s
}

// SetIf writes name = value when ok.
func (s *Setter) SetIf(ok bool, name string, value any) *Setter {
	if ok {
		s.Set(name, value)
	}
	return s
}

func (s *Setter) Err() error {
	return s.err
}
