package com

// Scope collects the intermediate objects of one operation and releases
// them in reverse order.
//
//	s := com.NewScope()
//	defer s.Release()
//	doc, err := s.GetObject(app, "ActiveDocument")
type Scope struct {
	objects []Object
}

func NewScope() *Scope {
	return &Scope{}
}

// Track adds an object to the scope and returns it.
func (s *Scope) Track(o Object) Object {
	if o != nil {
		s.objects = append(s.objects, o)
	}
	return o
}

func (s *Scope) GetObject(o Object, name string, args ...any) (Object, error) {
	child, err := o.GetObject(name, args...)
	if err != nil {
		return nil, err
	}
	return s.Track(child), nil
}

func (s *Scope) CallObject(o Object, name string, args ...any) (Object, error) {
	child, err := o.CallObject(name, args...)
	if err != nil {
		return nil, err
	}
	return s.Track(child), nil
}

// Path follows a chain of object properties, e.g. Path(app, "ActiveDocument", "Content").
func (s *Scope) Path(o Object, names ...string) (Object, error) {
	current := o
	for _, name := range names {
		next, err := s.GetObject(current, name)
		if err != nil {
			return nil, err
		}
		current = next
	}
	return current, nil
}

// Release releases all tracked objects, last acquired first.
func (s *Scope) Release() {
	for i := len(s.objects) - 1; i >= 0; i-- {
		s.objects[i].Release()
	}
	s.objects = nil
}
