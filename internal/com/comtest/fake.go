// Package comtest provides an in-memory automation object tree that records
// every member access, for testing COM glue without Office installed.
package comtest

import (
	"fmt"
	"strings"
	"sync"

	"github.com/negokaz/office-server/internal/com"
)

type recorder struct {
	mu  sync.Mutex
	log []string
}

func (r *recorder) add(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.log = append(r.log, line)
}

// Object is a fake com.Object. Children are created on first access, so any
// property path can be walked. Property values written with Put can be read
// back with Get.
type Object struct {
	path     string
	rec      *recorder
	mu       sync.Mutex
	props    map[string]any
	results  map[string]any
	errs     map[string]error
	children map[string]*Object
	released int
}

var _ com.Object = (*Object)(nil)

// New creates a root object whose log lines start with name.
func New(name string) *Object {
	return newObject(name, &recorder{})
}

func newObject(path string, rec *recorder) *Object {
	return &Object{
		path:     path,
		rec:      rec,
		props:    map[string]any{},
		results:  map[string]any{},
		errs:     map[string]error{},
		children: map[string]*Object{},
	}
}

// Key formats a member name with its arguments the way the log does,
// e.g. Key("Item", 2) == "Item(2)".
func Key(name string, args ...any) string {
	if len(args) == 0 {
		return name
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = format(a)
	}
	return name + "(" + strings.Join(parts, ",") + ")"
}

func format(v any) string {
	switch t := v.(type) {
	case *Object:
		return t.path
	case nil:
		return "<nil>"
	default:
		return fmt.Sprint(t)
	}
}

// Child returns the child object reached through key, creating it if needed.
func (o *Object) Child(key string) *Object {
	o.mu.Lock()
	defer o.mu.Unlock()
	c, ok := o.children[key]
	if !ok {
		c = newObject(o.path+"."+key, o.rec)
		o.children[key] = c
	}
	return c
}

// Path walks Child for each key.
func (o *Object) Path(keys ...string) *Object {
	c := o
	for _, k := range keys {
		c = c.Child(k)
	}
	return c
}

// Set stores a property value returned by Get for key.
func (o *Object) Set(key string, v any) *Object {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.props[key] = v
	return o
}

// Returns stores the value returned by Call for key.
func (o *Object) Returns(key string, v any) *Object {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.results[key] = v
	return o
}

// Fails makes every access to key (or to the bare member name) fail with err.
func (o *Object) Fails(key string, err error) *Object {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.errs[key] = err
	return o
}

// Log returns the recorded accesses of the whole tree, in order.
func (o *Object) Log() []string {
	o.rec.mu.Lock()
	defer o.rec.mu.Unlock()
	return append([]string(nil), o.rec.log...)
}

// Released reports how many times Release was called on this object.
func (o *Object) Released() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.released
}

func (o *Object) String() string {
	return o.path
}

func (o *Object) failure(name, key string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err, ok := o.errs[key]; ok {
		return &com.Error{Member: name, Err: err}
	}
	if err, ok := o.errs[name]; ok {
		return &com.Error{Member: name, Err: err}
	}
	return nil
}

func (o *Object) Get(name string, args ...any) (any, error) {
	key := Key(name, args...)
	o.rec.add("get " + o.path + "." + key)
	if err := o.failure(name, key); err != nil {
		return nil, err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if v, ok := o.props[key]; ok {
		return v, nil
	}
	return o.props[name], nil
}

func (o *Object) GetObject(name string, args ...any) (com.Object, error) {
	key := Key(name, args...)
	o.rec.add("get " + o.path + "." + key)
	if err := o.failure(name, key); err != nil {
		return nil, err
	}
	return o.Child(key), nil
}

func (o *Object) Put(name string, args ...any) error {
	if len(args) == 0 {
		return &com.Error{Member: name, Err: fmt.Errorf("missing value")}
	}
	key := Key(name, args[:len(args)-1]...)
	value := args[len(args)-1]
	o.rec.add("put " + o.path + "." + key + " = " + format(value))
	if err := o.failure(name, key); err != nil {
		return err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.props[key] = value
	return nil
}

func (o *Object) Call(name string, args ...any) (any, error) {
	key := Key(name, args...)
	o.rec.add("call " + o.path + "." + callKey(name, args))
	if err := o.failure(name, key); err != nil {
		return nil, err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if v, ok := o.results[key]; ok {
		return v, nil
	}
	return o.results[name], nil
}

func (o *Object) CallObject(name string, args ...any) (com.Object, error) {
	key := Key(name, args...)
	o.rec.add("call " + o.path + "." + callKey(name, args))
	if err := o.failure(name, key); err != nil {
		return nil, err
	}
	return o.Child(callKey(name, args)), nil
}

func (o *Object) Release() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.released++
}

func callKey(name string, args []any) string {
	if len(args) == 0 {
		return name + "()"
	}
	return Key(name, args...)
}

// Connector hands out App on every Connect.
type Connector struct {
	App      *Object
	Attached bool
	Err      error

	mu       sync.Mutex
	connects []string
}

func (c *Connector) Connect(progID string) (com.Object, bool, error) {
	c.mu.Lock()
	c.connects = append(c.connects, progID)
	c.mu.Unlock()
	if c.Err != nil {
		return nil, false, c.Err
	}
	return c.App, c.Attached, nil
}

// Connects returns the ProgIDs passed to Connect.
func (c *Connector) Connects() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.connects...)
}
