package com

import (
	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
	"github.com/pkg/errors"
)

const (
	sFalse                = 0x00000001
	rpcEDisconnected      = 0x80010108
	rpcSServerUnavailable = 0x800706BA
)

// OpenOleApartment starts an apartment initialised with
// CoInitializeEx(COINIT_APARTMENTTHREADED).
func OpenOleApartment() (*Apartment, error) {
	return OpenApartment(func() error {
		err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED)
		if hresult(err) == sFalse {
			// already initialised on this thread
			return nil
		}
		return err
	}, ole.CoUninitialize)
}

// IsDisconnected reports whether err means the automation server went away,
// e.g. the user closed the application window.
func IsDisconnected(err error) bool {
	switch hresult(err) {
	case rpcEDisconnected, rpcSServerUnavailable:
		return true
	}
	return false
}

func hresult(err error) uintptr {
	var oleErr *ole.OleError
	if err != nil && errors.As(err, &oleErr) {
		return oleErr.Code()
	}
	return 0
}

// OleConnector connects through the running object table or by creating
// a new local server.
type OleConnector struct {
	// Attach prefers an already running instance over launching a new one.
	Attach bool
}

func (c OleConnector) Connect(progID string) (Object, bool, error) {
	if c.Attach {
		if unknown, err := oleutil.GetActiveObject(progID); err == nil {
			disp, err := unknown.QueryInterface(ole.IID_IDispatch)
			unknown.Release()
			if err == nil {
				return Wrap(disp), true, nil
			}
		}
	}

	unknown, err := oleutil.CreateObject(progID)
	if err != nil {
		return nil, false, errors.Wrapf(err, "failed to launch %s", progID)
	}
	defer unknown.Release()
	disp, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return nil, false, errors.Wrapf(err, "failed to query %s interface", progID)
	}
	return Wrap(disp), false, nil
}

type oleObject struct {
	disp *ole.IDispatch
}

// Wrap takes ownership of disp.
func Wrap(disp *ole.IDispatch) Object {
	return &oleObject{disp: disp}
}

func (o *oleObject) Get(name string, args ...any) (any, error) {
	v, err := oleutil.GetProperty(o.disp, name, unwrap(args)...)
	if err != nil {
		return nil, memberError(name, err)
	}
	return variantValue(name, v)
}

func (o *oleObject) GetObject(name string, args ...any) (Object, error) {
	v, err := oleutil.GetProperty(o.disp, name, unwrap(args)...)
	if err != nil {
		return nil, memberError(name, err)
	}
	return variantObject(name, v)
}

func (o *oleObject) Put(name string, args ...any) error {
	v, err := oleutil.PutProperty(o.disp, name, unwrap(args)...)
	if err != nil {
		return memberError(name, err)
	}
	v.Clear()
	return nil
}

func (o *oleObject) Call(name string, args ...any) (any, error) {
	v, err := oleutil.CallMethod(o.disp, name, unwrap(args)...)
	if err != nil {
		return nil, memberError(name, err)
	}
	return variantValue(name, v)
}

func (o *oleObject) CallObject(name string, args ...any) (Object, error) {
	v, err := oleutil.CallMethod(o.disp, name, unwrap(args)...)
	if err != nil {
		return nil, memberError(name, err)
	}
	return variantObject(name, v)
}

func (o *oleObject) Release() {
	if o.disp != nil {
		o.disp.Release()
		o.disp = nil
	}
}

func unwrap(args []any) []any {
	out := make([]any, len(args))
	for i, arg := range args {
		if obj, ok := arg.(*oleObject); ok {
			out[i] = obj.disp
			continue
		}
		out[i] = arg
	}
	return out
}

func variantValue(name string, v *ole.VARIANT) (any, error) {
	defer v.Clear()
	switch {
	case v.VT == ole.VT_DISPATCH:
		return nil, memberError(name, errors.New("result is an automation object"))
	case v.VT&ole.VT_ARRAY != 0:
		if arr := v.ToArray(); arr != nil {
			return arr.ToValueArray(), nil
		}
		return nil, nil
	}
	return v.Value(), nil
}

func variantObject(name string, v *ole.VARIANT) (Object, error) {
	if v.VT != ole.VT_DISPATCH {
		v.Clear()
		return nil, memberError(name, ErrNotObject)
	}
	disp := v.ToIDispatch()
	if disp == nil {
		return nil, memberError(name, ErrNotObject)
	}
	return Wrap(disp), nil
}
