package office

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"go.alis.build/alog"

	"github.com/negokaz/office-server/internal/com"
)

// ProgIDs of the supported applications.
const (
	Word       = "Word.Application"
	Excel      = "Excel.Application"
	PowerPoint = "PowerPoint.Application"
)

// Options control how an application is brought up.
type Options struct {
	Visible       bool
	DisplayAlerts bool
	CallTimeout   time.Duration
}

// LaunchInfo describes the application a session is connected to.
type LaunchInfo struct {
	Application string `json:"application"`
	Version     string `json:"version"`
	Attached    bool   `json:"attached"`
}

// Session holds the automation object of one Office application. The
// object is only touched on the apartment thread.
type Session struct {
	progID    string
	apartment *com.Apartment
	connector com.Connector
	options   Options

	app      com.Object
	launched atomic.Bool
}

func NewSession(progID string, apartment *com.Apartment, connector com.Connector, options Options) *Session {
	return &Session{
		progID:    progID,
		apartment: apartment,
		connector: connector,
		options:   options,
	}
}

func (s *Session) ProgID() string {
	return s.progID
}

// Launched reports whether the session holds an application object.
func (s *Session) Launched() bool {
	return s.launched.Load()
}

// Launch connects to the application, reusing the current connection when
// it still answers.
func (s *Session) Launch(ctx context.Context) (*LaunchInfo, error) {
	info := &LaunchInfo{Application: s.progID}
	err := s.run(ctx, func() error {
		if s.app != nil {
			if version, err := com.String(s.app, "Version"); err == nil {
				info.Version = version
				info.Attached = true
				return nil
			}
			alog.Warnf(ctx, "%s connection is stale, reconnecting", s.progID)
			s.drop()
		}

		app, attached, err := s.connector.Connect(s.progID)
		if err != nil {
			return err
		}
		if err := s.configure(app); err != nil {
			app.Release()
			return err
		}
		s.app = app
		s.launched.Store(true)

		info.Attached = attached
		info.Version, _ = com.String(app, "Version")
		return nil
	})
	if err != nil {
		return nil, err
	}
	alog.Infof(ctx, "%s ready (version %s, attached %t)", s.progID, info.Version, info.Attached)
	return info, nil
}

func (s *Session) configure(app com.Object) error {
	var alerts any = s.options.DisplayAlerts
	switch s.progID {
	case PowerPoint:
		// PowerPoint refuses to hide its window and takes MsoTriState.
		if s.options.Visible {
			if err := app.Put("Visible", com.TriState(true)); err != nil {
				return errors.Wrapf(err, "failed to set %s visibility", s.progID)
			}
		}
		return nil
	case Word:
		// WdAlertLevel: wdAlertsNone = 0, wdAlertsAll = -1
		alerts = com.TriState(s.options.DisplayAlerts)
	}
	if err := app.Put("Visible", s.options.Visible); err != nil {
		return errors.Wrapf(err, "failed to set %s visibility", s.progID)
	}
	if err := app.Put("DisplayAlerts", alerts); err != nil {
		return errors.Wrapf(err, "failed to set %s alerts", s.progID)
	}
	return nil
}

// Do runs fn with the application object on the apartment thread.
func (s *Session) Do(ctx context.Context, fn func(app com.Object) error) error {
	return s.run(ctx, func() error {
		if s.app == nil {
			return errors.Wrap(ErrNotLaunched, s.progID)
		}
		err := fn(s.app)
		if com.IsDisconnected(err) {
			alog.Warnf(ctx, "%s disconnected: %v", s.progID, err)
			s.drop()
			return errors.Wrapf(ErrNotLaunched, "%s is no longer running", s.progID)
		}
		return err
	})
}

// Quit closes the application without saving and forgets the connection.
func (s *Session) Quit(ctx context.Context) error {
	return s.run(ctx, func() error {
		if s.app == nil {
			return errors.Wrap(ErrNotLaunched, s.progID)
		}
		_, err := s.app.Call("Quit")
		s.drop()
		if err != nil && !com.IsDisconnected(err) {
			return errors.Wrapf(err, "failed to quit %s", s.progID)
		}
		return nil
	})
}

// Close releases the connection without quitting the application. Used on
// server shutdown so that user documents stay open.
func (s *Session) Close(ctx context.Context) error {
	return s.run(ctx, func() error {
		s.drop()
		return nil
	})
}

func (s *Session) drop() {
	if s.app != nil {
		s.app.Release()
		s.app = nil
	}
	s.launched.Store(false)
}

func (s *Session) run(ctx context.Context, fn func() error) error {
	if s.options.CallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.options.CallTimeout)
		defer cancel()
	}
	return s.apartment.Do(ctx, fn)
}
