package com_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/negokaz/office-server/internal/com"
	"github.com/negokaz/office-server/internal/com/comtest"
)

func TestScopeReleasesInReverseOrder(t *testing.T) {
	app := comtest.New("app")

	s := com.NewScope()
	content, err := s.Path(app, "ActiveDocument", "Content")
	require.NoError(t, err)
	font, err := s.GetObject(content, "Font")
	require.NoError(t, err)
	require.NotNil(t, font)

	s.Release()

	assert.Equal(t, 1, app.Child("ActiveDocument").Released())
	assert.Equal(t, 1, app.Path("ActiveDocument", "Content").Released())
	assert.Equal(t, 1, app.Path("ActiveDocument", "Content", "Font").Released())
	assert.Equal(t, 0, app.Released(), "the root is not owned by the scope")
}

func TestScopeStopsAtFailingMember(t *testing.T) {
	app := comtest.New("app")
	app.Fails("ActiveDocument", assert.AnError)

	s := com.NewScope()
	defer s.Release()
	_, err := s.Path(app, "ActiveDocument", "Content")

	var comErr *com.Error
	require.ErrorAs(t, err, &comErr)
	assert.Equal(t, "ActiveDocument", comErr.Member)
	assert.NotContains(t, app.Log(), "get app.ActiveDocument.Content")
}

func TestValueHelpers(t *testing.T) {
	app := comtest.New("app")
	app.Set("Version", "16.0").Set("Count", int32(3)).Set("Visible", int32(-1)).Set("Width", float32(12.5))

	version, err := com.String(app, "Version")
	require.NoError(t, err)
	assert.Equal(t, "16.0", version)

	count, err := com.Int(app, "Count")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	visible, err := com.Bool(app, "Visible")
	require.NoError(t, err)
	assert.True(t, visible)

	width, err := com.Float(app, "Width")
	require.NoError(t, err)
	assert.InDelta(t, 12.5, width, 1e-9)

	_, err = com.Int(app, "Missing")
	assert.Error(t, err)
}
