package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hypewear-studio/canvas"
	"hypewear-studio/models"
)

func TestStudioServiceSessionLifecycle(t *testing.T) {
	svc := NewStudioService()

	id := svc.Open()
	require.NotEmpty(t, id)

	err := svc.With(id, func(s *canvas.Session) {
		s.AddText()
	})
	require.NoError(t, err)

	snap, err := svc.Snapshot(id)
	require.NoError(t, err)
	assert.Len(t, snap.Elements, 1)

	svc.Close(id)
	err = svc.With(id, func(s *canvas.Session) {})
	var nfErr *models.NotFoundError
	assert.ErrorAs(t, err, &nfErr)
}

func TestStudioServiceSessionsAreIndependent(t *testing.T) {
	svc := NewStudioService()

	a := svc.Open()
	b := svc.Open()
	require.NotEqual(t, a, b)

	require.NoError(t, svc.With(a, func(s *canvas.Session) { s.AddText() }))

	snapB, err := svc.Snapshot(b)
	require.NoError(t, err)
	assert.Empty(t, snapB.Elements)
}

func TestStudioServiceUnknownSession(t *testing.T) {
	svc := NewStudioService()

	_, err := svc.Snapshot("ghost")
	var nfErr *models.NotFoundError
	assert.ErrorAs(t, err, &nfErr)
}
