package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hypewear-studio/models"
)

// fakeStorage records uploads in memory; names matching failOn fail the upload
type fakeStorage struct {
	mu       sync.Mutex
	uploaded map[string][]byte
	failOn   string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{uploaded: make(map[string][]byte)}
}

func (f *fakeStorage) Upload(ctx context.Context, data []byte, suggestedName string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOn != "" && strings.Contains(suggestedName, f.failOn) {
		return "", &models.UploadError{Name: suggestedName, Err: fmt.Errorf("storage unavailable")}
	}
	f.uploaded[suggestedName] = data
	return "https://storage.example.com/" + suggestedName, nil
}

func dataURI(mime string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data))
}

func testSnapshot() *models.CartCustomDesign {
	return &models.CartCustomDesign{
		Design: models.DesignState{
			BaseColor: "#1A1A1A",
			Size:      "M",
			Notes:     "front print only",
			Elements: []models.DesignElement{
				{ID: "img-1", Type: models.KindImage, Content: dataURI("image/png", []byte("png-bytes-1")), X: 30, Y: 30, Scale: 1, Side: models.SideFront},
				{ID: "txt-1", Type: models.KindText, Content: "STAY LOUD", X: 50, Y: 70, Scale: 1, Side: models.SideFront, FontFamily: "bold", Color: "#FFDD00"},
				{ID: "img-2", Type: models.KindImage, Content: dataURI("image/jpeg", []byte("jpeg-bytes-2")), X: 60, Y: 40, Scale: 1, Side: models.SideBack},
			},
		},
		FrontPreview: dataURI("image/png", []byte("front-preview")),
		BackPreview:  dataURI("image/png", []byte("back-preview")),
	}
}

func TestFinalizeDesignUploadsAllInlineAssets(t *testing.T) {
	storage := newFakeStorage()
	svc := NewFinalizeService(storage)

	snapshot := testSnapshot()
	finalized, err := svc.FinalizeDesign(context.Background(), snapshot)
	require.NoError(t, err)

	// Two image layers + two previews
	assert.Len(t, storage.uploaded, 4)
	assert.Equal(t, []byte("front-preview"), storage.uploaded["design-front.png"])
	assert.Equal(t, []byte("back-preview"), storage.uploaded["design-back.png"])
	assert.Equal(t, []byte("png-bytes-1"), storage.uploaded["design-layer-img-1.png"])
	assert.Equal(t, []byte("jpeg-bytes-2"), storage.uploaded["design-layer-img-2.jpg"])

	assert.Equal(t, "https://storage.example.com/design-front.png", finalized.FrontImageURL)
	assert.Equal(t, "https://storage.example.com/design-back.png", finalized.BackImageURL)
	assert.Equal(t, "#1A1A1A", finalized.BaseColor)
	assert.Equal(t, "M", finalized.Size)

	// Image contents are hosted URLs now; the text element is untouched
	require.Len(t, finalized.Elements, 3)
	assert.Equal(t, "https://storage.example.com/design-layer-img-1.png", finalized.Elements[0].Content)
	assert.Equal(t, "STAY LOUD", finalized.Elements[1].Content)
	assert.Equal(t, "https://storage.example.com/design-layer-img-2.jpg", finalized.Elements[2].Content)
}

func TestFinalizeDesignDoesNotMutateSnapshot(t *testing.T) {
	svc := NewFinalizeService(newFakeStorage())

	snapshot := testSnapshot()
	_, err := svc.FinalizeDesign(context.Background(), snapshot)
	require.NoError(t, err)

	// The cart line snapshot keeps its inline data; only the returned record
	// carries hosted URLs.
	assert.True(t, snapshot.Design.Elements[0].IsInline())
	assert.True(t, snapshot.Design.Elements[2].IsInline())
}

func TestFinalizeDesignAllOrNothing(t *testing.T) {
	storage := newFakeStorage()
	storage.failOn = "img-2"
	svc := NewFinalizeService(storage)

	snapshot := testSnapshot()
	finalized, err := svc.FinalizeDesign(context.Background(), snapshot)

	require.Error(t, err)
	assert.Nil(t, finalized)
	var upErr *models.UploadError
	assert.ErrorAs(t, err, &upErr)

	// Snapshot preserved for retry
	assert.True(t, snapshot.Design.Elements[0].IsInline())
	assert.True(t, snapshot.Design.Elements[2].IsInline())
}

func TestFinalizeDesignSkipsHostedElements(t *testing.T) {
	storage := newFakeStorage()
	svc := NewFinalizeService(storage)

	snapshot := testSnapshot()
	snapshot.Design.Elements[0].Content = "https://storage.example.com/already-hosted.png"
	snapshot.BackPreview = ""

	finalized, err := svc.FinalizeDesign(context.Background(), snapshot)
	require.NoError(t, err)

	// Only the remaining inline layer and the front preview upload
	assert.Len(t, storage.uploaded, 2)
	assert.Equal(t, "https://storage.example.com/already-hosted.png", finalized.Elements[0].Content)
	assert.Empty(t, finalized.BackImageURL)
}

func TestFinalizeDesignRepairsPersistedCoordinates(t *testing.T) {
	svc := NewFinalizeService(newFakeStorage())

	snapshot := testSnapshot()
	snapshot.Design.Elements[1].X = 150

	finalized, err := svc.FinalizeDesign(context.Background(), snapshot)
	require.NoError(t, err)
	assert.Equal(t, 50.0, finalized.Elements[1].X)
}
