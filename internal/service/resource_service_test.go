package service

import (
	"errors"
	"testing"

	"learnspace_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCategoryStore struct {
	categories []model.ResourceCategory
	err        error
}

func (f *fakeCategoryStore) FindAll() ([]model.ResourceCategory, error) {
	return f.categories, f.err
}

func TestGetCategoriesFallsBackOnError(t *testing.T) {
	store := &fakeCategoryStore{err: errors.New("connection refused")}
	s := NewResourceService(nil, store, nil, zap.NewNop())

	categories := s.GetCategories()

	require.Len(t, categories, 8)
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}
	assert.Equal(t, []string{
		"Documentos", "Videos", "Audio", "Imágenes",
		"Enlaces", "Ejercicios", "Plantillas", "Código",
	}, names)
}

func TestGetCategoriesFallsBackOnEmptyTable(t *testing.T) {
	s := NewResourceService(nil, &fakeCategoryStore{}, nil, zap.NewNop())

	categories := s.GetCategories()

	require.Len(t, categories, 8)
	assert.Equal(t, "documents", categories[0].ID)
}

func TestGetCategoriesPrefersStoredRows(t *testing.T) {
	store := &fakeCategoryStore{categories: []model.ResourceCategory{
		{ID: "custom", Name: "Custom", Color: "#000000", Icon: "star"},
	}}
	s := NewResourceService(nil, store, nil, zap.NewNop())

	categories := s.GetCategories()

	require.Len(t, categories, 1)
	assert.Equal(t, "custom", categories[0].ID)
}

func TestResourceDetailsRoundTrip(t *testing.T) {
	link := model.LessonResource{ResourceType: model.ResourceLink}
	link.ApplyDetails(model.ResourceDetails{Link: &model.LinkDetails{URL: "https://example.com"}})

	assert.Equal(t, "https://example.com", link.FileURL)
	assert.Empty(t, link.FileName)
	require.NotNil(t, link.Details().Link)
	assert.Nil(t, link.Details().File)

	file := model.LessonResource{ResourceType: model.ResourceDocument}
	file.ApplyDetails(model.ResourceDetails{File: &model.FileDetails{
		URL: "https://cdn/doc.pdf", Name: "doc.pdf", Size: 2048, Type: "application/pdf",
	}})

	details := file.Details()
	require.NotNil(t, details.File)
	assert.Nil(t, details.Link)
	assert.Equal(t, int64(2048), details.File.Size)
}

// Changing a file resource into a link must clear the stale file fields.
func TestApplyDetailsClearsFileFieldsForLinks(t *testing.T) {
	r := model.LessonResource{
		ResourceType: model.ResourceLink,
		FileName:     "old.pdf",
		FileSize:     1024,
		FileType:     "application/pdf",
	}
	r.ApplyDetails(model.ResourceDetails{Link: &model.LinkDetails{URL: "https://example.com"}})

	assert.Equal(t, "https://example.com", r.FileURL)
	assert.Empty(t, r.FileName)
	assert.Zero(t, r.FileSize)
	assert.Empty(t, r.FileType)
}
