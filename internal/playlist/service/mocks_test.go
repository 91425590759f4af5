package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/lightbolt/backend/internal/playlist/models"
)

type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) List(ctx context.Context) ([]models.Playlist, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]models.Playlist), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RepoMock) Get(ctx context.Context, id string) (*models.Playlist, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.Playlist), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RepoMock) Create(ctx context.Context, p *models.Playlist) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *RepoMock) Update(ctx context.Context, p *models.Playlist) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *RepoMock) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
