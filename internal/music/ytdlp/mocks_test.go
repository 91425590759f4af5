package ytdlp

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type RunnerMock struct {
	mock.Mock
}

func (m *RunnerMock) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	callArgs := m.Called(ctx, name, args)
	if v := callArgs.Get(0); v != nil {
		return v.([]byte), callArgs.Error(1)
	}
	return nil, callArgs.Error(1)
}
