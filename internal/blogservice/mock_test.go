package blogservice

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/sushihentaime/blogapp/internal/common"
)

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, msg []byte, key common.BindingKey, exchange common.Exchange) error {
	args := m.Called(ctx, msg, key, exchange)
	return args.Error(0)
}
