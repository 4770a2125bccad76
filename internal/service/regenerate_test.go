package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elaa0505/AzuraCast/internal/domain"
	"github.com/elaa0505/AzuraCast/internal/port/mocks"
)

func TestQueuedRegenerator(t *testing.T) {
	ctx := context.Background()
	tenant := &domain.Tenant{ID: 4, ShortName: "four"}

	t.Run("enqueues a regenerate job", func(t *testing.T) {
		queue := mocks.NewJobQueueMock(t)
		queue.EXPECT().Enqueue(ctx, int64(4), domain.JobTypeRegenerate).
			Return(&domain.Job{ID: 1, TenantID: 4, Type: domain.JobTypeRegenerate}, nil).Once()

		require.NoError(t, NewQueuedRegenerator(queue).Regenerate(ctx, tenant))
	})

	t.Run("queue failure", func(t *testing.T) {
		queue := mocks.NewJobQueueMock(t)
		queue.EXPECT().Enqueue(ctx, int64(4), domain.JobTypeRegenerate).
			Return(nil, errors.New("database is locked")).Once()

		err := NewQueuedRegenerator(queue).Regenerate(ctx, tenant)
		assert.ErrorContains(t, err, "database is locked")
	})
}
