package port

import (
	"context"

	"github.com/elaa0505/AzuraCast/internal/domain"
)

type ConfigRegenerator interface {
	Regenerate(ctx context.Context, tenant *domain.Tenant) error
}
