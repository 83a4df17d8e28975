package memory

import (
	"testing"

	"go.uber.org/zap"

	"sketchddd/application/ports"
	"sketchddd/infrastructure/persistence/codec"
	"sketchddd/infrastructure/persistence/repotest"
)

func TestModelRepositoryContract(t *testing.T) {
	repotest.RunContract(t, func(t *testing.T) ports.ModelRepository {
		return NewModelRepository(codec.NewCodec(), zap.NewNop())
	})
}
