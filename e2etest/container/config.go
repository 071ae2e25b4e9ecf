package container

import "github.com/fluidstake/liquid-staking-pool/pkg"

// ImageConfig contains all images and their respective tags
// needed for running e2e tests.
type ImageConfig struct {
	MongoRepository  string
	MongoVersion     string
	RabbitRepository string
	RabbitVersion    string
}

const (
	dockerMongoRepository  = "mongo"
	dockerMongoVersionTag  = "7.0.5"
	dockerRabbitRepository = "rabbitmq"
	dockerRabbitVersionTag = "3.13-alpine"
)

// NewImageConfig returns ImageConfig needed for running e2e test.
// E2E_MONGO_VERSION and E2E_RABBITMQ_VERSION override the image tags.
func NewImageConfig() ImageConfig {
	return ImageConfig{
		MongoRepository:  dockerMongoRepository,
		MongoVersion:     pkg.Getenv("E2E_MONGO_VERSION", dockerMongoVersionTag),
		RabbitRepository: dockerRabbitRepository,
		RabbitVersion:    pkg.Getenv("E2E_RABBITMQ_VERSION", dockerRabbitVersionTag),
	}
}
