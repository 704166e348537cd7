package registrytest

import (
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/mcp-registry/pkg/registry"
)

var fixtureTime = time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

// Fixture returns a valid server entry with the given name and status and a
// fresh id.
func Fixture(name, status string) registry.Server {
	return registry.Server{
		Schema:      "https://static.modelcontextprotocol.io/schemas/2025-07-09/server.schema.json",
		Name:        name,
		Description: "Test server " + name,
		Status:      status,
		Version:     "1.0.0",
		Repository: registry.Repository{
			URL:    "https://github.com/example/" + uuid.NewString()[:8],
			Source: "github",
		},
		Remotes: []registry.Remote{
			{Type: "streamable-http", URL: "https://mcp.example.com/" + name},
		},
		Packages: []registry.Package{{
			RegistryType: "npm",
			Identifier:   "@example/server",
			Version:      "1.0.0",
			Transport:    &registry.Transport{Type: "stdio"},
			EnvironmentVariables: []registry.EnvironmentVariable{
				{Name: "API_KEY", Description: "API key", IsRequired: true, IsSecret: true},
			},
		}},
		Meta: registry.ServerMeta{Official: registry.OfficialMeta{
			ID:          uuid.NewString(),
			PublishedAt: fixtureTime,
			UpdatedAt:   fixtureTime,
			IsLatest:    true,
		}},
	}
}
