package registry

import "time"

// StatusActive is the only server status returned by the client.
const StatusActive = "active"

// OfficialMetaKey is the _meta key under which the registry publishes its
// own metadata for a server.
const OfficialMetaKey = "io.modelcontextprotocol.registry/official"

// Server is an MCP server entry as published by the registry.
//
// Fields marked required are checked by [Server.Validate]; optional slices
// and strings are left empty when the registry omits them.
type Server struct {
	Schema      string     `json:"$schema,omitempty"`
	Name        string     `json:"name"`        // required, e.g. "io.github.owner/server"
	Description string     `json:"description"` // required
	Status      string     `json:"status,omitempty"`
	Repository  Repository `json:"repository"` // required
	Version     string     `json:"version"`    // required
	Remotes     []Remote   `json:"remotes,omitempty"`
	Packages    []Package  `json:"packages,omitempty"`
	Meta        ServerMeta `json:"_meta"` // required
}

// ID returns the registry-assigned server id.
func (s *Server) ID() string { return s.Meta.Official.ID }

// Active reports whether the server status is "active".
func (s *Server) Active() bool { return s.Status == StatusActive }

// Repository points at the server's source code.
type Repository struct {
	URL       string `json:"url"`    // required
	Source    string `json:"source"` // required, e.g. "github"
	ID        string `json:"id,omitempty"`
	Subfolder string `json:"subfolder,omitempty"`
}

// Remote is a hosted endpoint for the server.
type Remote struct {
	Type string `json:"type"` // e.g. "streamable-http", "sse"
	URL  string `json:"url"`  // absolute http(s) URL
}

// Package describes how to install and run the server locally.
type Package struct {
	RegistryType         string                `json:"registry_type"` // e.g. "npm", "pypi", "oci"
	Identifier           string                `json:"identifier"`
	Version              string                `json:"version"`
	RegistryBaseURL      string                `json:"registry_base_url,omitempty"`
	RuntimeHint          string                `json:"runtime_hint,omitempty"`
	FileSHA256           string                `json:"file_sha256,omitempty"`
	Transport            *Transport            `json:"transport,omitempty"`
	EnvironmentVariables []EnvironmentVariable `json:"environment_variables,omitempty"`
	PackageArguments     []PackageArgument     `json:"package_arguments,omitempty"`
}

// Transport is the package's MCP transport. URL may be a template.
type Transport struct {
	Type string `json:"type"`
	URL  string `json:"url,omitempty"`
}

// EnvironmentVariable is a variable the package reads at startup.
type EnvironmentVariable struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsRequired  bool   `json:"is_required,omitempty"`
	IsSecret    bool   `json:"is_secret,omitempty"`
	Format      string `json:"format,omitempty"`
}

// PackageArgument is a command-line argument accepted by the package.
// Default holds a string, number or bool.
type PackageArgument struct {
	Name        string `json:"name,omitempty"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Format      string `json:"format,omitempty"`
	IsRequired  bool   `json:"is_required,omitempty"`
	Default     any    `json:"default,omitempty"`
	Value       string `json:"value,omitempty"`
}

// ServerMeta is the server's _meta object.
type ServerMeta struct {
	Official OfficialMeta `json:"io.modelcontextprotocol.registry/official"`
}

// OfficialMeta is the metadata the registry attaches to every entry.
type OfficialMeta struct {
	ID          string    `json:"id"`
	PublishedAt time.Time `json:"published_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	IsLatest    bool      `json:"is_latest"`
}

// SearchResponse is the body of GET /v0/servers.
type SearchResponse struct {
	Servers []Server `json:"servers"`
}

// RegistryError is the JSON error body returned by the registry.
type RegistryError struct {
	Error   string         `json:"error"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}
