package registry

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate checks that the fields the registry guarantees are present and
// well formed.
func (s *Server) Validate() error {
	switch {
	case s.Name == "":
		return errors.New("server: name is required")
	case s.Description == "":
		return fmt.Errorf("server %s: description is required", s.Name)
	case s.Version == "":
		return fmt.Errorf("server %s: version is required", s.Name)
	}
	if err := s.Repository.Validate(); err != nil {
		return fmt.Errorf("server %s: %w", s.Name, err)
	}
	if err := s.Meta.Official.Validate(); err != nil {
		return fmt.Errorf("server %s: %w", s.Name, err)
	}
	for i := range s.Remotes {
		if err := s.Remotes[i].Validate(); err != nil {
			return fmt.Errorf("server %s: remotes[%d]: %w", s.Name, i, err)
		}
	}
	for i := range s.Packages {
		if err := s.Packages[i].Validate(); err != nil {
			return fmt.Errorf("server %s: packages[%d]: %w", s.Name, i, err)
		}
	}
	return nil
}

// Validate checks the repository url and source.
func (r *Repository) Validate() error {
	if r.URL == "" {
		return errors.New("repository: url is required")
	}
	if r.Source == "" {
		return errors.New("repository: source is required")
	}
	return nil
}

// Validate checks that the remote has a type and an absolute http(s) URL.
func (r *Remote) Validate() error {
	if r.Type == "" {
		return errors.New("type is required")
	}
	return validateHTTPURL(r.URL)
}

// Validate checks the package's required fields.
func (p *Package) Validate() error {
	switch {
	case p.RegistryType == "":
		return errors.New("registry_type is required")
	case p.Identifier == "":
		return errors.New("identifier is required")
	case p.Version == "":
		return errors.New("version is required")
	}
	if p.RegistryBaseURL != "" {
		if err := validateHTTPURL(p.RegistryBaseURL); err != nil {
			return fmt.Errorf("registry_base_url: %w", err)
		}
	}
	if p.Transport != nil && p.Transport.Type == "" {
		return errors.New("transport: type is required")
	}
	for i, ev := range p.EnvironmentVariables {
		if ev.Name == "" {
			return fmt.Errorf("environment_variables[%d]: name is required", i)
		}
	}
	for i, arg := range p.PackageArguments {
		if arg.Type == "" {
			return fmt.Errorf("package_arguments[%d]: type is required", i)
		}
	}
	return nil
}

// Validate checks the registry metadata.
func (m *OfficialMeta) Validate() error {
	switch {
	case m.ID == "":
		return errors.New("_meta: official id is required")
	case m.PublishedAt.IsZero():
		return errors.New("_meta: published_at is required")
	case m.UpdatedAt.IsZero():
		return errors.New("_meta: updated_at is required")
	}
	return nil
}

// Validate validates every server in the response.
func (r *SearchResponse) Validate() error {
	if r.Servers == nil {
		return errors.New("servers is required")
	}
	for i := range r.Servers {
		if err := r.Servers[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

func validateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("url %q must be an absolute http(s) URL", raw)
	}
	return nil
}
