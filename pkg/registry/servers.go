package registry

import (
	"context"
	"net/url"
	"strings"

	"github.com/matzehuels/mcp-registry/pkg/cache"
	apperrors "github.com/matzehuels/mcp-registry/pkg/errors"
)

// Cache key kinds reported to observability hooks.
const (
	kindSearch       = "search"
	kindServer       = "server"
	kindServerByName = "server_by_name"
)

// SearchServers returns the active servers whose names match name.
//
// The registry is queried with GET /v0/servers?search=<name>. Servers with any
// status other than "active" are dropped. The result is cached under
// search:<lower(trim(name))>.
func (c *Client) SearchServers(ctx context.Context, name string) (*SearchResponse, error) {
	if err := apperrors.ValidateSearchTerm(name); err != nil {
		return nil, err
	}
	ctx, logger := c.begin(ctx)
	term := strings.TrimSpace(name)

	r, err := c.cached(ctx, cache.SearchKey(name), kindSearch, func(ctx context.Context) (result, error) {
		logger.Debug("searching servers", "search", term)

		var resp SearchResponse
		if err := c.getJSON(ctx, "/v0/servers", url.Values{"search": {term}}, &resp); err != nil {
			return result{}, err
		}
		if err := resp.Validate(); err != nil {
			return result{}, invalidResponse("search", err)
		}

		active := make([]Server, 0, len(resp.Servers))
		for _, s := range resp.Servers {
			if s.Active() {
				active = append(active, s)
			} else {
				logger.Debug("filtering inactive server", "name", s.Name, "status", s.Status)
			}
		}
		return result{Search: &SearchResponse{Servers: active}}, nil
	})
	if err != nil {
		return nil, err
	}
	if r.Search == nil {
		return &SearchResponse{Servers: []Server{}}, nil
	}
	return r.Search, nil
}

// GetServerByID returns the server with the given registry id.
//
// It returns (nil, nil) when the server exists but is not active; that
// answer is cached like any other. A missing server is an API_ERROR with
// status 404 and is not cached.
func (c *Client) GetServerByID(ctx context.Context, id string) (*Server, error) {
	if err := apperrors.ValidateServerID(id); err != nil {
		return nil, err
	}
	ctx, logger := c.begin(ctx)

	r, err := c.cached(ctx, cache.ServerKey(id), kindServer, func(ctx context.Context) (result, error) {
		logger.Debug("getting server", "id", id)

		var s Server
		if err := c.getJSON(ctx, "/v0/servers/"+url.PathEscape(id), nil, &s); err != nil {
			return result{}, err
		}
		if err := s.Validate(); err != nil {
			return result{}, invalidResponse("server "+id, err)
		}
		if !s.Active() {
			logger.Debug("filtering inactive server", "id", id, "status", s.Status)
			return result{}, nil
		}
		return result{Server: &s}, nil
	})
	if err != nil {
		return nil, err
	}
	return r.Server, nil
}

// GetServerByName resolves name to a single active server.
//
// It searches for name, picks the first exact name match or else the first
// case-insensitive substring match, and fetches that server by id. It returns
// (nil, nil) when nothing matches; no detail request is made in that case.
// The answer is cached under server_by_name:<lower(trim(name))>, and the
// underlying search and id lookups populate their own keys.
func (c *Client) GetServerByName(ctx context.Context, name string) (*Server, error) {
	if err := apperrors.ValidateServerName(name); err != nil {
		return nil, err
	}
	ctx, logger := c.begin(ctx)

	r, err := c.cached(ctx, cache.ServerByNameKey(name), kindServerByName, func(ctx context.Context) (result, error) {
		logger.Debug("getting server by name", "name", name)

		resp, err := c.SearchServers(ctx, name)
		if err != nil {
			return result{}, err
		}
		match := FindByName(resp.Servers, name)
		if match == nil {
			return result{}, nil
		}
		s, err := c.GetServerByID(ctx, match.ID())
		if err != nil {
			return result{}, err
		}
		return result{Server: s}, nil
	})
	if err != nil {
		return nil, err
	}
	return r.Server, nil
}

// FindByName returns the first server named exactly name, or failing that the
// first server whose name contains name case-insensitively. Surrounding
// whitespace in name is ignored. It returns nil when neither exists.
func FindByName(servers []Server, name string) *Server {
	name = strings.TrimSpace(name)
	for i := range servers {
		if servers[i].Name == name {
			return &servers[i]
		}
	}
	lower := strings.ToLower(name)
	for i := range servers {
		if strings.Contains(strings.ToLower(servers[i].Name), lower) {
			return &servers[i]
		}
	}
	return nil
}
