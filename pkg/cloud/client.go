package cloud

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gophercloud/gophercloud/v2"
	"github.com/gophercloud/gophercloud/v2/openstack"
	"github.com/gophercloud/gophercloud/v2/openstack/compute/v2/servers"

	"github.com/stratoworks/vigil/pkg/log"
	"github.com/stratoworks/vigil/pkg/metrics"
	"github.com/stratoworks/vigil/pkg/types"
)

// ErrServerNotFound is returned when an identifier resolves to no server,
// neither as an ID nor as a name.
var ErrServerNotFound = errors.New("server not found")

// requestTimeout bounds every compute API call made through the client
const requestTimeout = 30 * time.Second

// Client wraps the OpenStack compute API for vigil's needs
type Client struct {
	compute *gophercloud.ServiceClient
}

// New authenticates against the cloud named by the standard OS_* environment
// variables and returns a compute client. Authentication happens once here;
// the SDK re-authenticates on token expiry for the lifetime of the process.
func New(ctx context.Context) (*Client, error) {
	opts, err := openstack.AuthOptionsFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to read auth options from environment: %w", err)
	}
	opts.AllowReauth = true

	provider, err := openstack.NewClient(opts.IdentityEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider client: %w", err)
	}
	provider.HTTPClient.Timeout = requestTimeout

	if err := openstack.Authenticate(ctx, provider, opts); err != nil {
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	compute, err := openstack.NewComputeV2(provider, gophercloud.EndpointOpts{
		Region: os.Getenv("OS_REGION_NAME"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create compute client: %w", err)
	}

	log.Logger.Debug().
		Str("component", "cloud").
		Str("endpoint", compute.Endpoint).
		Msg("authenticated against compute API")

	metrics.RegisterComponent("cloud", true, "authenticated")

	return &Client{compute: compute}, nil
}

// ListServers returns all servers visible to the authenticated project
func (c *Client) ListServers(ctx context.Context) ([]types.Server, error) {
	pages, err := servers.List(c.compute, servers.ListOpts{}).AllPages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list servers: %w", err)
	}

	list, err := servers.ExtractServers(pages)
	if err != nil {
		return nil, fmt.Errorf("failed to extract servers: %w", err)
	}

	out := make([]types.Server, 0, len(list))
	for i := range list {
		out = append(out, convertServer(&list[i]))
	}
	return out, nil
}

// GetServer resolves identifier first as a server ID, then as a name.
// Name resolution prefers an exact match and falls back to the first
// substring match, mirroring how operators abbreviate server names.
func (c *Client) GetServer(ctx context.Context, identifier string) (*types.Server, error) {
	srv, err := servers.Get(ctx, c.compute, identifier).Extract()
	if err == nil {
		converted := convertServer(srv)
		return &converted, nil
	}

	// Nova answers 404 for any identifier that is not a known server ID,
	// including plain names. Whatever the failure, try the name path;
	// a real transport problem will fail the listing too.
	log.Logger.Debug().
		Str("component", "cloud").
		Str("server", identifier).
		Err(err).
		Msg("direct lookup failed, resolving by name")

	return c.findByName(ctx, identifier)
}

// Unshelve asks the compute service to restore a shelved server. Single
// attempt; the caller owns the retry policy.
func (c *Client) Unshelve(ctx context.Context, id string) error {
	if err := servers.Unshelve(ctx, c.compute, id, servers.UnshelveOpts{}).ExtractErr(); err != nil {
		return fmt.Errorf("failed to unshelve server %s: %w", id, err)
	}
	return nil
}

func (c *Client) findByName(ctx context.Context, name string) (*types.Server, error) {
	list, err := c.ListServers(ctx)
	if err != nil {
		return nil, err
	}

	// Exact name match wins
	for i := range list {
		if list[i].Name == name {
			return &list[i], nil
		}
	}

	// Then the first substring match
	for i := range list {
		if strings.Contains(list[i].Name, name) {
			return &list[i], nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrServerNotFound, name)
}

// convertServer maps a Nova server onto vigil's domain type
func convertServer(src *servers.Server) types.Server {
	return types.Server{
		ID:         src.ID,
		Name:       src.Name,
		Status:     types.ServerStatus(src.Status),
		PowerState: types.PowerState(src.PowerState),
		Addresses:  convertAddresses(src.Addresses),
		Created:    src.Created,
		Updated:    src.Updated,
	}
}

// convertAddresses flattens Nova's loosely typed address map. Entries
// without an "addr" field are skipped.
func convertAddresses(raw map[string]any) map[string][]types.Address {
	if len(raw) == 0 {
		return nil
	}

	out := make(map[string][]types.Address, len(raw))
	for network, entries := range raw {
		list, ok := entries.([]any)
		if !ok {
			continue
		}

		addrs := make([]types.Address, 0, len(list))
		for _, entry := range list {
			m, ok := entry.(map[string]any)
			if !ok {
				continue
			}

			var addr types.Address
			if ip, ok := m["addr"].(string); ok {
				addr.IP = ip
			}
			if kind, ok := m["OS-EXT-IPS:type"].(string); ok {
				addr.Type = kind
			}
			if addr.IP != "" {
				addrs = append(addrs, addr)
			}
		}
		out[network] = addrs
	}
	return out
}
