/*
Package cloud provides the OpenStack compute client vigil talks to.

The cloud package wraps gophercloud's compute (Nova) client with the three
operations vigil needs: listing servers, resolving one server by ID or name,
and unshelving. It owns authentication, identifier resolution, and the
conversion from Nova's wire types to vigil's domain types.

# Architecture

	┌──────────────────── APPLICATION CODE ──────────────────────┐
	│                                                              │
	│  import "github.com/stratoworks/vigil/pkg/cloud"            │
	│                                                              │
	│  client, err := cloud.New(ctx)                              │
	│  srv, err := client.GetServer(ctx, "sentinel-vm")           │
	│                                                              │
	└──────────────────┬───────────────────────────────────────┘
	                   │
	┌──────────────────▼──── pkg/cloud ──────────────────────────┐
	│                                                              │
	│  ┌──────────────────────────────────────────────┐          │
	│  │           Client Wrapper                      │          │
	│  │  - ID-then-name resolution                    │          │
	│  │  - types.Server conversion                    │          │
	│  │  - ErrServerNotFound sentinel                 │          │
	│  └──────────────────┬───────────────────────────┘          │
	│                     │                                        │
	│  ┌──────────────────▼───────────────────────────┐          │
	│  │        gophercloud v2 (Keystone + Nova)       │          │
	│  │  - OS_* environment authentication            │          │
	│  │  - Token re-auth for long-running processes   │          │
	│  │  - 30s HTTP timeout on every call             │          │
	│  └──────────────────┬───────────────────────────┘          │
	└─────────────────────┼────────────────────────────────────┘
	                      │ HTTPS
	                      ▼
	            OpenStack Compute API

# Authentication

New reads the standard OS_* environment variables (OS_AUTH_URL, OS_USERNAME,
OS_PASSWORD, OS_PROJECT_NAME, OS_REGION_NAME, ...) via
openstack.AuthOptionsFromEnv, authenticates once, and enables re-auth so an
expiring token never kills a long-running monitor. The client is constructed
once at startup and shared by reference; it is never mutated after New.

# Identifier Resolution

GetServer accepts either a server ID or a name:

 1. Try GET /servers/{identifier} directly. Nova answers 404 for anything
    that is not a known ID, including plain names.
 2. On any direct-lookup failure, list all servers and match by name:
    exact match first, then the first substring match.
 3. Nothing matched: return ErrServerNotFound (check with errors.Is).

Substring matching mirrors how operators abbreviate names ("sentinel" for
"sentinel-vm-prod-1"); an exact match always beats a substring match.

# Usage

	client, err := cloud.New(ctx)
	if err != nil {
		return err
	}

	srv, err := client.GetServer(ctx, cfg.ServerIdentifier)
	if errors.Is(err, cloud.ErrServerNotFound) {
		// identifier resolves to nothing; check configuration
	}

	if srv.Status == types.StatusShelvedOffloaded {
		if err := client.Unshelve(ctx, srv.ID); err != nil {
			// compute refused; the next cycle retries
		}
	}

# Error Semantics

Every error is wrapped with the failing operation and server identifier.
Unshelve makes a single attempt: the reconciliation loop's next cycle is
the retry policy, so the client never retries internally.

# Integration Points

This package integrates with:

  - pkg/monitor: GetServer + Unshelve drive the reconciliation decision
  - pkg/types: all responses convert to types.Server before leaving here
  - cmd/vigil: server list/info/unshelve commands call the same three ops

# See Also

  - gophercloud: https://github.com/gophercloud/gophercloud
  - pkg/types - Domain types this package produces
*/
package cloud
