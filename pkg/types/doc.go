/*
Package types defines the core data structures used throughout vigil.

This package contains the fundamental types that represent vigil's domain model:
the server snapshot read from the cloud control plane, its lifecycle status and
power state enumerations, and address display helpers. These types are consumed
by the cloud client, the reconciliation monitor, and the CLI.

# Core Types

Server Snapshot:
  - Server: Point-in-time view of one compute instance (ID, name, status,
    power state, addresses). Fetched fresh each reconciliation cycle and
    never cached across cycles.
  - Address: One IP attached on one network, with its fixed/floating kind.

Status Enumerations:
  - ServerStatus: Typed status string with constants for every documented
    Nova status. Unrecognized strings are carried verbatim and match no
    constant, so they are inert for decision logic.
  - PowerState: Integer power state mirroring OS-EXT-STS:power_state, with
    a conventional String() rendering.
  - Action: The lifecycle actions vigil may request. Unshelve is the only
    one.

# Design Principles

Status comparison is exact and case-sensitive. The monitor acts only on an
explicit positive match against StatusShelvedOffloaded; a status the constants
do not cover can never select the action branch. This keeps unanticipated
cloud-side states safe by construction rather than by runtime validation.

Snapshots are immutable: nothing in vigil mutates a Server after the cloud
client builds it, and staleness is bounded by the reconciliation cadence.

# Usage

	server := &types.Server{
		ID:     "f4b8...",
		Name:   "bastion-1",
		Status: types.StatusShelvedOffloaded,
	}

	if server.Status == types.StatusShelvedOffloaded {
		// the only branch that may unshelve
	}

	for _, line := range server.AddressLines() {
		fmt.Println(line)
	}

# See Also

  - pkg/cloud - Builds Server snapshots from compute API responses
  - pkg/monitor - Consumes snapshots in the reconciliation loop
*/
package types
