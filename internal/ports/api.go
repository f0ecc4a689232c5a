package ports

import (
	"context"

	"github.com/udns-tools/udnscan/internal/domain"
)

// Client is the UltraDNS management API surface the scanner consumes. All
// operations are read-only.
type Client interface {
	// Login exchanges a username/password pair for a bearer session.
	Login(ctx context.Context, username, password string) (domain.Session, error)

	// ListSubaccounts pages through the subaccounts of the primary account.
	ListSubaccounts(ctx context.Context, session domain.Session) ([]domain.Subaccount, error)

	// SubaccountSession exchanges the primary session for one scoped to the
	// named subaccount. A suspended subaccount yields an error wrapping
	// domain.ErrSubaccountSuspended.
	SubaccountSession(ctx context.Context, session domain.Session, name string) (domain.Session, error)

	// ListZones pages through all zones visible to the session.
	ListZones(ctx context.Context, session domain.Session) ([]domain.Zone, error)

	// ListPools returns the traffic-management pools configured on a zone.
	// A zone with no pools yields an empty slice, not an error.
	ListPools(ctx context.Context, session domain.Session, zoneName string) ([]domain.Pool, error)
}
