package application

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/udns-tools/udnscan/internal/domain"
	"github.com/udns-tools/udnscan/internal/ports"
)

// Progress describes the completion of one subaccount in the outer scan
// loop. It is purely observational.
type Progress struct {
	Index      int
	Total      int
	Subaccount string
	Skipped    bool
}

// Scanner walks subaccount -> zone -> pool strictly one at a time and
// collects the flat report records. The first failing call aborts the scan;
// no partial result is returned.
type Scanner struct {
	api     ports.Client
	observe func(Progress)
}

func NewScanner(api ports.Client, observe func(Progress)) *Scanner {
	if observe == nil {
		observe = func(Progress) {}
	}

	return &Scanner{
		api:     api,
		observe: observe,
	}
}

func (s *Scanner) Scan(ctx context.Context, session domain.Session) ([]domain.PoolRecord, error) {
	subaccounts, err := s.api.ListSubaccounts(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("list subaccounts: %w", err)
	}

	records := make([]domain.PoolRecord, 0)
	for i, subaccount := range subaccounts {
		scoped, err := s.api.SubaccountSession(ctx, session, subaccount.Name)
		if err != nil {
			if errors.Is(err, domain.ErrSubaccountSuspended) {
				log.Warnf("skipping suspended sub-account %q", subaccount.Name)
				s.observe(Progress{Index: i + 1, Total: len(subaccounts), Subaccount: subaccount.Name, Skipped: true})
				continue
			}
			return nil, fmt.Errorf("subaccount %s: exchange session: %w", subaccount.Name, err)
		}

		zones, err := s.api.ListZones(ctx, scoped)
		if err != nil {
			return nil, fmt.Errorf("subaccount %s: list zones: %w", subaccount.Name, err)
		}

		for _, zone := range zones {
			pools, err := s.api.ListPools(ctx, scoped, zone.Name)
			if err != nil {
				return nil, fmt.Errorf("subaccount %s: zone %s: %w", subaccount.Name, zone.Name, err)
			}

			for _, pool := range pools {
				records = append(records, domain.PoolRecord{
					Subaccount: subaccount.Name,
					Zone:       zone.Name,
					PoolName:   pool.Name,
					PoolType:   pool.Type,
				})
			}
		}

		s.observe(Progress{Index: i + 1, Total: len(subaccounts), Subaccount: subaccount.Name})
	}

	return records, nil
}
