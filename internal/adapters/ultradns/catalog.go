package ultradns

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/udns-tools/udnscan/internal/domain"
)

type resultInfo struct {
	ReturnedCount int `json:"returnedCount"`
}

type subaccountsPage struct {
	Accounts []struct {
		AccountName string `json:"accountName"`
		AccountID   string `json:"accountId"`
	} `json:"accounts"`
	ResultInfo resultInfo `json:"resultInfo"`
}

type zonesPage struct {
	Zones []struct {
		Properties struct {
			Name        string `json:"name"`
			AccountName string `json:"accountName"`
		} `json:"properties"`
	} `json:"zones"`
	CursorInfo struct {
		Next string `json:"next"`
	} `json:"cursorInfo"`
}

type rrsetsPage struct {
	RRSets []struct {
		OwnerName string `json:"ownerName"`
		Profile   struct {
			Context string `json:"@context"`
		} `json:"profile"`
	} `json:"rrSets"`
	ResultInfo resultInfo `json:"resultInfo"`
}

// ListSubaccounts pages through the primary account's subaccounts with
// offset pagination until a short page is returned.
func (c *Client) ListSubaccounts(ctx context.Context, session domain.Session) ([]domain.Subaccount, error) {
	var subaccounts []domain.Subaccount

	for offset := 0; ; offset += pageLimit {
		query := url.Values{}
		query.Set("limit", strconv.Itoa(pageLimit))
		query.Set("offset", strconv.Itoa(offset))

		endpoint, err := c.endpoint("/subaccounts", query)
		if err != nil {
			return nil, err
		}

		status, body, err := c.get(ctx, session, endpoint)
		if err != nil {
			return nil, fmt.Errorf("list subaccounts: %w", err)
		}
		if status == http.StatusForbidden && strings.Contains(string(body), "do not have permissions") {
			return nil, &domain.APIError{
				Status:   status,
				Endpoint: endpoint,
				Body:     "no permission to list sub-accounts; a reseller account is required",
			}
		}
		if !successStatus(status) {
			return nil, apiError(endpoint, status, body)
		}

		var page subaccountsPage
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("decode subaccounts page: %w", err)
		}

		for _, account := range page.Accounts {
			id := account.AccountID
			if id == "" {
				id = account.AccountName
			}
			subaccounts = append(subaccounts, domain.Subaccount{Name: account.AccountName, ID: id})
		}

		log.WithFields(log.Fields{"offset": offset, "returned": page.ResultInfo.ReturnedCount}).Debug("fetched subaccounts page")

		if page.ResultInfo.ReturnedCount < pageLimit {
			return subaccounts, nil
		}
	}
}

// SubaccountSession exchanges the primary session for one scoped to the
// named subaccount. Suspended subaccounts are reported via
// domain.ErrSubaccountSuspended so the scan can skip them.
func (c *Client) SubaccountSession(ctx context.Context, session domain.Session, name string) (domain.Session, error) {
	endpoint, err := c.endpoint("/subaccounts/"+url.PathEscape(name)+"/token", nil)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("create subaccount token request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+string(session))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("request subaccount token: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := readBody(resp)
	if err != nil {
		return "", err
	}
	if !successStatus(resp.StatusCode) {
		if strings.Contains(string(body), "is suspended") {
			return "", fmt.Errorf("subaccount %q: %w", name, domain.ErrSubaccountSuspended)
		}
		return "", apiError(endpoint, resp.StatusCode, body)
	}

	var payload tokenResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decode subaccount token response: %w", err)
	}

	return domain.Session(payload.AccessToken), nil
}

// ListZones pages through every zone visible to the session, following the
// cursor until the API stops returning one.
func (c *Client) ListZones(ctx context.Context, session domain.Session) ([]domain.Zone, error) {
	var zones []domain.Zone

	cursor := ""
	for {
		query := url.Values{}
		query.Set("limit", strconv.Itoa(pageLimit))
		query.Set("cursor", cursor)

		endpoint, err := c.endpoint("/v2/zones", query)
		if err != nil {
			return nil, err
		}

		status, body, err := c.get(ctx, session, endpoint)
		if err != nil {
			return nil, fmt.Errorf("list zones: %w", err)
		}
		if !successStatus(status) {
			return nil, apiError(endpoint, status, body)
		}

		var page zonesPage
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("decode zones page: %w", err)
		}

		for _, zone := range page.Zones {
			zones = append(zones, domain.Zone{Name: zone.Properties.Name, AccountID: zone.Properties.AccountName})
		}

		log.WithFields(log.Fields{"cursor": cursor, "returned": len(page.Zones)}).Debug("fetched zones page")

		cursor = page.CursorInfo.Next
		if cursor == "" {
			return zones, nil
		}
	}
}

// ListPools queries a zone's rrsets for traffic-management pools. A 404
// means no pools are configured and yields an empty result.
func (c *Client) ListPools(ctx context.Context, session domain.Session, zoneName string) ([]domain.Pool, error) {
	var pools []domain.Pool

	for offset := 0; ; offset += pageLimit {
		query := url.Values{}
		query.Set("q", "kind:POOLS")
		query.Set("limit", strconv.Itoa(pageLimit))
		query.Set("offset", strconv.Itoa(offset))

		endpoint, err := c.endpoint("/v2/zones/"+url.PathEscape(zoneName)+"/rrsets", query)
		if err != nil {
			return nil, err
		}

		status, body, err := c.get(ctx, session, endpoint)
		if err != nil {
			return nil, fmt.Errorf("list pools for zone %s: %w", zoneName, err)
		}
		if status == http.StatusNotFound {
			return pools, nil
		}
		if !successStatus(status) {
			return nil, apiError(endpoint, status, body)
		}

		var page rrsetsPage
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("decode rrsets page: %w", err)
		}

		for _, rrset := range page.RRSets {
			pools = append(pools, domain.Pool{
				Name: rrset.OwnerName,
				Type: poolTypeFromContext(rrset.Profile.Context),
			})
		}

		log.WithFields(log.Fields{"zone": zoneName, "offset": offset, "returned": page.ResultInfo.ReturnedCount}).Debug("fetched rrsets page")

		if page.ResultInfo.ReturnedCount < pageLimit {
			return pools, nil
		}
	}
}

// poolTypeFromContext reduces a profile schema URL such as
// "http://schemas.ultradns.com/RDPool.jsonschema" to its short code ("RD").
// Unrecognized contexts pass through verbatim.
func poolTypeFromContext(context string) string {
	base := context[strings.LastIndex(context, "/")+1:]
	if code, found := strings.CutSuffix(base, "Pool.jsonschema"); found && code != "" {
		return code
	}
	return context
}
