// Package scenariocatalog fetches per-use-case scenario sets from a remote
// catalog service. Any failure leaves the built-in set in place.
package scenariocatalog

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"roi-engine/internal/logging"
	"roi-engine/internal/model"
	"roi-engine/internal/valuemodel"
)

const defaultTimeout = 2 * time.Second

type scenarioResponse struct {
	UseCaseID string            `json:"use_case_id"`
	Scenarios model.ScenarioSet `json:"scenarios"`
}

type Catalog struct {
	baseURL string
	client  *fasthttp.Client
	timeout time.Duration
	cache   sync.Map
}

// New returns a catalog reading from baseURL. An empty baseURL disables
// fetching and every lookup falls back.
func New(baseURL string) *Catalog {
	c := &Catalog{baseURL: baseURL, timeout: defaultTimeout}
	if baseURL != "" {
		c.client = &fasthttp.Client{
			MaxConnsPerHost:     100,
			MaxIdleConnDuration: 90 * time.Second,
			ReadTimeout:         defaultTimeout,
			WriteTimeout:        defaultTimeout,
		}
	}
	return c
}

func (c *Catalog) Enabled() bool {
	return c.baseURL != ""
}

// Overrides returns the remote scenario set for each id that the catalog
// knows. Ids that fail to load are left out so their built-in set applies.
// Results, including failures, are cached for the life of the catalog.
func (c *Catalog) Overrides(ctx context.Context, ids []string) map[string]model.ScenarioSet {
	result := make(map[string]model.ScenarioSet, len(ids))
	if !c.Enabled() {
		return result
	}

	var toFetch []string
	for _, id := range ids {
		if set, ok := c.cache.Load(id); ok {
			if s := set.(model.ScenarioSet); len(s) > 0 {
				result[id] = s.Clone()
			}
		} else {
			toFetch = append(toFetch, id)
		}
	}

	if len(toFetch) == 0 {
		return result
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	for _, id := range toFetch {
		wg.Add(1)
		go func(useCaseID string) {
			defer wg.Done()
			set, err := c.fetch(ctx, useCaseID)
			if err != nil {
				logging.Warn(ctx).Err(err).Str("use_case", useCaseID).Msg("scenario catalog lookup failed, using built-in scenarios")
				set = model.ScenarioSet{}
			}
			c.cache.Store(useCaseID, set)
			if len(set) == 0 {
				return
			}
			mu.Lock()
			result[useCaseID] = set.Clone()
			mu.Unlock()
		}(id)
	}
	wg.Wait()

	return result
}

func (c *Catalog) fetch(ctx context.Context, useCaseID string) (model.ScenarioSet, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + "/scenarios/" + url.PathEscape(useCaseID))
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else {
		err = c.client.DoTimeout(req, resp, c.timeout)
	}
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, &StatusError{UseCaseID: useCaseID, Status: resp.StatusCode()}
	}

	var sr scenarioResponse
	if err := json.Unmarshal(resp.Body(), &sr); err != nil {
		return nil, err
	}
	if err := valuemodel.CheckReductions(sr.Scenarios); err != nil {
		return nil, fmt.Errorf("scenario set for %s rejected: %w", useCaseID, err)
	}
	return sr.Scenarios, nil
}

// StatusError reports a non-200 answer from the catalog.
type StatusError struct {
	UseCaseID string
	Status    int
}

func (e *StatusError) Error() string {
	return "scenario catalog returned " + fasthttp.StatusMessage(e.Status) + " for " + e.UseCaseID
}
