package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	commonhttp "github.com/imagematrix/matrix-cli/internal/http"
	"github.com/imagematrix/matrix-cli/internal/http/auth/bearer"
	cerrors "github.com/imagematrix/matrix-cli/util/common/errors"
)

const (
	// DefaultAPIBaseURL is the GitHub REST endpoint.
	DefaultAPIBaseURL = "https://api.github.com"

	apiVersion = "2022-11-28"
	pageSize   = 100
)

// Client talks to the GitHub Packages API.
type Client struct {
	client  *commonhttp.Client
	baseURL string
}

// NewClient constructs a packages client. An empty baseURL selects the public
// GitHub endpoint; the token is attached as a bearer credential.
func NewClient(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultAPIBaseURL
	}
	return &Client{
		client:  commonhttp.NewClient(nil, bearer.NewAuthorizer(token)),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// containerPackage is the subset of the package record we care about
type containerPackage struct {
	Name        string `json:"name"`
	PackageType string `json:"package_type"`
	Visibility  string `json:"visibility"`
}

// ListContainerPackages returns the names of all container-type packages
// owned by org, preserving the API's return order. Listing failures are
// always fatal: a silently truncated list would shrink the test matrix
// without anyone noticing.
func (c *Client) ListContainerPackages(ctx context.Context, org string) ([]string, error) {
	var names []string

	for page := 1; ; page++ {
		url := fmt.Sprintf("%s/orgs/%s/packages?package_type=container&per_page=%d&page=%d",
			c.baseURL, org, pageSize, page)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, cerrors.NewRegistryError("list", org, err)
		}
		req.Header.Set("Accept", "application/vnd.github+json")
		req.Header.Set("X-GitHub-Api-Version", apiVersion)

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, cerrors.NewRegistryError("list", org,
				fmt.Errorf("%w: %v", cerrors.ErrRegistryQuery, err))
		}

		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, cerrors.NewRegistryError("list", org,
				fmt.Errorf("%w: %v", cerrors.ErrRegistryQuery, err))
		}

		switch resp.StatusCode {
		case http.StatusOK:
		case http.StatusUnauthorized, http.StatusForbidden:
			return nil, cerrors.NewRegistryError("list", org,
				fmt.Errorf("%w: status %d", cerrors.ErrAuthentication, resp.StatusCode))
		default:
			return nil, cerrors.NewRegistryError("list", org,
				fmt.Errorf("%w: status %d: %s", cerrors.ErrRegistryQuery,
					resp.StatusCode, strings.TrimSpace(string(data))))
		}

		var pkgs []containerPackage
		if err := json.Unmarshal(data, &pkgs); err != nil {
			return nil, cerrors.NewRegistryError("list", org,
				fmt.Errorf("%w: decode response: %v", cerrors.ErrRegistryQuery, err))
		}

		for _, pkg := range pkgs {
			names = append(names, pkg.Name)
		}

		if len(pkgs) < pageSize {
			break
		}
	}

	log.Debug().Str("org", org).Int("count", len(names)).Msg("listed container packages")
	return names, nil
}
