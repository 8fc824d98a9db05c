package badge

import (
	"bytes"
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

// GistClient updates badge files hosted in a GitHub gist.
type GistClient struct {
	client  *commonhttp.Client
	baseURL string
}

// NewGistClient constructs a gist client. An empty baseURL selects the
// public GitHub endpoint.
func NewGistClient(baseURL, token string) *GistClient {
	if baseURL == "" {
		baseURL = "https://api.github.com"
	}
	return &GistClient{
		client:  commonhttp.NewClient(nil, bearer.NewAuthorizer(token)),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

type gistFile struct {
	Content string `json:"content"`
}

type gistPatch struct {
	Files map[string]gistFile `json:"files"`
}

// UpdateBadge writes the badge document into the named file of the gist.
func (c *GistClient) UpdateBadge(ctx context.Context, gistID, filename string, b Badge) error {
	content, err := json.Marshal(b)
	if err != nil {
		return err
	}

	body, err := json.Marshal(gistPatch{
		Files: map[string]gistFile{
			filename: {Content: string(content)},
		},
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/gists/%s", c.baseURL, gistID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to update gist %s: %w", gistID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w: gist update rejected with status %d",
			cerrors.ErrAuthentication, resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("failed to update gist %s, status code: %d, response: %s",
			gistID, resp.StatusCode, string(data))
	}

	log.Debug().Str("gist", gistID).Str("file", filename).Msg("badge updated")
	return nil
}
