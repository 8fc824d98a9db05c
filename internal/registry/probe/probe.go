package probe

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-containerregistry/pkg/authn"
	"github.com/google/go-containerregistry/pkg/name"
	"github.com/google/go-containerregistry/pkg/v1/remote"
	"github.com/google/go-containerregistry/pkg/v1/remote/transport"
	"github.com/rs/zerolog/log"

	cerrors "github.com/imagematrix/matrix-cli/util/common/errors"
)

// Prober reports whether a tag of a repository has a resolvable manifest.
type Prober interface {
	Resolvable(ctx context.Context, repo, tag string) (bool, error)
}

// RemoteProber probes manifests with HEAD requests against a registry.
type RemoteProber struct {
	host string
	auth authn.Authenticator
}

// NewRemoteProber returns a prober for the given registry host. With an empty
// token the probe is anonymous, which is enough for public images.
func NewRemoteProber(host, username, token string) *RemoteProber {
	auth := authn.Anonymous
	if token != "" {
		// ghcr.io accepts any username with a PAT as the password
		auth = &authn.Basic{Username: username, Password: token}
	}
	return &RemoteProber{host: host, auth: auth}
}

// Resolvable issues a manifest HEAD request for repo:tag. A missing manifest
// is not an error: packages listed by the registry may only ever have been
// published under versioned tags. Credential rejections and transport
// failures are fatal so that a broken setup cannot masquerade as an empty
// matrix.
func (p *RemoteProber) Resolvable(ctx context.Context, repo, tag string) (bool, error) {
	ref, err := name.ParseReference(fmt.Sprintf("%s/%s:%s", p.host, repo, tag))
	if err != nil {
		return false, cerrors.NewRegistryError("probe", repo,
			fmt.Errorf("%w: %v", cerrors.ErrInvalidArgument, err))
	}

	_, err = remote.Head(ref, remote.WithContext(ctx), remote.WithAuth(p.auth))
	if err == nil {
		return true, nil
	}

	var terr *transport.Error
	if errors.As(err, &terr) {
		switch terr.StatusCode {
		case http.StatusNotFound:
			log.Debug().Str("ref", ref.String()).Msg("manifest not found")
			return false, nil
		case http.StatusUnauthorized, http.StatusForbidden:
			return false, cerrors.NewRegistryError("probe", repo,
				fmt.Errorf("%w: status %d", cerrors.ErrAuthentication, terr.StatusCode))
		}
	}

	return false, cerrors.NewRegistryError("probe", repo,
		fmt.Errorf("%w: %v", cerrors.ErrRegistryQuery, err))
}
