package matrix

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gobwas/glob"
	"github.com/rs/zerolog/log"

	"github.com/imagematrix/matrix-cli/internal/registry/probe"
	cerrors "github.com/imagematrix/matrix-cli/util/common/errors"
)

// DefaultTag is the tag probed for each listed image.
const DefaultTag = "latest"

// Lister returns the names of container packages owned by an organization.
type Lister interface {
	ListContainerPackages(ctx context.Context, org string) ([]string, error)
}

// ProbeObserver is notified after each manifest probe.
type ProbeObserver func(image string, resolvable bool)

// Resolver produces the list of image names a test matrix fans out over.
// Every emitted name has been verified to have a resolvable manifest for the
// configured tag; listing membership alone is not trusted.
type Resolver struct {
	lister   Lister
	prober   probe.Prober
	org      string
	tag      string
	excludes []glob.Glob
	observer ProbeObserver
}

// Option configures a Resolver.
type Option func(*Resolver) error

// WithTag overrides the probed tag.
func WithTag(tag string) Option {
	return func(r *Resolver) error {
		if tag != "" {
			r.tag = tag
		}
		return nil
	}
}

// WithExcludes drops images whose name matches any of the glob patterns
// before probing.
func WithExcludes(patterns []string) Option {
	return func(r *Resolver) error {
		for _, pattern := range patterns {
			g, err := glob.Compile(pattern)
			if err != nil {
				return fmt.Errorf("%w: exclude pattern %q: %v",
					cerrors.ErrInvalidArgument, pattern, err)
			}
			r.excludes = append(r.excludes, g)
		}
		return nil
	}
}

// WithProbeObserver registers a callback invoked after each probe, e.g. to
// drive a progress bar.
func WithProbeObserver(fn ProbeObserver) Option {
	return func(r *Resolver) error {
		r.observer = fn
		return nil
	}
}

// NewResolver constructs a Resolver for the given organization.
func NewResolver(lister Lister, prober probe.Prober, org string, opts ...Option) (*Resolver, error) {
	if org == "" {
		return nil, fmt.Errorf("%w: organization is required", cerrors.ErrInvalidArgument)
	}
	r := &Resolver{
		lister: lister,
		prober: prober,
		org:    org,
		tag:    DefaultTag,
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// List queries the package listing and applies the exclude patterns,
// preserving the registry's return order.
func (r *Resolver) List(ctx context.Context) ([]string, error) {
	images, err := r.lister.ListContainerPackages(ctx, r.org)
	if err != nil {
		return nil, err
	}

	if len(r.excludes) == 0 {
		return images, nil
	}

	kept := make([]string, 0, len(images))
	for _, image := range images {
		if r.excluded(image) {
			log.Debug().Str("image", image).Msg("excluded by pattern")
			continue
		}
		kept = append(kept, image)
	}
	return kept, nil
}

func (r *Resolver) excluded(image string) bool {
	for _, g := range r.excludes {
		if g.Match(image) {
			return true
		}
	}
	return false
}

// FilterResolvable probes each image sequentially and keeps those whose tag
// manifest resolves. A failed probe drops the image silently; a probe error
// aborts the whole resolution. Relative order of the input is preserved.
func (r *Resolver) FilterResolvable(ctx context.Context, images []string) ([]string, error) {
	resolved := make([]string, 0, len(images))
	for _, image := range images {
		repo := strings.ToLower(fmt.Sprintf("%s/%s", r.org, image))
		ok, err := r.prober.Resolvable(ctx, repo, r.tag)
		if err != nil {
			return nil, err
		}
		if r.observer != nil {
			r.observer(image, ok)
		}
		if !ok {
			log.Debug().Str("image", image).Str("tag", r.tag).Msg("tag not resolvable, dropping")
			continue
		}
		resolved = append(resolved, image)
	}
	return resolved, nil
}

// Resolve runs the full pipeline: list, exclude, probe.
func (r *Resolver) Resolve(ctx context.Context) ([]string, error) {
	images, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return r.FilterResolvable(ctx, images)
}

// Serialize encodes the resolved list as a JSON array of strings. An empty or
// nil list serializes to [], which a downstream matrix consumer treats as
// zero jobs rather than a failure.
func Serialize(images []string) (string, error) {
	if images == nil {
		images = []string{}
	}
	data, err := json.Marshal(images)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
