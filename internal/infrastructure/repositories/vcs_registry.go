package repositories

import (
	"fmt"
	"slices"

	"github.com/rios0rios0/dependactor/internal/domain/entities"
	domainRepos "github.com/rios0rios0/dependactor/internal/domain/repositories"
)

// VCSFactory builds a VCSRepository for the configured working copy.
type VCSFactory func(settings *entities.Settings) domainRepos.VCSRepository

// VCSRegistry manages the available version-control backends.
type VCSRegistry struct {
	backends map[string]VCSFactory
}

// NewVCSRegistry creates an empty backend registry.
func NewVCSRegistry() *VCSRegistry {
	return &VCSRegistry{
		backends: make(map[string]VCSFactory),
	}
}

// Register adds a backend factory under the given name (e.g. "cli").
func (r *VCSRegistry) Register(name string, factory VCSFactory) {
	r.backends[name] = factory
}

// Get returns the backend selected by settings.VCS.
func (r *VCSRegistry) Get(settings *entities.Settings) (domainRepos.VCSRepository, error) {
	factory, ok := r.backends[settings.VCS]
	if !ok {
		return nil, fmt.Errorf("unknown vcs backend: %q", settings.VCS)
	}
	return factory(settings), nil
}

// Names returns the registered backend names in lexical order.
func (r *VCSRegistry) Names() []string {
	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
