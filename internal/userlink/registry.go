// Package userlink lets a host application's own user entities act as forum
// authors without the forum owning their schema. Each host user type is
// registered once at startup; discussions and posts then reference
// (type identifier, id) pairs resolved through the registry.
package userlink

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var typeIdentifierPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// Registry maps host user type identifiers to the association names used on
// discussions and posts. It is built once at configuration time and frozen
// afterwards; nothing is generated at call time.
type Registry struct {
	associations map[string]string
	frozen       bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{associations: make(map[string]string)}
}

// Register activates a host user type as a forum author type. Registration is
// idempotent per type. Two distinct types that would produce the same
// association name are rejected, so host types never collide.
func (r *Registry) Register(hostType string) error {
	if r.frozen {
		return fmt.Errorf("user type registry is frozen, cannot register %q", hostType)
	}

	hostType = strings.TrimSpace(hostType)
	if !typeIdentifierPattern.MatchString(hostType) {
		return fmt.Errorf("invalid host user type identifier %q", hostType)
	}

	name := AssociationName(hostType)
	if existing, ok := r.associations[hostType]; ok {
		// Idempotent re-registration of the same type.
		if existing == name {
			return nil
		}
	}
	for other, assoc := range r.associations {
		if assoc == name && other != hostType {
			return fmt.Errorf("host user types %q and %q both map to association %q", other, hostType, name)
		}
	}

	r.associations[hostType] = name
	return nil
}

// Freeze prevents further registrations. Called once startup wiring is done.
func (r *Registry) Freeze() {
	r.frozen = true
}

// IsRegistered reports whether a host type has been activated.
func (r *Registry) IsRegistered(hostType string) bool {
	_, ok := r.associations[hostType]
	return ok
}

// Association returns the association name for a registered host type.
func (r *Registry) Association(hostType string) (string, error) {
	name, ok := r.associations[hostType]
	if !ok {
		return "", fmt.Errorf("host user type %q is not registered", hostType)
	}
	return name, nil
}

// Types returns the registered host type identifiers in stable order.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.associations))
	for t := range r.associations {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// AssociationName derives the association name for a host type identifier,
// e.g. "AccountUser" -> "author_account_user".
func AssociationName(hostType string) string {
	return "author_" + toSnake(strings.TrimSpace(hostType))
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && s[i-1] != '_' {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
