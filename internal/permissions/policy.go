// Package permissions maps back-office roles to the actions they may perform.
// The matrix is a YAML document embedded in the binary.
package permissions

import (
	_ "embed"
	"fmt"
	"slices"
	"sort"

	"gopkg.in/yaml.v3"
)

// Permission names one guarded action.
type Permission string

const (
	LeadsRead         Permission = "leads.read"
	LeadsWrite        Permission = "leads.write"
	LeadsConvert      Permission = "leads.convert"
	AnalyticsRead     Permission = "analytics.read"
	CatalogRead       Permission = "catalog.read"
	CatalogWrite      Permission = "catalog.write"
	CustomersRead     Permission = "customers.read"
	CustomersWrite    Permission = "customers.write"
	BookingsRead      Permission = "bookings.read"
	BookingsPayment   Permission = "bookings.payment"
	DocumentsGenerate Permission = "documents.generate"

	wildcard = "*"
)

var known = []Permission{
	LeadsRead, LeadsWrite, LeadsConvert, AnalyticsRead, CatalogRead, CatalogWrite,
	CustomersRead, CustomersWrite, BookingsRead, BookingsPayment, DocumentsGenerate,
}

//go:embed policy.yaml
var defaultPolicy []byte

type document struct {
	Roles map[string][]string `yaml:"roles"`
}

// Policy answers permission checks for a set of roles.
type Policy struct {
	grants map[string]map[Permission]struct{}
}

// Default parses the embedded policy.
func Default() (*Policy, error) {
	return Parse(defaultPolicy)
}

// Parse builds a Policy from YAML. Unknown permission names are rejected.
func Parse(raw []byte) (*Policy, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse permission policy: %w", err)
	}
	if len(doc.Roles) == 0 {
		return nil, fmt.Errorf("parse permission policy: no roles defined")
	}

	p := &Policy{grants: make(map[string]map[Permission]struct{}, len(doc.Roles))}
	for role, perms := range doc.Roles {
		set := make(map[Permission]struct{}, len(perms))
		for _, name := range perms {
			if name == wildcard {
				for _, k := range known {
					set[k] = struct{}{}
				}
				continue
			}
			perm := Permission(name)
			if !slices.Contains(known, perm) {
				return nil, fmt.Errorf("parse permission policy: role %q: unknown permission %q", role, name)
			}
			set[perm] = struct{}{}
		}
		p.grants[role] = set
	}
	return p, nil
}

// Allows reports whether any of roles grants perm.
func (p *Policy) Allows(roles []string, perm Permission) bool {
	for _, role := range roles {
		if _, ok := p.grants[role][perm]; ok {
			return true
		}
	}
	return false
}

// Effective returns the sorted union of permissions granted to roles.
func (p *Policy) Effective(roles []string) []Permission {
	seen := make(map[Permission]struct{})
	for _, role := range roles {
		for perm := range p.grants[role] {
			seen[perm] = struct{}{}
		}
	}
	out := make([]Permission, 0, len(seen))
	for perm := range seen {
		out = append(out, perm)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
