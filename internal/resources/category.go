// Package resources defines the closed set of exportable Datadog
// resource categories and their API endpoints.
package resources

import "strings"

// Category identifies one exportable resource class. The set is closed:
// each category maps to exactly one API endpoint and one output file.
type Category int

const (
	Dashboards Category = iota
	Monitors
	Notebooks
	OnCall
	RestrictionPolicies
	Roles
	Tags
	Teams
	Users
	SLOs
	SoftwareCatalog

	categoryCount
)

// categoryInfo holds the per-category dispatch table. Directory names
// match the layout the provisioner creates.
type categoryInfo struct {
	dir      string
	endpoint string
}

var categories = [categoryCount]categoryInfo{
	Dashboards:          {dir: "dashboards", endpoint: "/api/v1/dashboard"},
	Monitors:            {dir: "monitors", endpoint: "/api/v1/monitor"},
	Notebooks:           {dir: "notebooks", endpoint: "/api/v1/notebooks"},
	OnCall:              {dir: "on_call", endpoint: "/api/v2/on-call/schedules"},
	RestrictionPolicies: {dir: "restriction_policies", endpoint: "/api/v2/restriction_policies"},
	Roles:               {dir: "roles", endpoint: "/api/v2/roles"},
	Tags:                {dir: "tags", endpoint: "/api/v1/tags/hosts"},
	Teams:               {dir: "teams", endpoint: "/api/v2/team"},
	Users:               {dir: "users", endpoint: "/api/v2/users"},
	SLOs:                {dir: "slos", endpoint: "/api/v1/slo"},
	SoftwareCatalog:     {dir: "software_catalog", endpoint: "/api/v2/catalog/entity"},
}

// aliases maps accepted user spellings (lower-cased, trimmed) to
// categories. Singular forms and spaced variants are accepted.
var aliases = map[string]Category{
	"dashboards":               Dashboards,
	"dashboard":                Dashboards,
	"monitors":                 Monitors,
	"monitor":                  Monitors,
	"notebooks":                Notebooks,
	"notebook":                 Notebooks,
	"on call":                  OnCall,
	"oncall":                   OnCall,
	"on-call":                  OnCall,
	"on_call":                  OnCall,
	"restriction policies":     RestrictionPolicies,
	"restriction-policies":     RestrictionPolicies,
	"restriction_policies":     RestrictionPolicies,
	"roles":                    Roles,
	"role":                     Roles,
	"tags":                     Tags,
	"teams":                    Teams,
	"team":                     Teams,
	"users":                    Users,
	"user":                     Users,
	"slos":                     SLOs,
	"slo":                      SLOs,
	"service level objectives": SLOs,
	"software catalog":         SoftwareCatalog,
	"software-catalog":         SoftwareCatalog,
	"software_catalog":         SoftwareCatalog,
	"service catalog":          SoftwareCatalog,
}

// String returns the canonical category name (the directory name).
func (c Category) String() string {
	if c < 0 || c >= categoryCount {
		return "unknown"
	}
	return categories[c].dir
}

// Dir returns the output subdirectory for the category.
func (c Category) Dir() string {
	return categories[c].dir
}

// Endpoint returns the API path for the category.
func (c Category) Endpoint() string {
	return categories[c].endpoint
}

// OutputFile returns the deterministic output filename for the
// category, relative to the project directory.
func (c Category) OutputFile() string {
	return categories[c].dir + "/" + categories[c].dir + ".json"
}

// Parse matches a user-supplied name case-insensitively against the
// alias table. The second return value is false for unrecognized names.
func Parse(name string) (Category, bool) {
	c, ok := aliases[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// ParseList parses a comma-separated resource list, preserving request
// order, deduplicating, and collecting unrecognized names separately.
func ParseList(arg string) (wanted []Category, unknown []string) {
	seen := make(map[Category]bool)
	for _, raw := range strings.Split(arg, ",") {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		c, ok := Parse(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		wanted = append(wanted, c)
	}
	return wanted, unknown
}

// All returns every category in declaration order.
func All() []Category {
	out := make([]Category, 0, categoryCount)
	for c := Category(0); c < categoryCount; c++ {
		out = append(out, c)
	}
	return out
}
