package inventory

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/edvin/dokdash/internal/dokploy"
)

// Category groups identifiers in the "all identifiers" view.
type Category string

const (
	CategoryProjects     Category = "projects"
	CategoryEnvironments Category = "environments"
	CategoryApplications Category = "applications"
	CategoryCompose      Category = "compose"
	CategoryPostgres     Category = "postgres"
	CategoryMySQL        Category = "mysql"
	CategoryMariaDB      Category = "mariadb"
	CategoryMongo        Category = "mongo"
	CategoryRedis        Category = "redis"
	CategoryDomains      Category = "domains"
	CategoryGithubIDs    Category = "githubIds"
	CategoryRegistryIDs  Category = "registryIds"
	CategoryServerIDs    Category = "serverIds"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryProjects,
	CategoryEnvironments,
	CategoryApplications,
	CategoryCompose,
	CategoryPostgres,
	CategoryMySQL,
	CategoryMariaDB,
	CategoryMongo,
	CategoryRedis,
	CategoryDomains,
	CategoryGithubIDs,
	CategoryRegistryIDs,
	CategoryServerIDs,
}

// ParseCategory reports whether name is a known category.
func ParseCategory(name string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == name {
			return c, true
		}
	}
	return "", false
}

func (c Category) Label() string {
	switch c {
	case CategoryProjects:
		return "Projects"
	case CategoryEnvironments:
		return "Environments"
	case CategoryApplications:
		return "Applications"
	case CategoryCompose:
		return "Docker Compose"
	case CategoryPostgres:
		return "PostgreSQL"
	case CategoryMySQL:
		return "MySQL"
	case CategoryMariaDB:
		return "MariaDB"
	case CategoryMongo:
		return "MongoDB"
	case CategoryRedis:
		return "Redis"
	case CategoryDomains:
		return "Domains"
	case CategoryGithubIDs:
		return "GitHub IDs"
	case CategoryRegistryIDs:
		return "Registry IDs"
	case CategoryServerIDs:
		return "Server IDs"
	default:
		return string(c)
	}
}

// IDLabel names a single identifier of this category, e.g. "Compose ID".
func (c Category) IDLabel() string {
	switch c {
	case CategoryProjects:
		return "Project ID"
	case CategoryEnvironments:
		return "Environment ID"
	case CategoryApplications:
		return "Application ID"
	case CategoryCompose:
		return "Compose ID"
	case CategoryDomains:
		return "Domain ID"
	case CategoryGithubIDs:
		return "GitHub ID"
	case CategoryRegistryIDs:
		return "Registry ID"
	case CategoryServerIDs:
		return "Server ID"
	}
	if kind, ok := databaseKind(c); ok {
		return kind.IDLabel()
	}
	return string(c) + " ID"
}

func databaseCategory(kind dokploy.DatabaseKind) Category {
	return Category(kind)
}

func databaseKind(c Category) (dokploy.DatabaseKind, bool) {
	for _, kind := range dokploy.DatabaseKinds {
		if Category(kind) == c {
			return kind, true
		}
	}
	return "", false
}

// IDRecord is one identifier with its display name and lineage. Project
// records carry neither Project nor Environment.
type IDRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Project     string `json:"project,omitempty"`
	Environment string `json:"environment,omitempty"`
}

// IDs maps each category to its sorted records.
type IDs map[Category][]IDRecord

// NonEmpty returns the categories holding at least one record, in
// Categories order.
func (ids IDs) NonEmpty() []Category {
	var out []Category
	for _, c := range Categories {
		if len(ids[c]) > 0 {
			out = append(out, c)
		}
	}
	return out
}

// Count returns the number of records across all categories.
func (ids IDs) Count() int {
	n := 0
	for _, records := range ids {
		n += len(records)
	}
	return n
}

// crossRef is an optional foreign key on an application that several
// applications may share.
type crossRef struct {
	category Category
	label    string
	value    func(dokploy.Application) string
}

var crossRefs = []crossRef{
	{CategoryGithubIDs, "GitHub", func(a dokploy.Application) string { return a.GithubID }},
	{CategoryRegistryIDs, "Registry", func(a dokploy.Application) string { return a.RegistryID }},
	{CategoryServerIDs, "Server", func(a dokploy.Application) string { return a.ServerID }},
}

// ExtractAllIDs walks projects depth-first and returns every identifier,
// grouped by category. Cross-reference identifiers appear once, attributed
// to the first application that references them. Every list is sorted by
// name with ties kept in traversal order.
func ExtractAllIDs(projects []dokploy.Project) IDs {
	ids := make(IDs, len(Categories))
	seen := make(map[Category]map[string]bool, len(crossRefs))
	for _, ref := range crossRefs {
		seen[ref.category] = make(map[string]bool)
	}

	add := func(c Category, r IDRecord) {
		ids[c] = append(ids[c], r)
	}

	for _, p := range projects {
		add(CategoryProjects, IDRecord{ID: p.ID, Name: p.Name})

		for _, env := range p.Environments {
			add(CategoryEnvironments, IDRecord{ID: env.ID, Name: env.Name, Project: p.Name})

			lineage := func(id, name string) IDRecord {
				return IDRecord{ID: id, Name: name, Project: p.Name, Environment: env.Name}
			}

			for _, app := range env.Applications {
				add(CategoryApplications, lineage(app.ID, app.Name))
				for _, d := range app.Domains {
					add(CategoryDomains, lineage(d.ID, DomainName(d)))
				}
				for _, ref := range crossRefs {
					v := ref.value(app)
					if v == "" || seen[ref.category][v] {
						continue
					}
					seen[ref.category][v] = true
					add(ref.category, lineage(v, ref.label+" ("+app.Name+")"))
				}
			}

			for _, c := range env.Compose {
				add(CategoryCompose, lineage(c.ID, c.Name))
				for _, d := range c.Domains {
					add(CategoryDomains, lineage(d.ID, DomainName(d)))
				}
			}

			for _, db := range env.Databases() {
				add(databaseCategory(db.Kind), lineage(db.ID, db.Name))
			}
		}
	}

	for c := range ids {
		SortRecords(ids[c])
	}
	return ids
}

// DomainName renders a domain as host plus path, omitting the root path.
func DomainName(d dokploy.Domain) string {
	if d.Path == "" || d.Path == "/" {
		return d.Host
	}
	return d.Host + d.Path
}

// CompareNames orders display names case-insensitively first, using case
// only to break ties ("alpha" < "Beta" < "beta").
func CompareNames(a, b string) int {
	return collate.New(language.Und).CompareString(a, b)
}

// SortRecords sorts records in place by name. The sort is stable.
func SortRecords(records []IDRecord) {
	col := collate.New(language.Und)
	slices.SortStableFunc(records, func(a, b IDRecord) int {
		return col.CompareString(a.Name, b.Name)
	})
}
