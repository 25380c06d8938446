// Package dokploytest provides project trees for tests.
package dokploytest

import (
	"fmt"
	"math/rand/v2"

	"github.com/edvin/dokdash/internal/dokploy"
)

// Sample returns a small fixed tree: one project with a production
// environment holding two applications that share a GitHub provider, a
// compose stack and one database of every kind, plus an empty project.
func Sample() []dokploy.Project {
	return []dokploy.Project{
		{
			ID:          "p1",
			Name:        "Shop",
			Description: "storefront",
			Environments: []dokploy.Environment{
				{
					ID:   "e1",
					Name: "production",
					Applications: []dokploy.Application{
						{
							ID: "a1", Name: "web", AppName: "web-x1",
							BuildType: "nixpacks", Repository: "acme/web", Branch: "main",
							GithubID: "gh-1", ServerID: "srv-1",
							Domains: []dokploy.Domain{
								{ID: "d1", Host: "shop.test", Path: "/", Port: 3000, HTTPS: true},
								{ID: "d2", Host: "shop.test", Path: "/api", Port: 8080},
							},
						},
						{
							ID: "a2", Name: "Worker", AppName: "worker-x2",
							DockerImage: "acme/worker:1", GithubID: "gh-1", RegistryID: "reg-1",
						},
					},
					Compose: []dokploy.Compose{
						{
							ID: "c1", Name: "monitoring", AppName: "mon-x1", SourceType: "git",
							Domains: []dokploy.Domain{{ID: "d3", Host: "grafana.test", Path: "/", HTTPS: true}},
						},
					},
					Postgres: []dokploy.Database{{Kind: dokploy.Postgres, ID: "pg1", Name: "orders", AppName: "pg-x1", DatabaseName: "orders", DatabaseUser: "shop"}},
					MySQL:    []dokploy.Database{{Kind: dokploy.MySQL, ID: "my1", Name: "legacy", AppName: "my-x1"}},
					MariaDB:  []dokploy.Database{{Kind: dokploy.MariaDB, ID: "ma1", Name: "wiki", AppName: "ma-x1"}},
					Mongo:    []dokploy.Database{{Kind: dokploy.Mongo, ID: "mo1", Name: "events", AppName: "mo-x1"}},
					Redis:    []dokploy.Database{{Kind: dokploy.Redis, ID: "re1", Name: "cache", AppName: "re-x1"}},
				},
			},
		},
		{ID: "p2", Name: "empty"},
	}
}

var names = []string{"alpha", "Beta", "beta", "Gamma", "delta", "Échelle", "zeta", "Zeta", "api", "API"}

// Random builds a tree of up to maxProjects projects with unique primary
// identifiers. Resource lists are randomly absent (nil), empty or filled,
// and cross-reference identifiers are drawn from a small pool so that
// applications share them.
func Random(rng *rand.Rand, maxProjects int) []dokploy.Project {
	seq := 0
	next := func(prefix string) string {
		seq++
		return fmt.Sprintf("%s-%d", prefix, seq)
	}
	name := func() string {
		return names[rng.IntN(len(names))]
	}
	optionalRef := func(prefix string) string {
		if rng.IntN(3) == 0 {
			return ""
		}
		return fmt.Sprintf("%s-%d", prefix, rng.IntN(3))
	}
	count := func() int {
		switch rng.IntN(3) {
		case 0:
			return -1
		case 1:
			return 0
		default:
			return 1 + rng.IntN(4)
		}
	}
	domains := func() []dokploy.Domain {
		n := count()
		if n < 0 {
			return nil
		}
		out := make([]dokploy.Domain, n)
		for i := range out {
			path := "/"
			if rng.IntN(2) == 0 {
				path = "/" + name()
			}
			out[i] = dokploy.Domain{ID: next("dom"), Host: name() + ".test", Path: path, Port: 80 + i, HTTPS: rng.IntN(2) == 0}
		}
		return out
	}
	databases := func(kind dokploy.DatabaseKind) []dokploy.Database {
		n := count()
		if n < 0 {
			return nil
		}
		out := make([]dokploy.Database, n)
		for i := range out {
			out[i] = dokploy.Database{Kind: kind, ID: next(string(kind)), Name: name(), AppName: next("slug")}
		}
		return out
	}

	projects := make([]dokploy.Project, rng.IntN(maxProjects+1))
	for i := range projects {
		p := dokploy.Project{ID: next("proj"), Name: name()}
		nEnv := rng.IntN(4)
		for range nEnv {
			env := dokploy.Environment{ID: next("env"), Name: name()}
			if n := count(); n >= 0 {
				env.Applications = make([]dokploy.Application, n)
				for j := range env.Applications {
					env.Applications[j] = dokploy.Application{
						ID: next("app"), Name: name(), AppName: next("slug"),
						Domains:    domains(),
						GithubID:   optionalRef("gh"),
						RegistryID: optionalRef("reg"),
						ServerID:   optionalRef("srv"),
					}
				}
			}
			if n := count(); n >= 0 {
				env.Compose = make([]dokploy.Compose, n)
				for j := range env.Compose {
					env.Compose[j] = dokploy.Compose{ID: next("compose"), Name: name(), AppName: next("slug"), Domains: domains()}
				}
			}
			env.Postgres = databases(dokploy.Postgres)
			env.MySQL = databases(dokploy.MySQL)
			env.MariaDB = databases(dokploy.MariaDB)
			env.Mongo = databases(dokploy.Mongo)
			env.Redis = databases(dokploy.Redis)
			p.Environments = append(p.Environments, env)
		}
		projects[i] = p
	}
	return projects
}
