package inventory

import "github.com/edvin/dokdash/internal/dokploy"

// Totals are the dashboard's summary counters. Databases counts all five
// database kinds together.
type Totals struct {
	Projects     int `json:"totalProjects"`
	Applications int `json:"totalApplications"`
	Databases    int `json:"totalDatabases"`
	Compose      int `json:"totalCompose"`
}

// ComputeTotals sums resource lists over every environment. Absent lists
// count as zero.
func ComputeTotals(projects []dokploy.Project) Totals {
	t := Totals{Projects: len(projects)}
	for _, p := range projects {
		for _, env := range p.Environments {
			t.Applications += len(env.Applications)
			t.Compose += len(env.Compose)
			for _, kind := range dokploy.DatabaseKinds {
				t.Databases += len(env.DatabasesOf(kind))
			}
		}
	}
	return t
}

// Snapshot is everything derived from one successful fetch.
type Snapshot struct {
	Projects []dokploy.Project
	Totals   Totals
	IDs      IDs
}

// NewSnapshot derives totals and identifiers from the same project tree.
func NewSnapshot(projects []dokploy.Project) *Snapshot {
	return &Snapshot{
		Projects: projects,
		Totals:   ComputeTotals(projects),
		IDs:      ExtractAllIDs(projects),
	}
}
