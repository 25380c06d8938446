package render

import (
	"strconv"

	"github.com/edvin/dokdash/internal/dokploy"
	"github.com/edvin/dokdash/internal/inventory"
)

// CopyableID renders an identifier with a copy-to-clipboard affordance.
func CopyableID(id, label, class string) *Node {
	if class == "" {
		class = "resource-id"
	}
	return &Node{
		Kind:  Inline,
		Class: class,
		Text:  id,
		Title: "Click to copy " + label,
		Copy:  &CopyTarget{Value: id, Label: label},
	}
}

// Detail renders a "label: value" row, or nil when value is empty.
func Detail(label, value string) *Node {
	if value == "" {
		return nil
	}
	return row("detail-row",
		text("detail-label", label+":"),
		&Node{Kind: Inline, Class: "detail-value", Text: value, Title: value},
	)
}

// Summary renders the four dashboard counters.
func Summary(t inventory.Totals) *Node {
	stat := func(id, label string, v int) *Node {
		return row("stat stat-"+id,
			text("stat-value", strconv.Itoa(v)),
			text("stat-label", label),
		)
	}
	return block("stats",
		stat("projects", "Projects", t.Projects),
		stat("applications", "Applications", t.Applications),
		stat("databases", "Databases", t.Databases),
		stat("compose", "Compose Services", t.Compose),
	)
}

// Domains renders a domain list, or nil when there are none.
func Domains(domains []dokploy.Domain) *Node {
	if len(domains) == 0 {
		return nil
	}
	list := block("domains-list")
	list.Header = text("detail-label", "Domains:")
	for _, d := range domains {
		scheme, class := "HTTP", "domain-badge http"
		if d.HTTPS {
			scheme, class = "HTTPS", "domain-badge https"
		}
		item := row("domain-item",
			text(class, scheme),
			text("domain-host", inventory.DomainName(d)),
		)
		if d.Port != 0 {
			item.Append(text("domain-port", ":"+strconv.Itoa(d.Port)))
		}
		list.Append(item)
	}
	return list
}

func resourceSection(icon, title string, count int) (*Node, *Node) {
	grid := block("resource-grid")
	section := block("resource-section", grid)
	section.Header = row("resource-header",
		text("resource-title", icon+" "+title),
		text("resource-count", strconv.Itoa(count)),
	)
	return section, grid
}

func resourceItem(name, appName string, id *Node, details ...*Node) *Node {
	item := block("resource-item", block("resource-details", details...))
	item.Header = row("resource-item-header",
		block("resource-names",
			text("resource-name", name),
			text("resource-app-name", appName),
		),
		id,
	)
	return item
}

// Applications appends an applications section to parent when apps is
// non-empty.
func Applications(apps []dokploy.Application, parent *Node) {
	if len(apps) == 0 {
		return
	}
	section, grid := resourceSection("🚀", "Applications", len(apps))
	for _, app := range apps {
		grid.Append(resourceItem(app.Name, app.AppName,
			CopyableID(app.ID, inventory.CategoryApplications.IDLabel(), ""),
			Detail("Build Type", app.BuildType),
			Detail("Source Type", app.SourceType),
			Detail("Repository", app.Repository),
			Detail("Branch", app.Branch),
			Detail("Docker Image", app.DockerImage),
			Detail("Build Path", app.BuildPath),
			Domains(app.Domains),
		))
	}
	parent.Append(section)
}

// ComposeServices appends a compose section to parent when compose is
// non-empty.
func ComposeServices(compose []dokploy.Compose, parent *Node) {
	if len(compose) == 0 {
		return
	}
	section, grid := resourceSection("🐳", "Docker Compose", len(compose))
	for _, c := range compose {
		grid.Append(resourceItem(c.Name, c.AppName,
			CopyableID(c.ID, inventory.CategoryCompose.IDLabel(), ""),
			Detail("Source Type", c.SourceType),
			Detail("Repository", c.Repository),
			Detail("Branch", c.Branch),
			Domains(c.Domains),
		))
	}
	parent.Append(section)
}

// Databases appends one section per database kind present in env.
// Credentials are never part of the output.
func Databases(env dokploy.Environment, parent *Node) {
	for _, kind := range dokploy.DatabaseKinds {
		dbs := env.DatabasesOf(kind)
		if len(dbs) == 0 {
			continue
		}
		section, grid := resourceSection(kind.Icon(), kind.Label(), len(dbs))
		for _, db := range dbs {
			grid.Append(resourceItem(db.Name, db.AppName,
				CopyableID(db.ID, kind.IDLabel(), ""),
				Detail("Database Name", db.DatabaseName),
				Detail("Docker Image", db.DockerImage),
				Detail("User", db.DatabaseUser),
			))
		}
		parent.Append(section)
	}
}

// Environment renders one environment block with its resource sections.
func Environment(env dokploy.Environment) *Node {
	n := block("environment")
	n.Header = row("environment-header",
		text("environment-name", "📦 "+env.Name),
		CopyableID(env.ID, inventory.CategoryEnvironments.IDLabel(), "env-id"),
	)
	Applications(env.Applications, n)
	ComposeServices(env.Compose, n)
	Databases(env, n)
	return n
}

// Project renders a project card. A project without environments still
// gets an (empty) environments region.
func Project(p dokploy.Project) *Node {
	title := block("project-titles", heading("project-title", p.Name))
	if p.Description != "" {
		title.Append(text("project-description", p.Description))
	}

	envs := block("environments")
	for _, env := range p.Environments {
		envs.Append(Environment(env))
	}

	card := block("card project-card", envs)
	card.Header = row("project-header",
		title,
		CopyableID(p.ID, inventory.CategoryProjects.IDLabel(), "project-id"),
	)
	return card
}

// Dashboard renders the summary counters followed by every project card.
func Dashboard(projects []dokploy.Project, totals inventory.Totals) *Node {
	cards := block("projects")
	for _, p := range projects {
		cards.Append(Project(p))
	}
	return block("dashboard", Summary(totals), cards)
}

// IDs renders the flat identifier view: one collapsible section per
// non-empty category.
func IDs(ids inventory.IDs) *Node {
	root := block("ids-view")
	categories := ids.NonEmpty()
	if len(categories) == 0 {
		return root.Append(text("ids-empty", "No identifiers found."))
	}
	for _, c := range categories {
		records := ids[c]
		section := &Node{
			Kind:  Section,
			Class: "ids-section ids-" + string(c),
			Text:  c.Label() + " (" + strconv.Itoa(len(records)) + ")",
			Open:  true,
		}
		for _, r := range records {
			line := row("ids-row",
				text("ids-name", r.Name),
				CopyableID(r.ID, c.IDLabel(), "ids-value"),
			)
			if lineage := lineageText(r); lineage != "" {
				line.Append(text("ids-lineage", lineage))
			}
			section.Append(line)
		}
		root.Append(section)
	}
	return root
}

func lineageText(r inventory.IDRecord) string {
	switch {
	case r.Project != "" && r.Environment != "":
		return r.Project + " / " + r.Environment
	case r.Project != "":
		return r.Project
	default:
		return ""
	}
}
