// Package api serves the Dokploy dashboard: the server-rendered pages, the
// credential-injecting proxy, health and metrics endpoints and the MCP
// tool endpoint.
//
//	@title			Dokploy Dashboard
//	@version		1.0
//	@description	Infrastructure dashboard and same-origin proxy for the Dokploy API
//	@BasePath		/
package api
