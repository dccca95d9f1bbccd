// Package model holds the domain types shared across the orchestrator:
// coordinates, stations, facilities, zones, selections, route plans and
// the failure taxonomy.
package model
