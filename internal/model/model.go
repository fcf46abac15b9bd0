package model

// Package model contains domain models/data structures shared across layers
// (HTTP, service, repository). No database-specific dependencies or business
// logic here.
