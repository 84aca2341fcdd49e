// Package service contains the application services that orchestrate the
// domain, extraction, generation, and storage layers.
package service
