// Package kernel contains shared value objects used across all domain aggregates.
// It currently provides the UUID identifier type; domain-specific value objects
// live in their respective aggregate packages.
package kernel
