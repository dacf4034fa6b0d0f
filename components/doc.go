// Package components defines ECS components for the particle field.
package components
