// Package services implements the core use cases behind the driving
// ports: emotion spectrum analysis, story generation, and history.
package services
