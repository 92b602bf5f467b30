// Package core contains the domain contracts shared by every Tourmesh
// package: conversation turns, extracted intents, collaborator data shapes
// and the interfaces that external collaborators (geocoding, weather,
// attractions, optional model-based enhancers) implement.
//
// Keeping the contracts here prevents higher level packages (agent, server,
// session backends) from depending on concrete collaborator clients.
package core
