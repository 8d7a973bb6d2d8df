// Package ui is the Bubble Tea front end for deploying flows.
//
// Core pieces:
//   - View: a screen or major UI region with its own model, update, view
//   - OverlayStack: modal dialogs stacked over the base view
//   - KeybindRegistry: single keys plus SPC-prefixed sequences
//   - FlowsView: the flow list; selecting a flow updates the session store
//   - DeployModal: the deploy dialog and its request state machine
//
// All notifications go through the shared alert store; the status banner
// at the bottom of the screen is its only reader.
package ui
