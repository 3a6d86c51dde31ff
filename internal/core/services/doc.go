// Package services implements the driving port interfaces.
// Services hold the upload pipeline: the connector directory, the
// selection state, CSV normalisation, submission and outcome reporting.
// They reach the network and storage only through driven ports.
package services
