// Package common contains the configuration structures and logging setup
// shared by the protocol server, transports and clients.
package common
