// Package testutil holds helpers shared by package tests: a logger-carrying
// context, temporary manifest directories and an App harness.
package testutil
