// Package weavetest provides doubles of the framework interfaces and a
// runner that drives an application through ABCI, for use in tests.
package weavetest
