// Package basket holds the catalog/basket domain: the item and state types,
// the two transitions that move units between catalog and basket, and the
// checks that keep them honest.
//
// Every transition conserves units per item id (catalog + basket stays equal
// to the seed), never drives a quantity below zero and drops a basket line as
// soon as it reaches zero. Apply never writes into the State it is given, so a
// snapshot handed to a renderer stays valid after later dispatches.
//
// A rejected action leaves the state as it was. Apply returns the reason as an
// *ActionError; the reducer built by NewReducer turns it into a Diagnostic
// for whoever is listening.
package basket
