// Package model defines the input descriptors and the per-field
// configuration the renderer consumes. A descriptor is one of a closed set of
// kinds; code that handles descriptors implements Visitor, so adding a kind
// breaks every handler at compile time until it learns the new case.
package model
