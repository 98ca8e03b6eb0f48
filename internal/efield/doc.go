// Package efield holds the electric-field configuration that drives the
// skyrmion and turns it into a scalar drive e(t).
//
// [Controller] is the mutable configuration owned by a UI or run loop. Each
// tick the owner takes a [Params] snapshot and hands it to the field model:
//
//	ctrl := efield.NewController()
//	ctrl.SetStrength(0.5)
//	ctrl.SetPulseType("square")
//	e := ctrl.Snapshot().Drive(t)
//
// Direction and pulse-type names form closed sets. Setting an unknown name
// leaves the configuration untouched and reports false.
package efield
