// Package rut implements the Chilean national identifier (RUT, Rol Único
// Tributario) toolkit: cleaning raw input, splitting it into body and check
// character, computing and verifying the modulo-11 check character,
// formatting into the canonical 12.345.678-5 form and generating valid
// sample identifiers.
//
// Domain Purity: everything here is pure and safe for concurrent use. The
// only source of nondeterminism is the random Source injected into a
// Generator.
package rut
