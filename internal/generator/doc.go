// Package generator builds the synthetic supplier catalog.
//
// Every field comes from a single linear-congruential sequence seeded once per
// Generate call, so the same seed, count and reference time always produce the
// same catalog. The order of draws per record is part of that contract: adding,
// removing or reordering a draw shifts every value after it.
package generator
