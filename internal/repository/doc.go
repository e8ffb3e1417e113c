// Package repository defines the repository records fetched from the source
// hosting service and the filter stage that selects which of them get mirrored.
package repository
