// Package files handles the local filesystem side of generation: finding
// input images by name and writing outputs under collision-free names.
package files
