// Package formats provides parsers for model file formats.
//
// The parsers only produce plain data; building renderable meshes happens in
// internal/engine/model.
package formats
