// Package table lays out a grid of cells whose column widths are derived
// from the cells' natural widths and a maximum table width.
package table
