// Package waterfall balances items of known height over a number of
// columns, masonry style.
package waterfall
