// Package datagraph draws simple charts out of compose objects.
package datagraph
