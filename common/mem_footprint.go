package common

import (
	"fmt"
	"strings"
)

// MemoryFootprint describes the memory consumption of a cache or grid
// structure, including its subcomponents.
type MemoryFootprint struct {
	value    uintptr
	children map[string]*MemoryFootprint
}

// NewMemoryFootprint creates a new MemoryFootprint instance with the given
// number of bytes consumed by the structure itself.
func NewMemoryFootprint(value uintptr) *MemoryFootprint {
	return &MemoryFootprint{
		value:    value,
		children: make(map[string]*MemoryFootprint),
	}
}

// AddChild attaches the MemoryFootprint of a subcomponent.
func (mf *MemoryFootprint) AddChild(name string, child *MemoryFootprint) {
	mf.children[name] = child
}

// Value provides the amount of bytes consumed by the structure itself,
// excluding its subcomponents.
func (mf *MemoryFootprint) Value() uintptr {
	return mf.value
}

// Total provides the amount of bytes consumed by the structure including
// all its subcomponents. Shared subcomponents are counted only once.
func (mf *MemoryFootprint) Total() uintptr {
	includedObjects := make(map[*MemoryFootprint]bool)
	return includeObjectIntoTotal(mf, includedObjects)
}

func includeObjectIntoTotal(mf *MemoryFootprint, includedObjects map[*MemoryFootprint]bool) (total uintptr) {
	if _, exists := includedObjects[mf]; exists {
		return 0
	}
	includedObjects[mf] = true
	total = mf.value
	for _, child := range mf.children {
		total += includeObjectIntoTotal(child, includedObjects)
	}
	return total
}

// ToString provides the memory footprint as a tree summary in a string.
// The name param allows to give a name to the root of the tree.
func (mf *MemoryFootprint) ToString(name string) string {
	var sb strings.Builder
	mf.toStringBuilder(&sb, name)
	return sb.String()
}

func (mf *MemoryFootprint) toStringBuilder(sb *strings.Builder, path string) {
	memoryAmountToString(sb, mf.Total())
	sb.WriteRune(' ')
	sb.WriteString(path)
	sb.WriteRune('\n')
	for name, footprint := range mf.children {
		footprint.toStringBuilder(sb, path+"/"+name)
	}
}

func memoryAmountToString(sb *strings.Builder, bytes uintptr) {
	const unit = 1024
	const prefixes = "KMGTPE"
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit && exp+1 < len(prefixes); n /= unit {
		div *= unit
		exp++
	}
	fmt.Fprintf(sb, "%.1f %cB", float64(bytes)/float64(div), prefixes[exp])
}
