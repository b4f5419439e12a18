// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package radd

// configs is used to store the values of different parameters of the ADD
type configs struct {
	varnum          int // number of decision variables
	nodesize        int // initial number of nodes in the table
	cachesize       int // initial size of the operation cache
	cacheratio      int // ratio (0 if size constant) between cache size and node table
	maxnodesize     int // Maximum total number of nodes (0 if no limit)
	maxnodeincrease int // Maximum number of nodes that can be added to the table at each resize (0 if no limit)
	minfreenodes    int // Minimum number of nodes that should be left after GC before triggering a resize
}

func makeconfigs(varnum int) *configs {
	c := &configs{varnum: varnum}
	c.minfreenodes = _MINFREENODES
	c.maxnodeincrease = _DEFAULTMAXNODEINC
	c.cachesize = _DEFAULTCACHESIZE
	// we build enough nodes to include the four pinned terminals and one
	// pinned 0-1 diagram for each variable
	c.nodesize = 2*varnum + 8
	return c
}

// Nodesize is a configuration option (function). Used as a parameter in New it
// sets a preferred initial size for the node table. The size of the ADD can
// increase during computation. By default we create a table large enough to
// include the pinned terminal constants and the "variables" used in calls to
// Ithvar.
func Nodesize(size int) func(*configs) {
	return func(c *configs) {
		if size >= c.varnum+6 {
			c.nodesize = size
		}
	}
}

// Maxnodesize is a configuration option (function). Used as a parameter in New
// it sets a limit to the number of nodes in the ADD. An operation trying to
// raise the number of nodes above this limit fails with ErrMemory and returns
// a nil Node. The default value (0) means that there is no limit. In which
// case allocation can panic if we exhaust all the available memory.
func Maxnodesize(size int) func(*configs) {
	return func(c *configs) {
		c.maxnodesize = size
	}
}

// Maxnodeincrease is a configuration option (function). Used as a parameter in
// New it sets a limit on the increase in size of the node table. Below this
// limit we typically double the size of the node list each time we need to
// resize it. The default value is about a million nodes. Set the value to zero
// to avoid imposing a limit.
func Maxnodeincrease(size int) func(*configs) {
	return func(c *configs) {
		c.maxnodeincrease = size
	}
}

// Minfreenodes is a configuration option (function). Used as a parameter in
// New it sets the ratio of free nodes (%) that has to be left after a Garbage
// Collection event. When there is not enough free nodes in the ADD, we try
// reclaiming unused nodes. With a ratio of, say 25, we resize the table if the
// number of free nodes is less than 25% of the capacity of the table (see
// Maxnodesize and Maxnodeincrease). The default value is 20%.
func Minfreenodes(ratio int) func(*configs) {
	return func(c *configs) {
		c.minfreenodes = ratio
	}
}

// Cachesize is a configuration option (function). Used as a parameter in New
// it sets the initial number of entries in the operation cache. The default
// value is 10 000. Typical values are 10 000 entries for small examples and up
// to 1 000 000 for large ones. See also the Cacheratio config.
func Cachesize(size int) func(*configs) {
	return func(c *configs) {
		if size > 0 {
			c.cachesize = size
		}
	}
}

// Cacheratio is a configuration option (function). Used as a parameter in New
// it sets a "cache ratio" so that the operation cache can grow each time we
// resize the node table. With a cache ratio of r, we have one available entry
// in the cache for every r slots in the node table. (A typical value for the
// cache ratio is 4 or 5.) The default value (0) means that the cache size
// never grows.
func Cacheratio(ratio int) func(*configs) {
	return func(c *configs) {
		if ratio > 0 {
			c.cacheratio = ratio
		}
	}
}
