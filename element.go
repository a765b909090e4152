package clustools

// Element is one item being clustered. ID is fixed at 0..n-1. ClusterID is
// the id of the cluster currently owning the element; whichever operation
// changes membership keeps it in sync, and Result.Clusters[ClusterID] resolves
// it back to the cluster.
type Element struct {
	ID        int
	ClusterID int
}

// newElements returns n elements, each initially owned by the cluster with
// the same id as the element.
func newElements(n int) []*Element {
	elems := make([]*Element, n)
	for i := range elems {
		elems[i] = &Element{ID: i, ClusterID: i}
	}
	return elems
}

func elementIDs(elems []*Element) []int {
	ids := make([]int, len(elems))
	for i, el := range elems {
		ids[i] = el.ID
	}
	return ids
}
