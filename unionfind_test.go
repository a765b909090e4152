package clustools

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewUnionFind(t *testing.T) {
	uf := NewUnionFind(5)
	for i := 0; i < 5; i++ {
		assert.Equal(t, i, uf.Find(i))
		assert.Equal(t, 1, uf.Size(i))
	}
}

func TestUnionFind_UnionTwoElements(t *testing.T) {
	uf := NewUnionFind(5)
	root := uf.Union(1, 3)

	assert.Equal(t, uf.Find(1), uf.Find(3))
	assert.Equal(t, root, uf.Find(1))
	assert.Equal(t, 2, uf.Size(3))
}

func TestUnionFind_MultipleUnions(t *testing.T) {
	uf := NewUnionFind(6)
	uf.Union(0, 1)
	uf.Union(1, 2)
	uf.Union(3, 4)
	uf.Union(4, 5)

	assert.Equal(t, uf.Find(0), uf.Find(2))
	assert.Equal(t, uf.Find(3), uf.Find(5))
	assert.NotEqual(t, uf.Find(0), uf.Find(3))

	uf.Union(2, 5)
	assert.Equal(t, uf.Find(0), uf.Find(4))
	assert.Equal(t, 6, uf.Size(0))
}

func TestUnionFind_IdempotentUnion(t *testing.T) {
	uf := NewUnionFind(3)
	r1 := uf.Union(0, 1)
	r2 := uf.Union(1, 0)
	assert.Equal(t, r1, r2)
	assert.Equal(t, 2, uf.Size(0))
}

func TestUnionFind_PathCompression(t *testing.T) {
	uf := NewUnionFind(4)
	uf.parent[3] = 2
	uf.parent[2] = 1
	uf.parent[1] = 0
	uf.size[0] = 4

	assert.Equal(t, 0, uf.Find(3))
	assert.Equal(t, 0, uf.parent[3])
	assert.Equal(t, 0, uf.parent[2])
}
