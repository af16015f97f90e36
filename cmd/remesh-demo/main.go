// Command remesh-demo builds a flat triangulated patch, then repeatedly
// drives it through remesh.Driver.Run the way an interactive sculpting
// brush stroke would: each iteration rescans a circular region and applies
// subdivide, collapse, and cleanup until the region's edge lengths settle
// between the configured bounds.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/polyforge/remesh/editlog"
	"github.com/polyforge/remesh/mesh"
	"github.com/polyforge/remesh/nodes"
	"github.com/polyforge/remesh/remesh"
	"github.com/polyforge/remesh/types"
)

var (
	gridSize   = flag.Int("grid", 8, "side length of the starting vertex grid")
	cellSize   = flag.Float64("cell-size", 1.0, "starting quad edge length")
	minLen     = flag.Float64("min-edge", 0.3, "collapse threshold")
	maxLen     = flag.Float64("max-edge", 0.8, "subdivide threshold")
	radius     = flag.Float64("radius", 3.0, "brush radius")
	iterations = flag.Int("iterations", 6, "number of simulated brush strokes")
	smoothProb = flag.Float64("smooth-prob", 0.5, "per-vertex tangential smoothing probability")
)

func main() {
	flag.Parse()

	m := mesh.NewMesh()
	hier := nodes.NewGridHierarchy(m, *cellSize*float64(*gridSize), 64)
	mb := nodes.NewMembership(hier)
	elog := editlog.NewMemLog()

	center := buildGrid(m, mb, elog, *gridSize, *cellSize)

	log.Printf("built patch: %d vertices, %d faces", m.NumVertices(), m.NumFaces())

	driver := remesh.NewDriver(m, mb, elog,
		remesh.WithTargetEdgeLength(*minLen, *maxLen),
		remesh.WithSmoothProbability(*smoothProb),
	)

	params := remesh.UpdateTopologyParams{
		Center:          center,
		Radius:          *radius,
		Mode:            types.Subdivide | types.Collapse | types.Cleanup,
		UpdateHierarchy: true,
	}

	for i := 0; i < *iterations; i++ {
		changed, err := driver.Run(context.Background(), params)
		if err != nil {
			log.Fatalf("pass %d: %v", i, err)
		}
		log.Printf("pass %d: changed=%v vertices=%d faces=%d", i, changed, m.NumVertices(), m.NumFaces())
		if !changed {
			break
		}
	}

	fmt.Printf("final mesh: %d vertices, %d edges, %d faces, %d logged events\n",
		m.NumVertices(), m.NumEdges(), m.NumFaces(), len(elog.Events))

	if m.NumFaces() == 0 {
		os.Exit(1)
	}
}

// buildGrid lays out an n x n grid of cell x cell quads (each split into two
// triangles) in the XY plane and registers every face with mb. It returns
// the centroid of the patch, used as the default brush center.
func buildGrid(m *mesh.Mesh, mb *nodes.Membership, elog editlog.Log, n int, cell float64) types.Vec3 {
	verts := make([][]types.VertexID, n+1)
	for i := 0; i <= n; i++ {
		verts[i] = make([]types.VertexID, n+1)
		for j := 0; j <= n; j++ {
			co := types.Vec3{X: float64(i) * cell, Y: float64(j) * cell, Z: 0}
			verts[i][j] = m.VertCreate(co, types.Vec3{Z: 1}, elog)
		}
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a, b, c, d := verts[i][j], verts[i+1][j], verts[i+1][j+1], verts[i][j+1]
			addFace(m, mb, elog, [3]types.VertexID{a, b, c})
			addFace(m, mb, elog, [3]types.VertexID{a, c, d})
		}
	}

	half := float64(n) * cell / 2
	return types.Vec3{X: half, Y: half, Z: 0}
}

func addFace(m *mesh.Mesh, mb *nodes.Membership, elog editlog.Log, tri [3]types.VertexID) {
	f, err := m.FaceCreate(tri, nil, nil, elog)
	if err != nil {
		log.Fatalf("FaceCreate: %v", err)
	}
	mb.FaceAdd(m, f, elog, false)
}
